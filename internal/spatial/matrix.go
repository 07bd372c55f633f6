package spatial

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Mat33 is a row-major 3×3 matrix.
type Mat33 [3][3]float64

// Matrix is a row-major 6×6 spatial matrix.
type Matrix [6][6]float64

func Identity33() Mat33 {
	return Mat33{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func (a Mat33) Add(b Mat33) Mat33 {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] += b[i][j]
		}
	}
	return a
}

func (a Mat33) Scale(s float64) Mat33 {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] *= s
		}
	}
	return a
}

func (a Mat33) Transpose() Mat33 {
	var t Mat33
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = a[j][i]
		}
	}
	return t
}

func (a Mat33) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: a[0][0]*v.X + a[0][1]*v.Y + a[0][2]*v.Z,
		Y: a[1][0]*v.X + a[1][1]*v.Y + a[1][2]*v.Z,
		Z: a[2][0]*v.X + a[2][1]*v.Y + a[2][2]*v.Z,
	}
}

// Mat33Mul returns a·b.
func Mat33Mul(a, b Mat33) Mat33 {
	var c Mat33
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				c[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return c
}

func AdjMat33Mul(a, b Mat33, adjA, adjB *Mat33, adjRet Mat33) {
	*adjA = adjA.Add(Mat33Mul(adjRet, b.Transpose()))
	*adjB = adjB.Add(Mat33Mul(a.Transpose(), adjRet))
}

// Skew returns the cross-product matrix [v]× so that Skew(v)·x = v × x.
func Skew(v r3.Vector) Mat33 {
	return Mat33{
		{0, -v.Z, v.Y},
		{v.Z, 0, -v.X},
		{-v.Y, v.X, 0},
	}
}

func AdjSkew(v r3.Vector, adjV *r3.Vector, adjRet Mat33) {
	g := adjRet
	adjV.X += g[2][1] - g[1][2]
	adjV.Y += g[0][2] - g[2][0]
	adjV.Z += g[1][0] - g[0][1]
}

// FrameMatrix builds the spatial adjoint
//
//	[R  0]
//	[S  R]
//
// that maps spatial quantities between two rigidly offset frames.
func FrameMatrix(R, S Mat33) Matrix {
	var m Matrix

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = R[i][j]
			m[i+3][j+3] = R[i][j]
		}
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i+3][j] = S[i][j]
		}
	}

	return m
}

// AdjFrameMatrix collects both diagonal blocks into adjR and the lower-left
// block into adjS. The upper-right block is constant.
func AdjFrameMatrix(R, S Mat33, adjR, adjS *Mat33, adjRet Matrix) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			adjR[i][j] += adjRet[i][j]
			adjR[i][j] += adjRet[i+3][j+3]
		}
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			adjS[i][j] += adjRet[i+3][j]
		}
	}
}

// TransformFrameMatrix returns FrameMatrix(R, [p]×R) for the pose t.
func TransformFrameMatrix(t Transform) Matrix {
	R := QuatToMat33(t.Q)
	return FrameMatrix(R, Mat33Mul(Skew(t.P), R))
}

func AdjTransformFrameMatrix(t Transform, adjT *Transform, adjRet Matrix) {
	R := QuatToMat33(t.Q)
	px := Skew(t.P)
	S := Mat33Mul(px, R)

	var adjR, adjS, adjPx Mat33
	AdjFrameMatrix(R, S, &adjR, &adjS, adjRet)
	AdjMat33Mul(px, R, &adjPx, &adjR, adjS)
	AdjSkew(t.P, &adjT.P, adjPx)
	AdjQuatToMat33(t.Q, &adjT.Q, adjR)
}

func (m Matrix) Add(b Matrix) Matrix {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			m[i][j] += b[i][j]
		}
	}
	return m
}

func (m Matrix) Transpose() Matrix {
	var t Matrix
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			t[i][j] = m[j][i]
		}
	}
	return t
}

// MulVector returns m·v with v taken as a 6-column in flattened order.
func (m Matrix) MulVector(v Vector) Vector {
	a := v.Array()
	var r [6]float64
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			r[i] += m[i][j] * a[j]
		}
	}
	return VectorFromArray(r)
}

func AdjMulVector(m Matrix, v Vector, adjM *Matrix, adjV *Vector, adjRet Vector) {
	a := v.Array()
	g := adjRet.Array()
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			adjM[i][j] += g[i] * a[j]
			*adjV.Ptr(j) += m[i][j] * g[i]
		}
	}
}

// SpatialInertia returns the inertia about the frame origin of a body with
// mass m, centre of mass c and rotational inertia ic about c.
func SpatialInertia(m float64, c r3.Vector, ic Mat33) Matrix {
	cx := Skew(c)
	cxT := cx.Transpose()

	var I Matrix
	upper := ic.Add(Mat33Mul(cx, cxT).Scale(m))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			I[i][j] = upper[i][j]
			I[i][j+3] = m * cx[i][j]
			I[i+3][j] = m * cxT[i][j]
		}
		I[i+3][i+3] = m
	}
	return I
}

// Dense copies m into a gonum matrix. It allocates and is meant for
// printing and analysis, not for kernels.
func (m Matrix) Dense() *mat.Dense {
	data := make([]float64, 0, 36)
	for i := 0; i < 6; i++ {
		data = append(data, m[i][:]...)
	}
	return mat.NewDense(6, 6, data)
}
