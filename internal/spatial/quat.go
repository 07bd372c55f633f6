package spatial

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// QuatIdentity returns the unit quaternion with no rotation.
func QuatIdentity() quat.Number {
	return quat.Number{Real: 1}
}

func quatAxis(q quat.Number) r3.Vector {
	return r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

func axisQuat(v r3.Vector, w float64) quat.Number {
	return quat.Number{Real: w, Imag: v.X, Jmag: v.Y, Kmag: v.Z}
}

// Rotate applies q to x without assuming |q| = 1:
//
//	x(2w²-1) + 2w(u×x) + 2u(u·x)
func Rotate(q quat.Number, x r3.Vector) r3.Vector {
	u := quatAxis(q)
	w := q.Real
	return x.Mul(2*w*w - 1).
		Add(u.Cross(x).Mul(2 * w)).
		Add(u.Mul(2 * u.Dot(x)))
}

func AdjRotate(q quat.Number, x r3.Vector, adjQ *quat.Number, adjX *r3.Vector, adjRet r3.Vector) {
	u := quatAxis(q)
	w := q.Real
	g := adjRet

	*adjX = adjX.Add(g.Mul(2*w*w - 1)).
		Add(g.Cross(u).Mul(2 * w)).
		Add(u.Mul(2 * u.Dot(g)))

	adjW := 4*w*x.Dot(g) + 2*u.Cross(x).Dot(g)
	adjU := x.Cross(g).Mul(2 * w).
		Add(g.Mul(2 * u.Dot(x))).
		Add(x.Mul(2 * u.Dot(g)))

	*adjQ = quat.Add(*adjQ, axisQuat(adjU, adjW))
}

// QuatMul is the Hamilton product a·b.
func QuatMul(a, b quat.Number) quat.Number {
	return quat.Mul(a, b)
}

func AdjQuatMul(a, b quat.Number, adjA, adjB *quat.Number, adjRet quat.Number) {
	*adjA = quat.Add(*adjA, quat.Mul(adjRet, quat.Conj(b)))
	*adjB = quat.Add(*adjB, quat.Mul(quat.Conj(a), adjRet))
}

// QuatInverse returns the conjugate, which is the inverse of a unit quaternion.
func QuatInverse(q quat.Number) quat.Number {
	return quat.Conj(q)
}

func AdjQuatInverse(q quat.Number, adjQ *quat.Number, adjRet quat.Number) {
	*adjQ = quat.Add(*adjQ, quat.Conj(adjRet))
}

func quatDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// QuatToMat33 returns the rotation matrix of q using the unnormalized
// quadratic form, so R(q) equals the matrix of Rotate(q, ·) only for unit q.
func QuatToMat33(q quat.Number) Mat33 {
	x, y, z, w := q.Imag, q.Jmag, q.Kmag, q.Real
	return Mat33{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}
}

func AdjQuatToMat33(q quat.Number, adjQ *quat.Number, adjRet Mat33) {
	x, y, z, w := q.Imag, q.Jmag, q.Kmag, q.Real
	g := adjRet

	adjQ.Imag += 2*y*(g[0][1]+g[1][0]) + 2*z*(g[0][2]+g[2][0]) + 2*w*(g[2][1]-g[1][2]) - 4*x*(g[1][1]+g[2][2])
	adjQ.Jmag += 2*x*(g[0][1]+g[1][0]) + 2*z*(g[1][2]+g[2][1]) + 2*w*(g[0][2]-g[2][0]) - 4*y*(g[0][0]+g[2][2])
	adjQ.Kmag += 2*x*(g[0][2]+g[2][0]) + 2*y*(g[1][2]+g[2][1]) + 2*w*(g[1][0]-g[0][1]) - 4*z*(g[0][0]+g[1][1])
	adjQ.Real += 2*z*(g[1][0]-g[0][1]) + 2*y*(g[0][2]-g[2][0]) + 2*x*(g[2][1]-g[1][2])
}
