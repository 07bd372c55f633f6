package spatial

import "github.com/golang/geo/r3"

// Vector is a spatial twist or wrench. W holds the angular part and V the
// linear part; flattened index order is W.X, W.Y, W.Z, V.X, V.Y, V.Z.
type Vector struct {
	W r3.Vector
	V r3.Vector
}

func NewVector(wx, wy, wz, vx, vy, vz float64) Vector {
	return Vector{W: r3.Vector{X: wx, Y: wy, Z: wz}, V: r3.Vector{X: vx, Y: vy, Z: vz}}
}

func VectorFromArray(a [6]float64) Vector {
	return NewVector(a[0], a[1], a[2], a[3], a[4], a[5])
}

// UnitVector returns the k-th standard basis vector.
func UnitVector(k int) Vector {
	var a [6]float64
	a[k] = 1
	return VectorFromArray(a)
}

func (a Vector) Array() [6]float64 {
	return [6]float64{a.W.X, a.W.Y, a.W.Z, a.V.X, a.V.Y, a.V.Z}
}

// At returns the i-th flattened component.
func (a Vector) At(i int) float64 {
	if i < 3 {
		return vec3At(a.W, i)
	}
	return vec3At(a.V, i-3)
}

// Ptr returns the address of the i-th flattened component.
func (a *Vector) Ptr(i int) *float64 {
	if i < 3 {
		return vec3Ptr(&a.W, i)
	}
	return vec3Ptr(&a.V, i-3)
}

func (a Vector) Add(b Vector) Vector {
	return Vector{W: a.W.Add(b.W), V: a.V.Add(b.V)}
}

func (a Vector) Sub(b Vector) Vector {
	return Vector{W: a.W.Sub(b.W), V: a.V.Sub(b.V)}
}

func (a Vector) Scale(s float64) Vector {
	return Vector{W: a.W.Mul(s), V: a.V.Mul(s)}
}

// Dot is the Euclidean inner product of all six components.
func Dot(a, b Vector) float64 {
	return a.W.Dot(b.W) + a.V.Dot(b.V)
}

// Cross is the motion cross product a ×ₘ b.
func Cross(a, b Vector) Vector {
	return Vector{
		W: a.W.Cross(b.W),
		V: a.V.Cross(b.W).Add(a.W.Cross(b.V)),
	}
}

// CrossDual is the force cross product a ×f b.
func CrossDual(a, b Vector) Vector {
	return Vector{
		W: a.W.Cross(b.W).Add(a.V.Cross(b.V)),
		V: a.W.Cross(b.V),
	}
}

// Top returns the angular part.
func Top(a Vector) r3.Vector { return a.W }

// Bottom returns the linear part.
func Bottom(a Vector) r3.Vector { return a.V }

func AdjDot(a, b Vector, adjA, adjB *Vector, adjRet float64) {
	AdjDot3(a.W, b.W, &adjA.W, &adjB.W, adjRet)
	AdjDot3(a.V, b.V, &adjA.V, &adjB.V, adjRet)
}

func AdjCross(a, b Vector, adjA, adjB *Vector, adjRet Vector) {
	AdjCross3(a.W, b.W, &adjA.W, &adjB.W, adjRet.W)

	AdjCross3(a.V, b.W, &adjA.V, &adjB.W, adjRet.V)
	AdjCross3(a.W, b.V, &adjA.W, &adjB.V, adjRet.V)
}

func AdjCrossDual(a, b Vector, adjA, adjB *Vector, adjRet Vector) {
	AdjCross3(a.W, b.W, &adjA.W, &adjB.W, adjRet.W)
	AdjCross3(a.V, b.V, &adjA.V, &adjB.V, adjRet.W)

	AdjCross3(a.W, b.V, &adjA.W, &adjB.V, adjRet.V)
}

func AdjTop(a Vector, adjA *Vector, adjRet r3.Vector) {
	adjA.W = adjA.W.Add(adjRet)
}

func AdjBottom(a Vector, adjA *Vector, adjRet r3.Vector) {
	adjA.V = adjA.V.Add(adjRet)
}

// AdjAddVector is the adjoint of a.Add(b).
func AdjAddVector(adjA, adjB *Vector, adjRet Vector) {
	*adjA = adjA.Add(adjRet)
	*adjB = adjB.Add(adjRet)
}

// AdjScaleVector is the adjoint of a.Scale(s).
func AdjScaleVector(a Vector, s float64, adjA *Vector, adjS *float64, adjRet Vector) {
	*adjA = adjA.Add(adjRet.Scale(s))
	*adjS += Dot(a, adjRet)
}
