package spatial

import "github.com/golang/geo/r3"

// AdjCross3 is the adjoint of a.Cross(b).
func AdjCross3(a, b r3.Vector, adjA, adjB *r3.Vector, adjRet r3.Vector) {
	*adjA = adjA.Add(b.Cross(adjRet))
	*adjB = adjB.Add(adjRet.Cross(a))
}

// AdjDot3 is the adjoint of a.Dot(b).
func AdjDot3(a, b r3.Vector, adjA, adjB *r3.Vector, adjRet float64) {
	*adjA = adjA.Add(b.Mul(adjRet))
	*adjB = adjB.Add(a.Mul(adjRet))
}

func vec3At(v r3.Vector, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("spatial: 3-vector index out of range")
}

func vec3Ptr(v *r3.Vector, i int) *float64 {
	switch i {
	case 0:
		return &v.X
	case 1:
		return &v.Y
	case 2:
		return &v.Z
	}
	panic("spatial: 3-vector index out of range")
}
