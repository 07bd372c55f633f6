package spatial

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// TransformSize is the number of scalars in a flattened Transform.
const TransformSize = 7

// Transform is a rigid pose: translation P followed by rotation Q.
//
// Q is expected to have unit norm but nothing here enforces it. Add, Sub,
// Scale and Lerp combine the quaternion linearly and are building blocks
// for gradient accumulation, not pose operations.
type Transform struct {
	P r3.Vector
	Q quat.Number
}

func NewTransform(p r3.Vector, q quat.Number) Transform {
	return Transform{P: p, Q: q}
}

func AdjNewTransform(adjP *r3.Vector, adjQ *quat.Number, adjRet Transform) {
	*adjP = adjP.Add(adjRet.P)
	*adjQ = quat.Add(*adjQ, adjRet.Q)
}

// Identity returns the transform with zero translation and identity rotation.
func Identity() Transform {
	return Transform{Q: QuatIdentity()}
}

// At returns component i in the order p.x, p.y, p.z, q.x, q.y, q.z, q.w.
// It panics when i is outside [0, 7).
func (t Transform) At(i int) float64 {
	return *t.ptr(i)
}

func (t *Transform) SetAt(i int, v float64) {
	*t.ptr(i) = v
}

func (t *Transform) ptr(i int) *float64 {
	switch i {
	case 0:
		return &t.P.X
	case 1:
		return &t.P.Y
	case 2:
		return &t.P.Z
	case 3:
		return &t.Q.Imag
	case 4:
		return &t.Q.Jmag
	case 5:
		return &t.Q.Kmag
	case 6:
		return &t.Q.Real
	}
	panic("spatial: transform index out of range")
}

func AdjAt(t Transform, i int, adjT *Transform, adjRet float64) {
	*adjT.ptr(i) += adjRet
}

func (t Transform) Translation() r3.Vector { return t.P }

func (t Transform) Rotation() quat.Number { return t.Q }

func AdjTranslation(t Transform, adjT *Transform, adjRet r3.Vector) {
	adjT.P = adjT.P.Add(adjRet)
}

func AdjRotation(t Transform, adjT *Transform, adjRet quat.Number) {
	adjT.Q = quat.Add(adjT.Q, adjRet)
}

func (t Transform) IsFinite() bool {
	for i := 0; i < TransformSize; i++ {
		v := t.At(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (t Transform) Equal(o Transform) bool {
	return t.P == o.P && t.Q == o.Q
}

// Multiply composes a and b: b is applied first, then a.
func Multiply(a, b Transform) Transform {
	return Transform{
		P: Rotate(a.Q, b.P).Add(a.P),
		Q: QuatMul(a.Q, b.Q),
	}
}

func AdjMultiply(a, b Transform, adjA, adjB *Transform, adjRet Transform) {
	// a.P appears both as the rotation offset and as the direct term.
	AdjRotate(a.Q, b.P, &adjA.Q, &adjB.P, adjRet.P)
	adjA.P = adjA.P.Add(adjRet.P)

	AdjQuatMul(a.Q, b.Q, &adjA.Q, &adjB.Q, adjRet.Q)
}

func Inverse(t Transform) Transform {
	qInv := QuatInverse(t.Q)
	return Transform{P: Rotate(qInv, t.P).Mul(-1), Q: qInv}
}

func AdjInverse(t Transform, adjT *Transform, adjRet Transform) {
	qInv := QuatInverse(t.Q)

	adjQInv := adjRet.Q
	adjRotated := adjRet.P.Mul(-1)

	AdjRotate(qInv, t.P, &adjQInv, &adjT.P, adjRotated)
	AdjQuatInverse(t.Q, &adjT.Q, adjQInv)
}

// TransformVector rotates the direction x; translation is ignored.
func TransformVector(t Transform, x r3.Vector) r3.Vector {
	return Rotate(t.Q, x)
}

func AdjTransformVector(t Transform, x r3.Vector, adjT *Transform, adjX *r3.Vector, adjRet r3.Vector) {
	AdjRotate(t.Q, x, &adjT.Q, adjX, adjRet)
}

// TransformPoint rotates and translates the point x.
func TransformPoint(t Transform, x r3.Vector) r3.Vector {
	return t.P.Add(Rotate(t.Q, x))
}

func AdjTransformPoint(t Transform, x r3.Vector, adjT *Transform, adjX *r3.Vector, adjRet r3.Vector) {
	AdjRotate(t.Q, x, &adjT.Q, adjX, adjRet)
	adjT.P = adjT.P.Add(adjRet)
}

func Add(a, b Transform) Transform {
	return Transform{P: a.P.Add(b.P), Q: quat.Add(a.Q, b.Q)}
}

func Sub(a, b Transform) Transform {
	return Transform{P: a.P.Sub(b.P), Q: quat.Sub(a.Q, b.Q)}
}

func Scale(a Transform, s float64) Transform {
	return Transform{P: a.P.Mul(s), Q: quat.Scale(s, a.Q)}
}

func AdjAdd(adjA, adjB *Transform, adjRet Transform) {
	*adjA = Add(*adjA, adjRet)
	*adjB = Add(*adjB, adjRet)
}

func AdjSub(adjA, adjB *Transform, adjRet Transform) {
	*adjA = Add(*adjA, adjRet)
	*adjB = Sub(*adjB, adjRet)
}

func AdjScale(a Transform, s float64, adjA *Transform, adjS *float64, adjRet Transform) {
	*adjA = Add(*adjA, Scale(adjRet, s))
	*adjS += TensorDot(a, adjRet)
}

// TensorDot contracts all seven components of a and b.
func TensorDot(a, b Transform) float64 {
	return a.P.Dot(b.P) + quatDot(a.Q, b.Q)
}

// Lerp blends a and b component-wise. The quaternion of the result is not
// renormalized.
func Lerp(a, b Transform, s float64) Transform {
	return Add(Scale(a, 1-s), Scale(b, s))
}

func AdjLerp(a, b Transform, s float64, adjA, adjB *Transform, adjS *float64, adjRet Transform) {
	*adjA = Add(*adjA, Scale(adjRet, 1-s))
	*adjB = Add(*adjB, Scale(adjRet, s))
	*adjS += TensorDot(b, adjRet) - TensorDot(a, adjRet)
}

// AtomicAddTransform adds v into *addr one component at a time.
func AtomicAddTransform(addr *Transform, v Transform) {
	for i := 0; i < TransformSize; i++ {
		AtomicAdd(addr.ptr(i), v.At(i))
	}
}
