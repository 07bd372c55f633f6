package spatial_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/san-kum/spatialdyn/internal/spatial"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
)

func TestIdentity(t *testing.T) {
	id := spatial.Identity()
	require.Equal(t, r3.Vector{}, id.P)
	require.Equal(t, quat.Number{Real: 1}, id.Q)

	rng := rand.New(rand.NewSource(10))
	x := randVec3(rng)
	requireVec3InDelta(t, x, spatial.TransformPoint(id, x), tol)
}

func TestMultiplyAssociative(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 0; n < 25; n++ {
		a, b, c := randTransform(rng), randTransform(rng), randTransform(rng)

		left := spatial.Multiply(spatial.Multiply(a, b), c)
		right := spatial.Multiply(a, spatial.Multiply(b, c))
		requireTransformInDelta(t, left, right, 1e-9)
	}
}

func TestMultiplyInverseIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for n := 0; n < 25; n++ {
		tr := randTransform(rng)
		inv := spatial.Inverse(tr)

		requireTransformInDelta(t, spatial.Identity(), spatial.Multiply(tr, inv), 1e-9)
		requireTransformInDelta(t, spatial.Identity(), spatial.Multiply(inv, tr), 1e-9)
	}
}

func TestMultiplyNotCommutative(t *testing.T) {
	a := spatial.NewTransform(r3.Vector{X: 1}, quat.Number{Real: math.Cos(math.Pi / 4), Kmag: math.Sin(math.Pi / 4)})
	b := spatial.NewTransform(r3.Vector{Y: 2}, spatial.QuatIdentity())

	ab := spatial.Multiply(a, b)
	ba := spatial.Multiply(b, a)

	// b's offset is rotated 90° about z by a before a's own offset is added
	requireVec3InDelta(t, r3.Vector{X: -1}, ab.P, 1e-12)
	requireVec3InDelta(t, r3.Vector{X: 1, Y: 2}, ba.P, 1e-12)
}

func TestTransformPointMatchesComposition(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	a, b := randTransform(rng), randTransform(rng)
	x := randVec3(rng)

	want := spatial.TransformPoint(a, spatial.TransformPoint(b, x))
	requireVec3InDelta(t, want, spatial.TransformPoint(spatial.Multiply(a, b), x), 1e-9)

	// directions ignore translation
	requireVec3InDelta(t,
		spatial.TransformPoint(a, x).Sub(a.P),
		spatial.TransformVector(a, x), 1e-12)
}

func TestRotateMatchesMatrix(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	q := randUnitQuat(rng)
	x := randVec3(rng)

	requireVec3InDelta(t, spatial.QuatToMat33(q).MulVec(x), spatial.Rotate(q, x), 1e-12)
}

func TestLerpEndpointsAndNoRenormalize(t *testing.T) {
	rng := rand.New(rand.NewSource(15))
	a, b := randTransform(rng), randTransform(rng)

	requireTransformInDelta(t, a, spatial.Lerp(a, b, 0), tol)
	requireTransformInDelta(t, b, spatial.Lerp(a, b, 1), tol)

	mid := spatial.Lerp(a, b, 0.5)
	want := spatial.Scale(spatial.Add(a, b), 0.5)
	require.InDelta(t, quat.Abs(want.Q), quat.Abs(mid.Q), tol)
}

func TestAtOrder(t *testing.T) {
	tr := spatial.NewTransform(r3.Vector{X: 1, Y: 2, Z: 3}, quat.Number{Imag: 4, Jmag: 5, Kmag: 6, Real: 7})
	for i := 0; i < spatial.TransformSize; i++ {
		require.Equal(t, float64(i+1), tr.At(i))
	}

	tr.SetAt(6, 1)
	require.Equal(t, 1.0, tr.Q.Real)

	var adj spatial.Transform
	spatial.AdjAt(tr, 3, &adj, 2)
	require.Equal(t, 2.0, adj.Q.Imag)
}

func TestAtOutOfRangePanics(t *testing.T) {
	tr := spatial.Identity()
	require.Panics(t, func() { tr.At(spatial.TransformSize) })
	require.Panics(t, func() { tr.At(-1) })
}

func TestIsFiniteAndEqual(t *testing.T) {
	tr := spatial.Identity()
	require.True(t, tr.IsFinite())
	require.True(t, tr.Equal(spatial.Identity()))

	tr.P.Y = math.Inf(1)
	require.False(t, tr.IsFinite())
	require.False(t, tr.Equal(spatial.Identity()))
}

func TestTensorDot(t *testing.T) {
	a := spatial.NewTransform(r3.Vector{X: 1, Y: 2, Z: 3}, quat.Number{Imag: 1, Jmag: 1, Kmag: 1, Real: 1})
	b := spatial.NewTransform(r3.Vector{X: 1, Y: 1, Z: 1}, quat.Number{Imag: 2, Jmag: 0, Kmag: 0, Real: 3})
	require.Equal(t, 6.0+5.0, spatial.TensorDot(a, b))
}

func TestAdjLerpScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(16))
	a, b, g := randTransform(rng), randTransform(rng), randTransform(rng)

	var adjA, adjB spatial.Transform
	var adjS float64
	spatial.AdjLerp(a, b, 0.3, &adjA, &adjB, &adjS, g)

	require.InDelta(t, spatial.TensorDot(spatial.Sub(b, a), g), adjS, 1e-12)
	requireTransformInDelta(t, spatial.Scale(g, 0.7), adjA, 1e-12)
	requireTransformInDelta(t, spatial.Scale(g, 0.3), adjB, 1e-12)
}

func TestAccessorAdjoints(t *testing.T) {
	tr := spatial.Identity()
	var adj spatial.Transform

	spatial.AdjTranslation(tr, &adj, r3.Vector{X: 1})
	spatial.AdjRotation(tr, &adj, quat.Number{Real: 2})
	spatial.AdjNewTransform(&adj.P, &adj.Q, spatial.NewTransform(r3.Vector{X: 1}, quat.Number{Real: 1}))

	require.Equal(t, r3.Vector{X: 2}, adj.P)
	require.Equal(t, quat.Number{Real: 3}, adj.Q)
}
