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

const tol = 1e-12

func randVec3(rng *rand.Rand) r3.Vector {
	return r3.Vector{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
}

func randVector(rng *rand.Rand) spatial.Vector {
	return spatial.Vector{W: randVec3(rng), V: randVec3(rng)}
}

func randUnitQuat(rng *rand.Rand) quat.Number {
	q := quat.Number{Real: rng.NormFloat64(), Imag: rng.NormFloat64(), Jmag: rng.NormFloat64(), Kmag: rng.NormFloat64()}
	return quat.Scale(1/quat.Abs(q), q)
}

func randTransform(rng *rand.Rand) spatial.Transform {
	return spatial.NewTransform(randVec3(rng), randUnitQuat(rng))
}

func requireVec3InDelta(t *testing.T, want, got r3.Vector, delta float64) {
	t.Helper()
	require.InDelta(t, want.X, got.X, delta)
	require.InDelta(t, want.Y, got.Y, delta)
	require.InDelta(t, want.Z, got.Z, delta)
}

func requireVectorInDelta(t *testing.T, want, got spatial.Vector, delta float64) {
	t.Helper()
	requireVec3InDelta(t, want.W, got.W, delta)
	requireVec3InDelta(t, want.V, got.V, delta)
}

// requireTransformInDelta compares transforms up to the q/-q double cover.
func requireTransformInDelta(t *testing.T, want, got spatial.Transform, delta float64) {
	t.Helper()
	requireVec3InDelta(t, want.P, got.P, delta)
	sign := 1.0
	if want.Q.Real*got.Q.Real+want.Q.Imag*got.Q.Imag+want.Q.Jmag*got.Q.Jmag+want.Q.Kmag*got.Q.Kmag < 0 {
		sign = -1
	}
	require.InDelta(t, want.Q.Real, sign*got.Q.Real, delta)
	require.InDelta(t, want.Q.Imag, sign*got.Q.Imag, delta)
	require.InDelta(t, want.Q.Jmag, sign*got.Q.Jmag, delta)
	require.InDelta(t, want.Q.Kmag, sign*got.Q.Kmag, delta)
}

func isZero3(v r3.Vector) bool {
	return math.Abs(v.X)+math.Abs(v.Y)+math.Abs(v.Z) == 0
}
