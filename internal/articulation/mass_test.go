package articulation_test

import (
	"math/rand"
	"testing"

	"github.com/san-kum/spatialdyn/internal/articulation"
	"github.com/san-kum/spatialdyn/internal/spatial"
	"github.com/stretchr/testify/require"
)

func randInertia(rng *rand.Rand, n int) []spatial.Matrix {
	Is := make([]spatial.Matrix, n)
	for l := range Is {
		for i := 0; i < 6; i++ {
			for j := 0; j < 6; j++ {
				Is[l][i][j] = rng.NormFloat64()
			}
		}
	}
	return Is
}

func TestMassDiagonalRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	Is := randInertia(rng, 5)

	// joints 1..3 of a five-joint batch, written after a 4-element prefix
	jointStart, jointCount, mStart := 1, 3, 4
	n := jointCount * 6
	M := make([]float64, mStart+n*n)
	articulation.Mass(Is, jointStart, jointCount, mStart, M)

	for l := 0; l < jointCount; l++ {
		for b := 0; b < jointCount; b++ {
			for i := 0; i < 6; i++ {
				for j := 0; j < 6; j++ {
					v := M[mStart+(l*6+i)*n+b*6+j]
					if l == b {
						require.Equal(t, Is[jointStart+l][i][j], v)
					} else {
						require.Zero(t, v, "off-diagonal block (%d,%d)", l, b)
					}
				}
			}
		}
	}
	for i := 0; i < mStart; i++ {
		require.Zero(t, M[i])
	}
}

func TestAdjMassCopiesDiagonalAdditively(t *testing.T) {
	jointCount := 2
	n := jointCount * 6
	adjM := make([]float64, n*n)
	for i := range adjM {
		adjM[i] = float64(i)
	}

	adjIs := make([]spatial.Matrix, 3)
	adjIs[1][0][0] = 100

	articulation.AdjMass(nil, 1, jointCount, 0, nil, adjIs, adjM)

	require.Equal(t, spatial.Matrix{}, adjIs[0])
	require.Equal(t, 100.0+adjM[0], adjIs[1][0][0])
	require.Equal(t, adjM[5*n+5], adjIs[1][5][5])
	require.Equal(t, adjM[(6+2)*n+6+3], adjIs[2][2][3])

	var again [3]spatial.Matrix
	for l := 0; l < jointCount; l++ {
		articulation.AdjMassJoint(l, nil, 1, jointCount, 0, nil, again[:], adjM)
	}
	require.Equal(t, adjIs[2], again[2])
}
