package articulation_test

import (
	"math/rand"
	"testing"

	"github.com/san-kum/spatialdyn/internal/articulation"
	"github.com/san-kum/spatialdyn/internal/spatial"
	"github.com/stretchr/testify/require"
)

func unitSubspace(n int) []spatial.Vector {
	S := make([]spatial.Vector, n)
	for d := range S {
		S[d] = spatial.UnitVector(d % 6)
	}
	return S
}

func randSubspace(rng *rand.Rand, n int) []spatial.Vector {
	S := make([]spatial.Vector, n)
	for d := range S {
		var a [6]float64
		for k := range a {
			a[k] = rng.NormFloat64()
		}
		S[d] = spatial.VectorFromArray(a)
	}
	return S
}

// blockNonzeroCols returns the columns of row block i holding any nonzero.
func blockNonzeroCols(J []float64, i, cols int) []int {
	var nz []int
	for c := 0; c < cols; c++ {
		for k := 0; k < 6; k++ {
			if J[(i*6+k)*cols+c] != 0 {
				nz = append(nz, c)
				break
			}
		}
	}
	return nz
}

// TestJacobianSerialChain covers the three-joint chain: later joints
// depend on every ancestor DOF.
func TestJacobianSerialChain(t *testing.T) {
	parents := []int{-1, 0, 1}
	qdStart := []int{0, 1, 2, 3}
	S := unitSubspace(3)

	J := make([]float64, 3*6*3)
	articulation.Jacobian(S, parents, qdStart, 0, 3, 0, J)

	require.Equal(t, []int{0}, blockNonzeroCols(J, 0, 3))
	require.Equal(t, []int{0, 1}, blockNonzeroCols(J, 1, 3))
	require.Equal(t, []int{0, 1, 2}, blockNonzeroCols(J, 2, 3))

	// column d of every row block that depends on d is the d-th unit twist
	for i := 0; i < 3; i++ {
		for d := 0; d <= i; d++ {
			for k := 0; k < 6; k++ {
				require.Equal(t, S[d].At(k), J[(i*6+k)*3+d])
			}
		}
	}
}

func TestJacobianBranchLeavesSiblingsUntouched(t *testing.T) {
	//      0
	//     / \
	//    1   2
	//    |
	//    3
	parents := []int{-1, 0, 0, 1}
	qdStart := []int{0, 2, 3, 3, 5} // joint 2 owns no DOFs
	S := unitSubspace(5)

	const marker = 42.0
	J := make([]float64, 4*6*5)
	for i := range J {
		J[i] = marker
	}
	articulation.Jacobian(S, parents, qdStart, 0, 4, 0, J)

	written := map[int][]int{
		0: {0, 1},
		1: {0, 1, 2},
		2: {0, 1},
		3: {0, 1, 2, 3, 4},
	}
	for i, cols := range written {
		set := map[int]bool{}
		for _, c := range cols {
			set[c] = true
		}
		for c := 0; c < 5; c++ {
			for k := 0; k < 6; k++ {
				v := J[(i*6+k)*5+c]
				if set[c] {
					require.Equal(t, S[c].At(k), v, "block %d col %d", i, c)
				} else {
					require.Equal(t, marker, v, "block %d col %d must not be written", i, c)
				}
			}
		}
	}
}

// TestJacobianOffsets builds the second articulation of a batch into a
// shared buffer and checks local column/row indexing.
func TestJacobianOffsets(t *testing.T) {
	// articulation A: joints 0-1, dofs 0-2; articulation B: joints 2-3, dofs 3-4
	parents := []int{-1, 0, -1, 2}
	qdStart := []int{0, 2, 3, 4, 5}
	rng := rand.New(rand.NewSource(1))
	S := randSubspace(rng, 5)

	const jStart = 7
	J := make([]float64, jStart+2*6*2)
	articulation.Jacobian(S, parents, qdStart, 2, 2, jStart, J)

	for i := 0; i < jStart; i++ {
		require.Zero(t, J[i])
	}
	out := J[jStart:]
	for k := 0; k < 6; k++ {
		require.Equal(t, S[3].At(k), out[(0*6+k)*2+0])
		require.Zero(t, out[(0*6+k)*2+1])
		require.Equal(t, S[3].At(k), out[(1*6+k)*2+0])
		require.Equal(t, S[4].At(k), out[(1*6+k)*2+1])
	}
}

// TestAdjJacobianUnitEntry seeds one adjJ entry and checks that exactly
// the S component it was copied from receives it.
func TestAdjJacobianUnitEntry(t *testing.T) {
	parents := []int{-1, 0, 1}
	qdStart := []int{0, 1, 2, 3}
	S := unitSubspace(3)
	rows, cols := 18, 3

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			adjJ := make([]float64, rows*cols)
			adjJ[r*cols+c] = 1
			adjS := make([]spatial.Vector, 3)
			articulation.AdjJacobian(S, parents, qdStart, 0, 3, 0, nil, adjS, adjJ)

			block, k := r/6, r%6
			for d := 0; d < 3; d++ {
				for kk := 0; kk < 6; kk++ {
					want := 0.0
					if d == c && kk == k && c <= block {
						want = 1
					}
					require.Equal(t, want, adjS[d].At(kk), "entry (%d,%d) -> S[%d][%d]", r, c, d, kk)
				}
			}
		}
	}
}

func TestAdjJacobianSumsOverDescendants(t *testing.T) {
	parents := []int{-1, 0, 1}
	qdStart := []int{0, 1, 2, 3}
	S := unitSubspace(3)

	adjJ := make([]float64, 18*3)
	for i := range adjJ {
		adjJ[i] = 1
	}
	adjS := make([]spatial.Vector, 3)
	adjS[0] = spatial.NewVector(1, 1, 1, 1, 1, 1)

	articulation.AdjJacobian(S, parents, qdStart, 0, 3, 0, nil, adjS, adjJ)

	// dof 0 is read by three row blocks, dof 1 by two, dof 2 by one; the
	// pre-existing gradient on dof 0 is kept
	require.Equal(t, spatial.NewVector(4, 4, 4, 4, 4, 4), adjS[0])
	require.Equal(t, spatial.NewVector(2, 2, 2, 2, 2, 2), adjS[1])
	require.Equal(t, spatial.NewVector(1, 1, 1, 1, 1, 1), adjS[2])
}

func TestAdjJacobianJointMatchesSequential(t *testing.T) {
	parents := []int{-1, 0, 0, 1, 3, -1, 5}
	qdStart := []int{0, 6, 7, 9, 10, 10, 13, 14}
	rng := rand.New(rand.NewSource(2))
	S := randSubspace(rng, 14)

	jointStart, jointCount := 0, 5
	_, dofs := articulation.JacobianDofs(qdStart, jointStart, jointCount)
	adjJ := make([]float64, jointCount*6*dofs)
	for i := range adjJ {
		adjJ[i] = rng.NormFloat64()
	}

	want := make([]spatial.Vector, 14)
	articulation.AdjJacobian(S, parents, qdStart, jointStart, jointCount, 0, nil, want, adjJ)

	got := make([]spatial.Vector, 14)
	for i := jointCount - 1; i >= 0; i-- {
		articulation.AdjJacobianJoint(i, S, parents, qdStart, jointStart, jointCount, 0, nil, got, adjJ)
	}

	for d := range want {
		for k := 0; k < 6; k++ {
			require.InDelta(t, want[d].At(k), got[d].At(k), 1e-12)
		}
	}
}

func TestAncestors(t *testing.T) {
	parents := []int{-1, 0, 0, 1}
	var seen []int
	articulation.Ancestors(parents, 3, func(j int) { seen = append(seen, j) })
	require.Equal(t, []int{3, 1, 0}, seen)
}
