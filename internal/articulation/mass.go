package articulation

import "github.com/san-kum/spatialdyn/internal/spatial"

// Mass copies the spatial inertia of every joint in [jointStart,
// jointStart+jointCount) onto the block diagonal of the row-major
// (jointCount*6) square matrix at M[mStart:]. Off-diagonal blocks are not
// written.
func Mass(Is []spatial.Matrix, jointStart, jointCount, mStart int, M []float64) {
	for l := 0; l < jointCount; l++ {
		MassJoint(l, Is, jointStart, jointCount, mStart, M)
	}
}

// MassJoint writes diagonal block l only.
func MassJoint(l int, Is []spatial.Matrix, jointStart, jointCount, mStart int, M []float64) {
	stride := jointCount * 6
	I := &Is[jointStart+l]

	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			M[mStart+rowIndex(stride, l*6+i, l*6+j)] = I[i][j]
		}
	}
}

// AdjMass adds each diagonal block of adjM into the matching adjIs entry.
// M is unused and may be nil.
func AdjMass(Is []spatial.Matrix, jointStart, jointCount, mStart int, M []float64,
	adjIs []spatial.Matrix, adjM []float64) {
	stride := jointCount * 6

	for l := 0; l < jointCount; l++ {
		a := &adjIs[jointStart+l]
		for i := 0; i < 6; i++ {
			for j := 0; j < 6; j++ {
				a[i][j] += adjM[mStart+rowIndex(stride, l*6+i, l*6+j)]
			}
		}
	}
}

// AdjMassJoint is the atomic, single-block form of AdjMass.
func AdjMassJoint(l int, Is []spatial.Matrix, jointStart, jointCount, mStart int, M []float64,
	adjIs []spatial.Matrix, adjM []float64) {
	stride := jointCount * 6
	a := &adjIs[jointStart+l]

	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			spatial.AtomicAdd(&a[i][j], adjM[mStart+rowIndex(stride, l*6+i, l*6+j)])
		}
	}
}
