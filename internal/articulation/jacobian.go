package articulation

import "github.com/san-kum/spatialdyn/internal/spatial"

// NoParent marks a root joint in a parent array.
const NoParent = -1

func rowIndex(stride, i, j int) int {
	return i*stride + j
}

// Ancestors calls fn for joint j and every ancestor of j, nearest first.
func Ancestors(parents []int, j int, fn func(joint int)) {
	for ; j != NoParent; j = parents[j] {
		fn(j)
	}
}

// jacobianColumns visits every articulation-local column that contributes
// to row block i. Forward and adjoint kernels share it so they always
// touch the same (row block, column) set.
func jacobianColumns(i int, parents, qdStart []int, jointStart int, fn func(col int)) {
	dofStart := qdStart[jointStart]

	for j := jointStart + i; j != NoParent; j = parents[j] {
		first := qdStart[j] - dofStart
		last := qdStart[j+1] - dofStart
		for col := first; col < last; col++ {
			fn(col)
		}
	}
}

// JacobianDofs returns the first DOF and DOF count of the joint range.
func JacobianDofs(qdStart []int, jointStart, jointCount int) (start, count int) {
	start = qdStart[jointStart]
	return start, qdStart[jointStart+jointCount] - start
}

// Jacobian writes the spatial Jacobian of joints [jointStart,
// jointStart+jointCount) into J[jStart:] as a row-major
// (jointCount*6) × dofCount matrix. Row block i holds, for every DOF owned
// by joint jointStart+i or one of its ancestors, that DOF's motion subspace
// vector. All other entries are left untouched.
func Jacobian(S []spatial.Vector, parents, qdStart []int, jointStart, jointCount, jStart int, J []float64) {
	for i := 0; i < jointCount; i++ {
		JacobianJoint(i, S, parents, qdStart, jointStart, jointCount, jStart, J)
	}
}

// JacobianJoint fills row block i only.
func JacobianJoint(i int, S []spatial.Vector, parents, qdStart []int, jointStart, jointCount, jStart int, J []float64) {
	dofStart, dofCount := JacobianDofs(qdStart, jointStart, jointCount)
	S = S[dofStart:]
	J = J[jStart:]
	rowStart := i * 6

	jacobianColumns(i, parents, qdStart, jointStart, func(col int) {
		s := S[col]
		J[rowIndex(dofCount, rowStart+0, col)] = s.W.X
		J[rowIndex(dofCount, rowStart+1, col)] = s.W.Y
		J[rowIndex(dofCount, rowStart+2, col)] = s.W.Z
		J[rowIndex(dofCount, rowStart+3, col)] = s.V.X
		J[rowIndex(dofCount, rowStart+4, col)] = s.V.Y
		J[rowIndex(dofCount, rowStart+5, col)] = s.V.Z
	})
}

// AdjJacobian adds every adjJ entry written by Jacobian back into the adjS
// slot it was copied from. A DOF shared by several descendants receives the
// sum over all of them. J is unused and may be nil.
func AdjJacobian(S []spatial.Vector, parents, qdStart []int, jointStart, jointCount, jStart int, J []float64,
	adjS []spatial.Vector, adjJ []float64) {
	dofStart, dofCount := JacobianDofs(qdStart, jointStart, jointCount)
	adjS = adjS[dofStart:]
	adjJ = adjJ[jStart:]

	for i := 0; i < jointCount; i++ {
		rowStart := i * 6
		jacobianColumns(i, parents, qdStart, jointStart, func(col int) {
			a := &adjS[col]
			a.W.X += adjJ[rowIndex(dofCount, rowStart+0, col)]
			a.W.Y += adjJ[rowIndex(dofCount, rowStart+1, col)]
			a.W.Z += adjJ[rowIndex(dofCount, rowStart+2, col)]
			a.V.X += adjJ[rowIndex(dofCount, rowStart+3, col)]
			a.V.Y += adjJ[rowIndex(dofCount, rowStart+4, col)]
			a.V.Z += adjJ[rowIndex(dofCount, rowStart+5, col)]
		})
	}
}

// AdjJacobianJoint is the adjoint of JacobianJoint. It accumulates
// atomically so that all row blocks may run concurrently.
func AdjJacobianJoint(i int, S []spatial.Vector, parents, qdStart []int, jointStart, jointCount, jStart int, J []float64,
	adjS []spatial.Vector, adjJ []float64) {
	dofStart, dofCount := JacobianDofs(qdStart, jointStart, jointCount)
	adjS = adjS[dofStart:]
	adjJ = adjJ[jStart:]
	rowStart := i * 6

	jacobianColumns(i, parents, qdStart, jointStart, func(col int) {
		a := &adjS[col]
		for k := 0; k < 6; k++ {
			spatial.AtomicAdd(a.Ptr(k), adjJ[rowIndex(dofCount, rowStart+k, col)])
		}
	})
}
