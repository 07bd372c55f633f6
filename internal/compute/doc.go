// Package compute dispatches independent work items.
//
// Numerical kernels are written once as a function of a work-item index
// and launched on whichever backend is active:
//
//   - serial: every item on the calling goroutine, in order
//   - cpu: contiguous chunks across runtime.NumCPU() goroutines
//
// # Usage
//
//	b := compute.GetBackend()
//	err := b.Launch(ctx, jointCount, func(i int) {
//		articulation.JacobianJoint(i, S, parents, qdStart, 0, jointCount, 0, J)
//	})
//
// Kernels launched on the cpu backend must not write the same memory
// location from two items unless they use atomic accumulation.
package compute
