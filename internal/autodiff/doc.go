// Package autodiff drives the spatial adjoint functions in reverse order.
//
// A Tape records one backward closure per forward operation. Backward
// replays them last to first, so every spatial.AdjF call sees the fully
// accumulated gradient of its output:
//
//	tape := autodiff.NewTape()
//	a, b := autodiff.NewPose(ta), autodiff.NewPose(tb)
//	c := tape.Multiply(a, b)
//	loss := tape.TensorDot(c, autodiff.NewPose(w))
//	loss.Grad = 1
//	tape.Backward()
//	// a.Grad, b.Grad now hold d(loss)/d(a), d(loss)/d(b)
//
// Gradients only accumulate. Call ZeroGrad on reused nodes and Reset on
// the tape between passes.
package autodiff
