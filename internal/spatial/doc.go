// Package spatial provides spatial-algebra primitives for articulated rigid
// bodies together with their reverse-mode gradient functions.
//
// The package defines:
//
//   - [Vector]: 6D twist/wrench, angular part W first, linear part V second
//   - [Transform]: rigid pose (position + quaternion)
//   - [Mat33] and [Matrix]: 3×3 and 6×6 dense value matrices
//   - [FrameMatrix]: the spatial adjoint [[R,0],[S,R]] between two frames
//
// # Adjoint Functions
//
// Every forward function F has a companion AdjF that receives the forward
// inputs, pointers to the gradient accumulators of those inputs and the
// gradient of F's output. AdjF only ever adds into the accumulators:
//
//	c := spatial.Cross(a, b)
//	...
//	var adjA, adjB spatial.Vector
//	spatial.AdjCross(a, b, &adjA, &adjB, adjC)
//
// Accumulators must start at zero and may be shared by several call sites.
// Calling adjoints in reverse order of the forward calls is the caller's
// responsibility (see package autodiff).
//
// Nothing in this package allocates, and no function returns an error.
// Quaternions are never renormalized.
package spatial
