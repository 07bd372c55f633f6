// Package articulation assembles system matrices for tree-structured
// mechanisms and scatters their gradients back.
//
// Joints live in flat arrays indexed by joint number. Parents[j] is the
// parent joint or [NoParent]; QdStart[j] is the first degree of freedom
// owned by joint j, so joint j owns DOFs [QdStart[j], QdStart[j+1]).
// One articulation is a contiguous joint range [JointStart,
// JointStart+JointCount) whose DOFs are contiguous as well.
//
//   - [Jacobian]: (JointCount*6) × dofCount spatial Jacobian
//   - [Mass]: (JointCount*6) × (JointCount*6) block-diagonal mass matrix
//
// Both write only the entries they own; output buffers must be zeroed by
// the caller. The Adj* counterparts add into gradient buffers and never
// overwrite.
//
// # Work Items
//
// [JacobianJoint], [MassJoint] and their adjoints process one joint and can
// be launched independently on any [compute.Backend]. Forward kernels write
// disjoint rows; adjoint kernels accumulate with [spatial.AtomicAdd] since
// descendants share their ancestors' motion subspace slots.
//
// Kernels trust their inputs. A parent cycle makes the ancestor walk spin
// forever; use [Model.Validate] on untrusted topology.
package articulation
