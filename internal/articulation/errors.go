package articulation

import (
	"errors"
	"fmt"
)

// Topology and buffer errors reported by Validate.
var (
	// ErrParentCycle indicates the parent chain of a joint never reaches NoParent.
	ErrParentCycle = errors.New("articulation: parent chain contains a cycle")

	// ErrParentRange indicates a parent index outside the joint arrays.
	ErrParentRange = errors.New("articulation: parent index out of range")

	// ErrDofLayout indicates QdStart is shorter than joints+1 or decreasing.
	ErrDofLayout = errors.New("articulation: invalid dof start layout")

	// ErrArticulationRange indicates an articulation joint range outside the model.
	ErrArticulationRange = errors.New("articulation: joint range out of bounds")

	// ErrBufferSize indicates an input or output buffer is too short.
	ErrBufferSize = errors.New("articulation: buffer too small")
)

// JointError attaches the offending joint to a validation error.
type JointError struct {
	Joint   int
	Wrapped error
}

func (e *JointError) Error() string {
	return fmt.Sprintf("joint %d: %v", e.Joint, e.Wrapped)
}

func (e *JointError) Unwrap() error {
	return e.Wrapped
}
