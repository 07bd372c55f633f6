package articulation

import (
	"fmt"

	"github.com/san-kum/spatialdyn/internal/spatial"
)

// Articulation is a contiguous joint range inside a Model.
type Articulation struct {
	Name       string
	JointStart int
	JointCount int
}

// DofRange returns the global DOF interval [start, end) of the articulation.
func (a Articulation) DofRange(qdStart []int) (start, end int) {
	return qdStart[a.JointStart], qdStart[a.JointStart+a.JointCount]
}

// Model holds the flat per-joint and per-DOF arrays of one or more
// articulations.
type Model struct {
	Parents       []int
	QdStart       []int
	S             []spatial.Vector // one per DOF
	Inertia       []spatial.Matrix // one per joint
	Articulations []Articulation
	JointNames    []string
}

func (m *Model) JointCount() int { return len(m.Parents) }

func (m *Model) DofCount() int {
	if len(m.QdStart) == 0 {
		return 0
	}
	return m.QdStart[len(m.QdStart)-1]
}

// Layout places one matrix per articulation in a shared flat buffer.
type Layout struct {
	Starts []int // element offset of each articulation's matrix
	Rows   []int
	Cols   []int
	Size   int // total elements
}

// JacobianLayout packs each articulation's (joints*6) × dofs Jacobian
// back to back.
func (m *Model) JacobianLayout() Layout {
	var l Layout
	for _, a := range m.Articulations {
		start, end := a.DofRange(m.QdStart)
		l.append(a.JointCount*6, end-start)
	}
	return l
}

// MassLayout packs each articulation's (joints*6) square mass matrix back
// to back.
func (m *Model) MassLayout() Layout {
	var l Layout
	for _, a := range m.Articulations {
		l.append(a.JointCount*6, a.JointCount*6)
	}
	return l
}

func (l *Layout) append(rows, cols int) {
	l.Starts = append(l.Starts, l.Size)
	l.Rows = append(l.Rows, rows)
	l.Cols = append(l.Cols, cols)
	l.Size += rows * cols
}

// Validate checks everything the kernels assume: a well-formed DOF prefix
// sum, parents in range and acyclic, articulations whose ancestor chains
// stay inside their own joint range, and per-DOF and per-joint arrays long
// enough for the layout.
func (m *Model) Validate() error {
	n := m.JointCount()

	if len(m.QdStart) != n+1 {
		return fmt.Errorf("%w: have %d entries for %d joints", ErrDofLayout, len(m.QdStart), n)
	}
	if m.QdStart[0] < 0 {
		return &JointError{Joint: 0, Wrapped: ErrDofLayout}
	}
	for j := 0; j < n; j++ {
		if m.QdStart[j+1] < m.QdStart[j] {
			return &JointError{Joint: j, Wrapped: ErrDofLayout}
		}
	}

	for j, p := range m.Parents {
		if p != NoParent && (p < 0 || p >= n) {
			return &JointError{Joint: j, Wrapped: ErrParentRange}
		}
	}

	for j := 0; j < n; j++ {
		steps := 0
		for k := j; k != NoParent; k = m.Parents[k] {
			if steps > n {
				return &JointError{Joint: j, Wrapped: ErrParentCycle}
			}
			steps++
		}
	}

	for _, a := range m.Articulations {
		if a.JointStart < 0 || a.JointCount < 0 || a.JointStart+a.JointCount > n {
			return fmt.Errorf("%w: %q [%d, %d)", ErrArticulationRange, a.Name, a.JointStart, a.JointStart+a.JointCount)
		}
		end := a.JointStart + a.JointCount
		for j := a.JointStart; j < end; j++ {
			for k := m.Parents[j]; k != NoParent; k = m.Parents[k] {
				if k < a.JointStart || k >= end {
					return &JointError{Joint: j, Wrapped: fmt.Errorf("%w: ancestor %d outside %q", ErrArticulationRange, k, a.Name)}
				}
			}
		}
	}

	if len(m.S) < m.DofCount() {
		return fmt.Errorf("%w: motion subspace has %d of %d dofs", ErrBufferSize, len(m.S), m.DofCount())
	}
	// nil Inertia is a Jacobian-only model; AssembleMass rejects it.
	if m.Inertia != nil && len(m.Inertia) < n {
		return fmt.Errorf("%w: inertia has %d of %d joints", ErrBufferSize, len(m.Inertia), n)
	}

	return nil
}
