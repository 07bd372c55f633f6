package articulation

import (
	"context"
	"fmt"

	"github.com/san-kum/spatialdyn/internal/compute"
	"github.com/san-kum/spatialdyn/internal/spatial"
)

type workItem struct {
	art   int
	local int
}

// workItems lists one (articulation, local joint) pair per launched kernel.
func (m *Model) workItems() []workItem {
	items := make([]workItem, 0, m.JointCount())
	for ai, a := range m.Articulations {
		for i := 0; i < a.JointCount; i++ {
			items = append(items, workItem{art: ai, local: i})
		}
	}
	return items
}

func checkLen(what string, have, want int) error {
	if have < want {
		return fmt.Errorf("%w: %s has %d elements, need %d", ErrBufferSize, what, have, want)
	}
	return nil
}

// AssembleJacobian writes every articulation's Jacobian into J at the
// offsets of JacobianLayout, one work item per joint. J must be zeroed.
func (m *Model) AssembleJacobian(ctx context.Context, b compute.Backend, J []float64) error {
	layout := m.JacobianLayout()
	if err := checkLen("jacobian", len(J), layout.Size); err != nil {
		return err
	}

	items := m.workItems()
	return b.Launch(ctx, len(items), func(tid int) {
		w := items[tid]
		a := m.Articulations[w.art]
		JacobianJoint(w.local, m.S, m.Parents, m.QdStart, a.JointStart, a.JointCount, layout.Starts[w.art], J)
	})
}

// AdjAssembleJacobian accumulates adjJ into adjS. Items run concurrently
// on parallel backends, so the atomic kernel is used.
func (m *Model) AdjAssembleJacobian(ctx context.Context, b compute.Backend, adjS []spatial.Vector, adjJ []float64) error {
	layout := m.JacobianLayout()
	if err := checkLen("jacobian adjoint", len(adjJ), layout.Size); err != nil {
		return err
	}
	if err := checkLen("motion subspace adjoint", len(adjS), m.DofCount()); err != nil {
		return err
	}

	items := m.workItems()
	return b.Launch(ctx, len(items), func(tid int) {
		w := items[tid]
		a := m.Articulations[w.art]
		AdjJacobianJoint(w.local, m.S, m.Parents, m.QdStart, a.JointStart, a.JointCount, layout.Starts[w.art], nil, adjS, adjJ)
	})
}

// AssembleMass writes every articulation's block-diagonal mass matrix into
// M at the offsets of MassLayout. M must be zeroed.
func (m *Model) AssembleMass(ctx context.Context, b compute.Backend, M []float64) error {
	layout := m.MassLayout()
	if err := checkLen("mass", len(M), layout.Size); err != nil {
		return err
	}
	if err := checkLen("inertia", len(m.Inertia), m.JointCount()); err != nil {
		return err
	}

	items := m.workItems()
	return b.Launch(ctx, len(items), func(tid int) {
		w := items[tid]
		a := m.Articulations[w.art]
		MassJoint(w.local, m.Inertia, a.JointStart, a.JointCount, layout.Starts[w.art], M)
	})
}

func (m *Model) AdjAssembleMass(ctx context.Context, b compute.Backend, adjInertia []spatial.Matrix, adjM []float64) error {
	layout := m.MassLayout()
	if err := checkLen("mass adjoint", len(adjM), layout.Size); err != nil {
		return err
	}
	if err := checkLen("inertia adjoint", len(adjInertia), m.JointCount()); err != nil {
		return err
	}
	if err := checkLen("inertia", len(m.Inertia), m.JointCount()); err != nil {
		return err
	}

	items := m.workItems()
	return b.Launch(ctx, len(items), func(tid int) {
		w := items[tid]
		a := m.Articulations[w.art]
		AdjMassJoint(w.local, m.Inertia, a.JointStart, a.JointCount, layout.Starts[w.art], nil, adjInertia, adjM)
	})
}
