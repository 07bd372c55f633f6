package articulation_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/san-kum/spatialdyn/internal/articulation"
	"github.com/san-kum/spatialdyn/internal/compute"
	"github.com/san-kum/spatialdyn/internal/spatial"
)

// benchModel builds n identical 12-joint chains.
func benchModel(n int) *articulation.Model {
	const joints = 12
	rng := rand.New(rand.NewSource(1))
	m := &articulation.Model{QdStart: []int{0}}
	for a := 0; a < n; a++ {
		base := a * joints
		for j := 0; j < joints; j++ {
			p := articulation.NoParent
			if j > 0 {
				p = base + j - 1
			}
			m.Parents = append(m.Parents, p)
			m.QdStart = append(m.QdStart, m.QdStart[len(m.QdStart)-1]+1)
		}
		m.Articulations = append(m.Articulations, articulation.Articulation{JointStart: base, JointCount: joints})
	}
	m.S = randSubspace(rng, m.DofCount())
	m.Inertia = randInertia(rng, m.JointCount())
	return m
}

func benchAssemble(b *testing.B, backend compute.Backend) {
	m := benchModel(64)
	J := make([]float64, m.JacobianLayout().Size)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.AssembleJacobian(ctx, backend, J); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssembleJacobianSerial(b *testing.B) {
	benchAssemble(b, compute.NewSerialBackend())
}

func BenchmarkAssembleJacobianCPU(b *testing.B) {
	benchAssemble(b, compute.NewCPUBackend())
}

func BenchmarkAdjAssembleJacobianCPU(b *testing.B) {
	m := benchModel(64)
	adjJ := make([]float64, m.JacobianLayout().Size)
	for i := range adjJ {
		adjJ[i] = 1
	}
	adjS := make([]spatial.Vector, m.DofCount())
	backend := compute.NewCPUBackend()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.AdjAssembleJacobian(ctx, backend, adjS, adjJ); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssembleMassCPU(b *testing.B) {
	m := benchModel(64)
	M := make([]float64, m.MassLayout().Size)
	backend := compute.NewCPUBackend()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.AssembleMass(ctx, backend, M); err != nil {
			b.Fatal(err)
		}
	}
}
