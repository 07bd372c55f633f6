package metrics

import (
	"math"

	"github.com/san-kum/spatialdyn/internal/articulation"
	"gonum.org/v1/gonum/mat"
)

// Asymmetry is the largest |M[i][j] - M[j][i]| over all mass matrices.
type Asymmetry struct {
	max float64
}

func NewAsymmetry() *Asymmetry { return &Asymmetry{} }

func (a *Asymmetry) Name() string { return "mass_asymmetry" }

func (a *Asymmetry) Observe(m *articulation.Model, J, M []float64) {
	if M == nil {
		return
	}
	l := m.MassLayout()
	for ai := range m.Articulations {
		n, start := l.Rows[ai], l.Starts[ai]
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a.max = math.Max(a.max, math.Abs(M[start+i*n+j]-M[start+j*n+i]))
			}
		}
	}
}

func (a *Asymmetry) Value() float64 { return a.max }

func (a *Asymmetry) Reset() { a.max = 0 }

// InertiaSpectrum is the smallest eigenvalue over the symmetric parts of
// the per-joint spatial inertias. It is positive for physical bodies with
// nonzero mass and zero for massless joints.
type InertiaSpectrum struct {
	min  float64
	seen bool
}

func NewInertiaSpectrum() *InertiaSpectrum { return &InertiaSpectrum{} }

func (s *InertiaSpectrum) Name() string { return "min_inertia_eigenvalue" }

func (s *InertiaSpectrum) Observe(m *articulation.Model, J, M []float64) {
	for _, I := range m.Inertia {
		sym := mat.NewSymDense(6, nil)
		for i := 0; i < 6; i++ {
			for j := i; j < 6; j++ {
				sym.SetSym(i, j, 0.5*(I[i][j]+I[j][i]))
			}
		}

		var es mat.EigenSym
		if !es.Factorize(sym, false) {
			continue
		}
		// values are returned in ascending order
		v := es.Values(nil)[0]
		if !s.seen || v < s.min {
			s.min = v
			s.seen = true
		}
	}
}

func (s *InertiaSpectrum) Value() float64 { return s.min }

func (s *InertiaSpectrum) Reset() {
	s.min = 0
	s.seen = false
}
