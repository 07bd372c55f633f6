package metrics

import "github.com/san-kum/spatialdyn/internal/articulation"

// Metric summarizes assembled matrices. J and M follow the model's
// JacobianLayout and MassLayout; either may be nil.
type Metric interface {
	Name() string
	Observe(m *articulation.Model, J, M []float64)
	Value() float64
	Reset()
}

// Default returns the metrics reported for every assembly run.
func Default() []Metric {
	return []Metric{
		NewFill(),
		NewRankDeficit(DefaultRankTolerance),
		NewAsymmetry(),
		NewInertiaSpectrum(),
	}
}

// Collect observes one assembly with every metric and returns their
// values by name.
func Collect(ms []Metric, m *articulation.Model, J, M []float64) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, metric := range ms {
		metric.Reset()
		metric.Observe(m, J, M)
		out[metric.Name()] = metric.Value()
	}
	return out
}
