package metrics

import (
	"github.com/san-kum/spatialdyn/internal/articulation"
	"gonum.org/v1/gonum/mat"
)

// Fill is the fraction of Jacobian entries that are nonzero.
type Fill struct {
	nonzero int
	total   int
}

func NewFill() *Fill { return &Fill{} }

func (f *Fill) Name() string { return "jacobian_fill" }

func (f *Fill) Observe(m *articulation.Model, J, M []float64) {
	if J == nil {
		return
	}
	size := m.JacobianLayout().Size
	for _, v := range J[:size] {
		if v != 0 {
			f.nonzero++
		}
	}
	f.total += size
}

func (f *Fill) Value() float64 {
	if f.total == 0 {
		return 0
	}
	return float64(f.nonzero) / float64(f.total)
}

func (f *Fill) Reset() {
	f.nonzero = 0
	f.total = 0
}

const DefaultRankTolerance = 1e-10

// RankDeficit sums, over articulations, the number of DOF columns that are
// linearly dependent on the others. A nonzero value means some joint
// motion subspaces are redundant.
type RankDeficit struct {
	rcond   float64
	deficit int
}

func NewRankDeficit(rcond float64) *RankDeficit {
	return &RankDeficit{rcond: rcond}
}

func (r *RankDeficit) Name() string { return "jacobian_rank_deficit" }

func (r *RankDeficit) Observe(m *articulation.Model, J, M []float64) {
	if J == nil {
		return
	}
	l := m.JacobianLayout()
	for ai := range m.Articulations {
		rows, cols := l.Rows[ai], l.Cols[ai]
		if rows == 0 || cols == 0 {
			continue
		}
		data := make([]float64, rows*cols)
		copy(data, J[l.Starts[ai]:])

		var svd mat.SVD
		if !svd.Factorize(mat.NewDense(rows, cols, data), mat.SVDNone) {
			continue
		}
		r.deficit += cols - svd.Rank(r.rcond)
	}
}

func (r *RankDeficit) Value() float64 { return float64(r.deficit) }

func (r *RankDeficit) Reset() { r.deficit = 0 }
