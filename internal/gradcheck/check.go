package gradcheck

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
)

// DefaultStep is the central-difference step. With O(1) inputs it keeps
// truncation and cancellation error near 1e-10.
const DefaultStep = 1e-6

// DefaultTolerance bounds the relative error accepted by Check.
const DefaultTolerance = 1e-6

var ErrDimension = errors.New("gradcheck: parameter length does not match case dimension")

// Case is one scalar loss over a flat parameter vector and its analytic
// gradient. Grad adds into grad, which has length Dim.
type Case struct {
	Name string
	Dim  int
	Loss func(x []float64) float64
	Grad func(x []float64, grad []float64)
}

// Result reports how far the analytic gradient is from the numeric one.
type Result struct {
	Name   string
	Dim    int
	MaxAbs float64
	MaxRel float64
	Pass   bool
}

// Check compares c.Grad at x with a central finite-difference gradient of
// c.Loss. MaxRel scales MaxAbs by the larger of one and the numeric
// gradient's max norm.
func Check(c Case, x []float64, tol float64) (Result, error) {
	return CheckStep(c, x, tol, DefaultStep)
}

// CheckStep is Check with an explicit finite-difference step.
func CheckStep(c Case, x []float64, tol, step float64) (Result, error) {
	if len(x) != c.Dim {
		return Result{}, ErrDimension
	}

	numeric := fd.Gradient(nil, c.Loss, x, &fd.Settings{
		Formula: fd.Central,
		Step:    step,
	})

	analytic := make([]float64, c.Dim)
	c.Grad(x, analytic)

	res := Result{Name: c.Name, Dim: c.Dim}
	if c.Dim == 0 {
		res.Pass = true
		return res, nil
	}

	res.MaxAbs = floats.Distance(analytic, numeric, math.Inf(1))
	scale := math.Max(1, floats.Norm(numeric, math.Inf(1)))
	res.MaxRel = res.MaxAbs / scale
	res.Pass = res.MaxRel <= tol && !math.IsNaN(res.MaxRel)
	return res, nil
}

// Run checks every case from Cases at a random point drawn from seed.
func Run(seed int64, tol float64) ([]Result, error) {
	return RunStep(seed, tol, DefaultStep)
}

// RunStep is Run with an explicit finite-difference step. The same seed
// always yields the same cases and points regardless of step.
func RunStep(seed int64, tol, step float64) ([]Result, error) {
	rng := rand.New(rand.NewSource(seed))
	cases := Cases(rng)
	return CheckAll(cases, drawPoints(rng, cases), tol, step)
}

// CheckAll checks cases[i] at points[i].
func CheckAll(cases []Case, points [][]float64, tol, step float64) ([]Result, error) {
	if len(points) != len(cases) {
		return nil, fmt.Errorf("%w: %d points for %d cases", ErrDimension, len(points), len(cases))
	}

	results := make([]Result, 0, len(cases))
	for i, c := range cases {
		res, err := CheckStep(c, points[i], tol, step)
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", c.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func drawPoints(rng *rand.Rand, cases []Case) [][]float64 {
	points := make([][]float64, len(cases))
	for i, c := range cases {
		points[i] = randSlice(rng, c.Dim)
	}
	return points
}

// WorstRel returns the largest MaxRel in results.
func WorstRel(results []Result) float64 {
	worst := 0.0
	for _, r := range results {
		worst = math.Max(worst, r.MaxRel)
	}
	return worst
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Pass {
			out = append(out, r)
		}
	}
	return out
}
