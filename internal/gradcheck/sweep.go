package gradcheck

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/san-kum/spatialdyn/internal/optim"
	"github.com/san-kum/spatialdyn/internal/spatial"
	"gonum.org/v1/gonum/num/quat"
)

// DefaultSteps spans the useful range of central-difference steps for
// float64 with O(1) inputs.
var DefaultSteps = []float64{1e-3, 1e-4, 1e-5, 1e-6, 1e-7, 1e-8, 1e-9}

var ErrNoStep = errors.New("gradcheck: no candidate step produced a finite error")

// BestStep checks every case plus a joint-angle case at each candidate
// step and returns the step with the smallest worst-case relative error.
// The algebra cases are low-degree polynomials, for which central
// differences have no truncation error; the joint-angle case is what makes
// large steps lose.
func BestStep(ctx context.Context, seed int64, steps []float64) (step, worst float64, err error) {
	rng := rand.New(rand.NewSource(seed))
	cases := append(Cases(rng), jointAngleCase(rng))
	points := drawPoints(rng, cases)

	g := optim.NewGridSearch([]string{"step"}, [][]float64{steps})
	params, worst, err := g.Search(ctx, func(_ context.Context, p map[string]float64) (float64, error) {
		results, err := CheckAll(cases, points, DefaultTolerance, p["step"])
		if err != nil {
			return 0, err
		}
		return WorstRel(results), nil
	})
	if err != nil {
		return 0, 0, err
	}
	if params == nil {
		return 0, 0, ErrNoStep
	}
	return params["step"], worst, nil
}

// axisAngle is the unit quaternion rotating by theta about a unit axis.
func axisAngle(axis r3.Vector, theta float64) quat.Number {
	s, c := math.Sincos(theta / 2)
	return quat.Number{Real: c, Imag: s * axis.X, Jmag: s * axis.Y, Kmag: s * axis.Z}
}

// jointAngleCase rotates fixed points about fixed revolute axes by the
// input angles:
//
//	L = sum_i <rotate(axisAngle(a_i, theta_i), x_i), w_i>
func jointAngleCase(rng *rand.Rand) Case {
	const joints = 3
	var axes, xs, ws [joints]r3.Vector
	for i := range axes {
		axes[i] = randVec3(rng).Normalize()
		xs[i] = randVec3(rng)
		ws[i] = randVec3(rng)
	}

	return newCase("joint_angles", joints,
		func(r *reader) float64 {
			var l float64
			for i := 0; i < joints; i++ {
				q := axisAngle(axes[i], r.scalar())
				l += spatial.Rotate(q, xs[i]).Dot(ws[i])
			}
			return l
		},
		func(r *reader, w *writer) {
			for i := 0; i < joints; i++ {
				theta := r.scalar()
				var adjQ quat.Number
				var adjX r3.Vector
				spatial.AdjRotate(axisAngle(axes[i], theta), xs[i], &adjQ, &adjX, ws[i])

				s, c := math.Sincos(theta / 2)
				a := axes[i]
				dq := quat.Number{Real: -s / 2, Imag: c / 2 * a.X, Jmag: c / 2 * a.Y, Kmag: c / 2 * a.Z}
				w.scalar(quatDot(adjQ, dq))
			}
		})
}
