package gradcheck_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spatialdyn/internal/gradcheck"
)

var _ = Describe("Check", func() {
	It("accepts an exact gradient", func() {
		c := gradcheck.Case{
			Name: "square",
			Dim:  2,
			Loss: func(x []float64) float64 { return x[0]*x[0] + 3*x[1] },
			Grad: func(x, g []float64) {
				g[0] += 2 * x[0]
				g[1] += 3
			},
		}
		res, err := gradcheck.Check(c, []float64{1.5, -2}, gradcheck.DefaultTolerance)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Pass).To(BeTrue())
		Expect(res.MaxAbs).To(BeNumerically("<", 1e-8))
	})

	It("rejects a wrong gradient", func() {
		c := gradcheck.Case{
			Name: "wrong",
			Dim:  1,
			Loss: func(x []float64) float64 { return x[0] * x[0] },
			Grad: func(x, g []float64) { g[0] += x[0] },
		}
		res, err := gradcheck.Check(c, []float64{2}, gradcheck.DefaultTolerance)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Pass).To(BeFalse())
		Expect(res.MaxAbs).To(BeNumerically("~", 2, 1e-6))
	})

	It("reports a dimension mismatch", func() {
		c := gradcheck.Case{Name: "dim", Dim: 3}
		_, err := gradcheck.Check(c, []float64{1}, gradcheck.DefaultTolerance)
		Expect(err).To(MatchError(gradcheck.ErrDimension))
	})
})

var _ = Describe("Cases", func() {
	names := func() []string {
		var out []string
		for _, c := range gradcheck.Cases(rand.New(rand.NewSource(0))) {
			out = append(out, c.Name)
		}
		return out
	}

	It("covers every differentiable operation", func() {
		Expect(names()).To(ContainElements(
			"dot", "cross", "cross_dual", "top", "bottom",
			"multiply", "inverse", "transform_vector", "transform_point",
			"lerp", "add", "sub", "scale",
			"rotate", "quat_mul", "quat_to_mat33",
			"skew", "mat33_mul", "frame_matrix", "mul_vector",
			"spatial_jacobian", "spatial_mass", "pose_chain",
		))
	})

	for _, seed := range []int64{1, 7, 42} {
		seed := seed
		It("matches finite differences", func() {
			rng := rand.New(rand.NewSource(seed))
			for _, c := range gradcheck.Cases(rng) {
				x := make([]float64, c.Dim)
				for i := range x {
					x[i] = rng.NormFloat64()
				}
				res, err := gradcheck.Check(c, x, gradcheck.DefaultTolerance)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.MaxRel).To(BeNumerically("<=", gradcheck.DefaultTolerance), "case %s seed %d", c.Name, seed)
			}
		})
	}
})

var _ = Describe("Run", func() {
	It("passes every case and is reproducible", func() {
		a, err := gradcheck.Run(3, gradcheck.DefaultTolerance)
		Expect(err).NotTo(HaveOccurred())
		b, err := gradcheck.Run(3, gradcheck.DefaultTolerance)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
		Expect(gradcheck.Failed(a)).To(BeEmpty())
	})
})

var _ = Describe("CheckAll", func() {
	square := gradcheck.Case{
		Name: "square",
		Dim:  1,
		Loss: func(x []float64) float64 { return x[0] * x[0] },
		Grad: func(x, g []float64) { g[0] += 2 * x[0] },
	}

	It("checks each case at its own point", func() {
		res, err := gradcheck.CheckAll([]gradcheck.Case{square, square}, [][]float64{{1}, {-3}}, gradcheck.DefaultTolerance, gradcheck.DefaultStep)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(HaveLen(2))
		Expect(gradcheck.Failed(res)).To(BeEmpty())
	})

	It("names the case whose point has the wrong length", func() {
		_, err := gradcheck.CheckAll([]gradcheck.Case{square}, [][]float64{{1, 2}}, gradcheck.DefaultTolerance, gradcheck.DefaultStep)
		Expect(err).To(MatchError(gradcheck.ErrDimension))
		Expect(err.Error()).To(ContainSubstring("square"))
	})

	It("rejects a point count that does not match the cases", func() {
		_, err := gradcheck.CheckAll([]gradcheck.Case{square}, nil, gradcheck.DefaultTolerance, gradcheck.DefaultStep)
		Expect(err).To(MatchError(gradcheck.ErrDimension))
	})
})

var _ = Describe("BestStep", func() {
	It("rejects steps too large for the joint-angle case and too small for cancellation", func() {
		for _, seed := range []int64{3, 5} {
			step, worst, err := gradcheck.BestStep(context.Background(), seed, []float64{1e-1, 1e-6, 1e-12})
			Expect(err).NotTo(HaveOccurred())
			Expect(step).To(Equal(1e-6), "seed %d", seed)
			Expect(worst).To(BeNumerically("<=", gradcheck.DefaultTolerance))
		}
	})

	It("picks an interior step from the default range", func() {
		step, worst, err := gradcheck.BestStep(context.Background(), 1, gradcheck.DefaultSteps)
		Expect(err).NotTo(HaveOccurred())
		Expect(step).To(BeNumerically("<", gradcheck.DefaultSteps[0]))
		Expect(step).To(BeNumerically(">", gradcheck.DefaultSteps[len(gradcheck.DefaultSteps)-1]))
		Expect(worst).To(BeNumerically("<=", gradcheck.DefaultTolerance))
	})

	It("keeps the joint-angle case out of Run", func() {
		for _, c := range gradcheck.Cases(rand.New(rand.NewSource(1))) {
			Expect(c.Name).NotTo(Equal("joint_angles"))
		}
	})

	It("reports an empty step list", func() {
		_, _, err := gradcheck.BestStep(context.Background(), 1, nil)
		Expect(err).To(MatchError(gradcheck.ErrNoStep))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := gradcheck.BestStep(ctx, 1, gradcheck.DefaultSteps)
		Expect(err).To(MatchError(context.Canceled))
	})
})
