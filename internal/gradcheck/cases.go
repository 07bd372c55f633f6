package gradcheck

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/san-kum/spatialdyn/internal/articulation"
	"github.com/san-kum/spatialdyn/internal/autodiff"
	"github.com/san-kum/spatialdyn/internal/spatial"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"
)

func newCase(name string, dim int, loss func(r *reader) float64, grad func(r *reader, w *writer)) Case {
	return Case{
		Name: name,
		Dim:  dim,
		Loss: func(x []float64) float64 {
			return loss(&reader{x: x})
		},
		Grad: func(x, g []float64) {
			grad(&reader{x: x}, &writer{g: g})
		},
	}
}

// Cases returns one case per differentiable operation. Output weights are
// drawn from rng once, so a case's loss is a fixed function of x.
func Cases(rng *rand.Rand) []Case {
	var cases []Case
	cases = append(cases, vectorCases(rng)...)
	cases = append(cases, transformCases(rng)...)
	cases = append(cases, quatCases(rng)...)
	cases = append(cases, matrixCases(rng)...)
	cases = append(cases, articulationCases(rng)...)
	cases = append(cases, poseChainCase(rng))
	return cases
}

func vectorCases(rng *rand.Rand) []Case {
	ws := rng.NormFloat64()
	wv := randVector(rng)
	w3 := randVec3(rng)

	return []Case{
		newCase("dot", 12,
			func(r *reader) float64 {
				a, b := r.vector(), r.vector()
				return ws * spatial.Dot(a, b)
			},
			func(r *reader, w *writer) {
				a, b := r.vector(), r.vector()
				var adjA, adjB spatial.Vector
				spatial.AdjDot(a, b, &adjA, &adjB, ws)
				w.vector(adjA)
				w.vector(adjB)
			}),
		newCase("cross", 12,
			func(r *reader) float64 {
				a, b := r.vector(), r.vector()
				return spatial.Dot(spatial.Cross(a, b), wv)
			},
			func(r *reader, w *writer) {
				a, b := r.vector(), r.vector()
				var adjA, adjB spatial.Vector
				spatial.AdjCross(a, b, &adjA, &adjB, wv)
				w.vector(adjA)
				w.vector(adjB)
			}),
		newCase("cross_dual", 12,
			func(r *reader) float64 {
				a, b := r.vector(), r.vector()
				return spatial.Dot(spatial.CrossDual(a, b), wv)
			},
			func(r *reader, w *writer) {
				a, b := r.vector(), r.vector()
				var adjA, adjB spatial.Vector
				spatial.AdjCrossDual(a, b, &adjA, &adjB, wv)
				w.vector(adjA)
				w.vector(adjB)
			}),
		newCase("top", 6,
			func(r *reader) float64 {
				return spatial.Top(r.vector()).Dot(w3)
			},
			func(r *reader, w *writer) {
				var adjA spatial.Vector
				spatial.AdjTop(r.vector(), &adjA, w3)
				w.vector(adjA)
			}),
		newCase("bottom", 6,
			func(r *reader) float64 {
				return spatial.Bottom(r.vector()).Dot(w3)
			},
			func(r *reader, w *writer) {
				var adjA spatial.Vector
				spatial.AdjBottom(r.vector(), &adjA, w3)
				w.vector(adjA)
			}),
		newCase("add_vector", 12,
			func(r *reader) float64 {
				a, b := r.vector(), r.vector()
				return spatial.Dot(a.Add(b), wv)
			},
			func(r *reader, w *writer) {
				var adjA, adjB spatial.Vector
				spatial.AdjAddVector(&adjA, &adjB, wv)
				w.vector(adjA)
				w.vector(adjB)
			}),
		newCase("scale_vector", 7,
			func(r *reader) float64 {
				a, s := r.vector(), r.scalar()
				return spatial.Dot(a.Scale(s), wv)
			},
			func(r *reader, w *writer) {
				a, s := r.vector(), r.scalar()
				var adjA spatial.Vector
				var adjS float64
				spatial.AdjScaleVector(a, s, &adjA, &adjS, wv)
				w.vector(adjA)
				w.scalar(adjS)
			}),
	}
}

func transformCases(rng *rand.Rand) []Case {
	wt := randTransform(rng)
	w3 := randVec3(rng)

	return []Case{
		newCase("new_transform", 7,
			func(r *reader) float64 {
				p, q := r.vec3(), r.quat()
				return spatial.TensorDot(spatial.NewTransform(p, q), wt)
			},
			func(r *reader, w *writer) {
				var adjP r3.Vector
				var adjQ quat.Number
				spatial.AdjNewTransform(&adjP, &adjQ, wt)
				w.vec3(adjP)
				w.quat(adjQ)
			}),
		newCase("multiply", 14,
			func(r *reader) float64 {
				a, b := r.transform(), r.transform()
				return spatial.TensorDot(spatial.Multiply(a, b), wt)
			},
			func(r *reader, w *writer) {
				a, b := r.transform(), r.transform()
				var adjA, adjB spatial.Transform
				spatial.AdjMultiply(a, b, &adjA, &adjB, wt)
				w.transform(adjA)
				w.transform(adjB)
			}),
		newCase("inverse", 7,
			func(r *reader) float64 {
				return spatial.TensorDot(spatial.Inverse(r.transform()), wt)
			},
			func(r *reader, w *writer) {
				var adjT spatial.Transform
				spatial.AdjInverse(r.transform(), &adjT, wt)
				w.transform(adjT)
			}),
		newCase("transform_vector", 10,
			func(r *reader) float64 {
				t, x := r.transform(), r.vec3()
				return spatial.TransformVector(t, x).Dot(w3)
			},
			func(r *reader, w *writer) {
				t, x := r.transform(), r.vec3()
				var adjT spatial.Transform
				var adjX r3.Vector
				spatial.AdjTransformVector(t, x, &adjT, &adjX, w3)
				w.transform(adjT)
				w.vec3(adjX)
			}),
		newCase("transform_point", 10,
			func(r *reader) float64 {
				t, x := r.transform(), r.vec3()
				return spatial.TransformPoint(t, x).Dot(w3)
			},
			func(r *reader, w *writer) {
				t, x := r.transform(), r.vec3()
				var adjT spatial.Transform
				var adjX r3.Vector
				spatial.AdjTransformPoint(t, x, &adjT, &adjX, w3)
				w.transform(adjT)
				w.vec3(adjX)
			}),
		newCase("add", 14,
			func(r *reader) float64 {
				a, b := r.transform(), r.transform()
				return spatial.TensorDot(spatial.Add(a, b), wt)
			},
			func(r *reader, w *writer) {
				var adjA, adjB spatial.Transform
				spatial.AdjAdd(&adjA, &adjB, wt)
				w.transform(adjA)
				w.transform(adjB)
			}),
		newCase("sub", 14,
			func(r *reader) float64 {
				a, b := r.transform(), r.transform()
				return spatial.TensorDot(spatial.Sub(a, b), wt)
			},
			func(r *reader, w *writer) {
				var adjA, adjB spatial.Transform
				spatial.AdjSub(&adjA, &adjB, wt)
				w.transform(adjA)
				w.transform(adjB)
			}),
		newCase("scale", 8,
			func(r *reader) float64 {
				a, s := r.transform(), r.scalar()
				return spatial.TensorDot(spatial.Scale(a, s), wt)
			},
			func(r *reader, w *writer) {
				a, s := r.transform(), r.scalar()
				var adjA spatial.Transform
				var adjS float64
				spatial.AdjScale(a, s, &adjA, &adjS, wt)
				w.transform(adjA)
				w.scalar(adjS)
			}),
		newCase("lerp", 15,
			func(r *reader) float64 {
				a, b, s := r.transform(), r.transform(), r.scalar()
				return spatial.TensorDot(spatial.Lerp(a, b, s), wt)
			},
			func(r *reader, w *writer) {
				a, b, s := r.transform(), r.transform(), r.scalar()
				var adjA, adjB spatial.Transform
				var adjS float64
				spatial.AdjLerp(a, b, s, &adjA, &adjB, &adjS, wt)
				w.transform(adjA)
				w.transform(adjB)
				w.scalar(adjS)
			}),
	}
}

func quatCases(rng *rand.Rand) []Case {
	wq := randQuat(rng)
	w3 := randVec3(rng)
	wm := randMat33(rng)

	return []Case{
		newCase("rotate", 7,
			func(r *reader) float64 {
				q, x := r.quat(), r.vec3()
				return spatial.Rotate(q, x).Dot(w3)
			},
			func(r *reader, w *writer) {
				q, x := r.quat(), r.vec3()
				var adjQ quat.Number
				var adjX r3.Vector
				spatial.AdjRotate(q, x, &adjQ, &adjX, w3)
				w.quat(adjQ)
				w.vec3(adjX)
			}),
		newCase("quat_mul", 8,
			func(r *reader) float64 {
				a, b := r.quat(), r.quat()
				return quatDot(spatial.QuatMul(a, b), wq)
			},
			func(r *reader, w *writer) {
				a, b := r.quat(), r.quat()
				var adjA, adjB quat.Number
				spatial.AdjQuatMul(a, b, &adjA, &adjB, wq)
				w.quat(adjA)
				w.quat(adjB)
			}),
		newCase("quat_inverse", 4,
			func(r *reader) float64 {
				return quatDot(spatial.QuatInverse(r.quat()), wq)
			},
			func(r *reader, w *writer) {
				var adjQ quat.Number
				spatial.AdjQuatInverse(r.quat(), &adjQ, wq)
				w.quat(adjQ)
			}),
		newCase("quat_to_mat33", 4,
			func(r *reader) float64 {
				return mat33Dot(spatial.QuatToMat33(r.quat()), wm)
			},
			func(r *reader, w *writer) {
				var adjQ quat.Number
				spatial.AdjQuatToMat33(r.quat(), &adjQ, wm)
				w.quat(adjQ)
			}),
	}
}

func matrixCases(rng *rand.Rand) []Case {
	wm := randMat33(rng)
	wM := randMatrix(rng)
	wv := randVector(rng)

	return []Case{
		newCase("skew", 3,
			func(r *reader) float64 {
				return mat33Dot(spatial.Skew(r.vec3()), wm)
			},
			func(r *reader, w *writer) {
				var adjV r3.Vector
				spatial.AdjSkew(r.vec3(), &adjV, wm)
				w.vec3(adjV)
			}),
		newCase("mat33_mul", 18,
			func(r *reader) float64 {
				a, b := r.mat33(), r.mat33()
				return mat33Dot(spatial.Mat33Mul(a, b), wm)
			},
			func(r *reader, w *writer) {
				a, b := r.mat33(), r.mat33()
				var adjA, adjB spatial.Mat33
				spatial.AdjMat33Mul(a, b, &adjA, &adjB, wm)
				w.mat33(adjA)
				w.mat33(adjB)
			}),
		newCase("frame_matrix", 18,
			func(r *reader) float64 {
				R, S := r.mat33(), r.mat33()
				return matrixDot(spatial.FrameMatrix(R, S), wM)
			},
			func(r *reader, w *writer) {
				R, S := r.mat33(), r.mat33()
				var adjR, adjS spatial.Mat33
				spatial.AdjFrameMatrix(R, S, &adjR, &adjS, wM)
				w.mat33(adjR)
				w.mat33(adjS)
			}),
		newCase("transform_frame_matrix", 7,
			func(r *reader) float64 {
				return matrixDot(spatial.TransformFrameMatrix(r.transform()), wM)
			},
			func(r *reader, w *writer) {
				var adjT spatial.Transform
				spatial.AdjTransformFrameMatrix(r.transform(), &adjT, wM)
				w.transform(adjT)
			}),
		newCase("mul_vector", 42,
			func(r *reader) float64 {
				m, v := r.matrix(), r.vector()
				return spatial.Dot(m.MulVector(v), wv)
			},
			func(r *reader, w *writer) {
				m, v := r.matrix(), r.vector()
				var adjM spatial.Matrix
				var adjV spatial.Vector
				spatial.AdjMulVector(m, v, &adjM, &adjV, wv)
				w.matrix(adjM)
				w.vector(adjV)
			}),
	}
}

// articulationCases differentiate the assembled matrices with respect to
// every motion subspace and inertia entry of a branching tree.
func articulationCases(rng *rand.Rand) []Case {
	parents := []int{articulation.NoParent, 0, 0, 1}
	qdStart := []int{0, 2, 3, 3, 5}
	const joints, dofs = 4, 5

	wJ := randSlice(rng, joints*6*dofs)
	wM := randSlice(rng, joints*6*joints*6)

	readS := func(r *reader) []spatial.Vector {
		S := make([]spatial.Vector, dofs)
		for d := range S {
			S[d] = r.vector()
		}
		return S
	}
	readI := func(r *reader) []spatial.Matrix {
		Is := make([]spatial.Matrix, joints)
		for j := range Is {
			Is[j] = r.matrix()
		}
		return Is
	}

	return []Case{
		newCase("spatial_jacobian", dofs*6,
			func(r *reader) float64 {
				J := make([]float64, len(wJ))
				articulation.Jacobian(readS(r), parents, qdStart, 0, joints, 0, J)
				return floats.Dot(J, wJ)
			},
			func(r *reader, w *writer) {
				adjS := make([]spatial.Vector, dofs)
				articulation.AdjJacobian(readS(r), parents, qdStart, 0, joints, 0, nil, adjS, wJ)
				for _, a := range adjS {
					w.vector(a)
				}
			}),
		newCase("spatial_mass", joints*36,
			func(r *reader) float64 {
				M := make([]float64, len(wM))
				articulation.Mass(readI(r), 0, joints, 0, M)
				return floats.Dot(M, wM)
			},
			func(r *reader, w *writer) {
				adjI := make([]spatial.Matrix, joints)
				articulation.AdjMass(readI(r), 0, joints, 0, nil, adjI, wM)
				for _, a := range adjI {
					w.matrix(a)
				}
			}),
	}
}

// poseChainCase runs a small kinematic computation through a Tape:
//
//	L = <(a⁻¹·b)·x, w3> + <X(b)·v, wv> + <lerp(a, b, s), wt>
func poseChainCase(rng *rand.Rand) Case {
	w3 := autodiff.NewPoint(randVec3(rng))
	wv := autodiff.NewTwist(randVector(rng))
	wt := autodiff.NewPose(randTransform(rng))

	build := func(r *reader) (*autodiff.Tape, *autodiff.Scalar, []func(*writer)) {
		tape := autodiff.NewTape()
		a := autodiff.NewPose(r.transform())
		b := autodiff.NewPose(r.transform())
		x := autodiff.NewPoint(r.vec3())
		v := autodiff.NewTwist(r.vector())
		s := autodiff.NewScalar(r.scalar())

		rel := tape.Multiply(tape.Inverse(a), b)
		loss := tape.Sum(
			tape.Dot3(tape.TransformPoint(rel, x), w3),
			tape.Dot(tape.FrameTransform(b, v), wv),
			tape.TensorDot(tape.Lerp(a, b, s), wt),
		)

		emit := []func(*writer){
			func(w *writer) { w.transform(a.Grad) },
			func(w *writer) { w.transform(b.Grad) },
			func(w *writer) { w.vec3(x.Grad) },
			func(w *writer) { w.vector(v.Grad) },
			func(w *writer) { w.scalar(s.Grad) },
		}
		return tape, loss, emit
	}

	return newCase("pose_chain", 7+7+3+6+1,
		func(r *reader) float64 {
			_, loss, _ := build(r)
			return loss.Val
		},
		func(r *reader, w *writer) {
			tape, loss, emit := build(r)
			loss.Grad = 1
			tape.Backward()
			for _, e := range emit {
				e(w)
			}
		})
}
