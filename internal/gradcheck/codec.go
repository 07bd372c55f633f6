package gradcheck

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/san-kum/spatialdyn/internal/spatial"
	"gonum.org/v1/gonum/num/quat"
)

// reader unpacks typed values from a flat parameter vector in order.
type reader struct {
	x []float64
	i int
}

func (r *reader) scalar() float64 {
	v := r.x[r.i]
	r.i++
	return v
}

func (r *reader) vec3() r3.Vector {
	return r3.Vector{X: r.scalar(), Y: r.scalar(), Z: r.scalar()}
}

// quat reads x, y, z, w to match the Transform component order.
func (r *reader) quat() quat.Number {
	x, y, z, w := r.scalar(), r.scalar(), r.scalar(), r.scalar()
	return quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
}

func (r *reader) transform() spatial.Transform {
	p := r.vec3()
	return spatial.NewTransform(p, r.quat())
}

func (r *reader) vector() spatial.Vector {
	w := r.vec3()
	return spatial.Vector{W: w, V: r.vec3()}
}

func (r *reader) mat33() spatial.Mat33 {
	var m spatial.Mat33
	for i := range m {
		for j := range m[i] {
			m[i][j] = r.scalar()
		}
	}
	return m
}

func (r *reader) matrix() spatial.Matrix {
	var m spatial.Matrix
	for i := range m {
		for j := range m[i] {
			m[i][j] = r.scalar()
		}
	}
	return m
}

// writer adds typed gradients into a flat vector in the same order reader
// consumes them.
type writer struct {
	g []float64
	i int
}

func (w *writer) scalar(v float64) {
	w.g[w.i] += v
	w.i++
}

func (w *writer) vec3(v r3.Vector) {
	w.scalar(v.X)
	w.scalar(v.Y)
	w.scalar(v.Z)
}

func (w *writer) quat(q quat.Number) {
	w.scalar(q.Imag)
	w.scalar(q.Jmag)
	w.scalar(q.Kmag)
	w.scalar(q.Real)
}

func (w *writer) transform(t spatial.Transform) {
	w.vec3(t.P)
	w.quat(t.Q)
}

func (w *writer) vector(v spatial.Vector) {
	w.vec3(v.W)
	w.vec3(v.V)
}

func (w *writer) mat33(m spatial.Mat33) {
	for i := range m {
		for j := range m[i] {
			w.scalar(m[i][j])
		}
	}
}

func (w *writer) matrix(m spatial.Matrix) {
	for i := range m {
		for j := range m[i] {
			w.scalar(m[i][j])
		}
	}
}

func quatDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

func mat33Dot(a, b spatial.Mat33) float64 {
	var s float64
	for i := range a {
		for j := range a[i] {
			s += a[i][j] * b[i][j]
		}
	}
	return s
}

func matrixDot(a, b spatial.Matrix) float64 {
	var s float64
	for i := range a {
		for j := range a[i] {
			s += a[i][j] * b[i][j]
		}
	}
	return s
}

func randVec3(rng *rand.Rand) r3.Vector {
	return r3.Vector{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
}

func randQuat(rng *rand.Rand) quat.Number {
	return quat.Number{Real: rng.NormFloat64(), Imag: rng.NormFloat64(), Jmag: rng.NormFloat64(), Kmag: rng.NormFloat64()}
}

func randTransform(rng *rand.Rand) spatial.Transform {
	return spatial.NewTransform(randVec3(rng), randQuat(rng))
}

func randVector(rng *rand.Rand) spatial.Vector {
	return spatial.Vector{W: randVec3(rng), V: randVec3(rng)}
}

func randMat33(rng *rand.Rand) spatial.Mat33 {
	var m spatial.Mat33
	for i := range m {
		for j := range m[i] {
			m[i][j] = rng.NormFloat64()
		}
	}
	return m
}

func randMatrix(rng *rand.Rand) spatial.Matrix {
	var m spatial.Matrix
	for i := range m {
		for j := range m[i] {
			m[i][j] = rng.NormFloat64()
		}
	}
	return m
}

func randSlice(rng *rand.Rand, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
	}
	return x
}
