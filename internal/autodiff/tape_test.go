package autodiff

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/san-kum/spatialdyn/internal/spatial"
	"gonum.org/v1/gonum/num/quat"
)

func randPose(rng *rand.Rand) spatial.Transform {
	q := quat.Number{Real: rng.NormFloat64(), Imag: rng.NormFloat64(), Jmag: rng.NormFloat64(), Kmag: rng.NormFloat64()}
	q = quat.Scale(1/quat.Abs(q), q)
	return spatial.NewTransform(r3.Vector{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}, q)
}

func TestBackwardReverseOrder(t *testing.T) {
	tape := NewTape()
	var order []int
	for i := 0; i < 4; i++ {
		i := i
		tape.Record("step", func() { order = append(order, i) })
	}

	tape.Backward()

	expected := []int{3, 2, 1, 0}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestRecordingToggle(t *testing.T) {
	tape := NewTape()
	if !tape.IsRecording() {
		t.Fatal("expected new tape to record")
	}

	tape.StopRecording()
	tape.Record("ignored", func() {})
	if tape.Len() != 0 {
		t.Errorf("expected 0 ops while stopped, got %d", tape.Len())
	}

	tape.StartRecording()
	a := NewPose(spatial.Identity())
	tape.Inverse(a)
	tape.Multiply(a, a)
	if tape.Len() != 2 {
		t.Errorf("expected 2 ops, got %d", tape.Len())
	}
	if got := tape.Ops(); !reflect.DeepEqual(got, []string{"inverse", "multiply"}) {
		t.Errorf("unexpected ops %v", got)
	}

	tape.Reset()
	if tape.Len() != 0 || !tape.IsRecording() {
		t.Errorf("expected empty recording tape after reset, got len %d", tape.Len())
	}
}

func TestBackwardDoesNotRecord(t *testing.T) {
	tape := NewTape()
	tape.Record("nested", func() { tape.Record("inner", func() {}) })
	tape.Backward()
	if tape.Len() != 1 {
		t.Errorf("expected 1 op, got %d", tape.Len())
	}
	if !tape.IsRecording() {
		t.Error("expected recording to resume after backward")
	}
}

func TestSumAccumulatesSharedNode(t *testing.T) {
	tape := NewTape()
	x := NewPoint(r3.Vector{X: 1, Y: 2, Z: 3})
	y := NewPoint(r3.Vector{X: 4, Y: 5, Z: 6})

	loss := tape.Sum(tape.Dot3(x, y), tape.Dot3(x, x))
	loss.Grad = 1
	tape.Backward()

	// d/dx (x·y + x·x) = y + 2x
	expected := r3.Vector{X: 6, Y: 9, Z: 12}
	if x.Grad != expected {
		t.Errorf("expected %v, got %v", expected, x.Grad)
	}
	if y.Grad != x.Val {
		t.Errorf("expected %v, got %v", x.Val, y.Grad)
	}
}

func TestConstantCompositeHasZeroGradient(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tape := NewTape()
	a := NewPose(randPose(rng))
	w := NewPose(randPose(rng))

	// a * a^-1 is the identity for every unit a, so the loss is flat in a
	// along the unit sphere; the translation gradient is exactly zero.
	loss := tape.TensorDot(tape.Multiply(a, tape.Inverse(a)), w)
	loss.Grad = 1
	tape.Backward()

	for _, g := range []float64{a.Grad.P.X, a.Grad.P.Y, a.Grad.P.Z} {
		if math.Abs(g) > 1e-12 {
			t.Errorf("expected zero translation gradient, got %v", a.Grad.P)
			break
		}
	}
}

func TestPoseChainMatchesDirectAdjoints(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ta, tb := randPose(rng), randPose(rng)
	x := r3.Vector{X: 0.3, Y: -1.2, Z: 0.7}
	w := r3.Vector{X: 1, Y: 2, Z: -1}

	tape := NewTape()
	a, b, px := NewPose(ta), NewPose(tb), NewPoint(x)
	loss := tape.Dot3(tape.TransformPoint(tape.Multiply(a, b), px), NewPoint(w))
	loss.Grad = 1
	tape.Backward()

	ab := spatial.Multiply(ta, tb)
	var adjAB, adjA, adjB spatial.Transform
	var adjX r3.Vector
	spatial.AdjTransformPoint(ab, x, &adjAB, &adjX, w)
	spatial.AdjMultiply(ta, tb, &adjA, &adjB, adjAB)

	if !a.Grad.Equal(adjA) || !b.Grad.Equal(adjB) || px.Grad != adjX {
		t.Errorf("tape gradients differ from direct adjoint calls")
	}
}
