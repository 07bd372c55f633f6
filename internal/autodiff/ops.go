package autodiff

import (
	"github.com/san-kum/spatialdyn/internal/spatial"
)

func (t *Tape) Multiply(a, b *Pose) *Pose {
	out := NewPose(spatial.Multiply(a.Val, b.Val))
	t.Record("multiply", func() {
		spatial.AdjMultiply(a.Val, b.Val, &a.Grad, &b.Grad, out.Grad)
	})
	return out
}

func (t *Tape) Inverse(a *Pose) *Pose {
	out := NewPose(spatial.Inverse(a.Val))
	t.Record("inverse", func() {
		spatial.AdjInverse(a.Val, &a.Grad, out.Grad)
	})
	return out
}

func (t *Tape) Lerp(a, b *Pose, s *Scalar) *Pose {
	out := NewPose(spatial.Lerp(a.Val, b.Val, s.Val))
	t.Record("lerp", func() {
		spatial.AdjLerp(a.Val, b.Val, s.Val, &a.Grad, &b.Grad, &s.Grad, out.Grad)
	})
	return out
}

func (t *Tape) TransformPoint(a *Pose, x *Point) *Point {
	out := NewPoint(spatial.TransformPoint(a.Val, x.Val))
	t.Record("transform_point", func() {
		spatial.AdjTransformPoint(a.Val, x.Val, &a.Grad, &x.Grad, out.Grad)
	})
	return out
}

func (t *Tape) TransformVector(a *Pose, x *Point) *Point {
	out := NewPoint(spatial.TransformVector(a.Val, x.Val))
	t.Record("transform_vector", func() {
		spatial.AdjTransformVector(a.Val, x.Val, &a.Grad, &x.Grad, out.Grad)
	})
	return out
}

// FrameTransform maps a twist into the frame of a through its 6×6 frame
// matrix.
func (t *Tape) FrameTransform(a *Pose, v *Twist) *Twist {
	m := spatial.TransformFrameMatrix(a.Val)
	out := NewTwist(m.MulVector(v.Val))
	t.Record("frame_transform", func() {
		var adjM spatial.Matrix
		spatial.AdjMulVector(m, v.Val, &adjM, &v.Grad, out.Grad)
		spatial.AdjTransformFrameMatrix(a.Val, &a.Grad, adjM)
	})
	return out
}

func (t *Tape) Cross(a, b *Twist) *Twist {
	out := NewTwist(spatial.Cross(a.Val, b.Val))
	t.Record("cross", func() {
		spatial.AdjCross(a.Val, b.Val, &a.Grad, &b.Grad, out.Grad)
	})
	return out
}

func (t *Tape) Dot(a, b *Twist) *Scalar {
	out := NewScalar(spatial.Dot(a.Val, b.Val))
	t.Record("dot", func() {
		spatial.AdjDot(a.Val, b.Val, &a.Grad, &b.Grad, out.Grad)
	})
	return out
}

func (t *Tape) Dot3(a, b *Point) *Scalar {
	out := NewScalar(a.Val.Dot(b.Val))
	t.Record("dot3", func() {
		spatial.AdjDot3(a.Val, b.Val, &a.Grad, &b.Grad, out.Grad)
	})
	return out
}

func (t *Tape) TensorDot(a, b *Pose) *Scalar {
	out := NewScalar(spatial.TensorDot(a.Val, b.Val))
	t.Record("tensor_dot", func() {
		a.Grad = spatial.Add(a.Grad, spatial.Scale(b.Val, out.Grad))
		b.Grad = spatial.Add(b.Grad, spatial.Scale(a.Val, out.Grad))
	})
	return out
}

func (t *Tape) Sum(xs ...*Scalar) *Scalar {
	out := NewScalar(0)
	for _, x := range xs {
		out.Val += x.Val
	}
	t.Record("sum", func() {
		for _, x := range xs {
			x.Grad += out.Grad
		}
	})
	return out
}
