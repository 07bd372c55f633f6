package autodiff

import (
	"github.com/golang/geo/r3"
	"github.com/san-kum/spatialdyn/internal/spatial"
)

// Pose is a Transform together with its gradient accumulator.
type Pose struct {
	Val  spatial.Transform
	Grad spatial.Transform
}

func NewPose(t spatial.Transform) *Pose { return &Pose{Val: t} }

func (p *Pose) ZeroGrad() { p.Grad = spatial.Transform{} }

// Point is a 3-vector node, used for both points and free vectors.
type Point struct {
	Val  r3.Vector
	Grad r3.Vector
}

func NewPoint(v r3.Vector) *Point { return &Point{Val: v} }

func (p *Point) ZeroGrad() { p.Grad = r3.Vector{} }

// Twist is a spatial vector node.
type Twist struct {
	Val  spatial.Vector
	Grad spatial.Vector
}

func NewTwist(v spatial.Vector) *Twist { return &Twist{Val: v} }

func (t *Twist) ZeroGrad() { t.Grad = spatial.Vector{} }

type Scalar struct {
	Val  float64
	Grad float64
}

func NewScalar(v float64) *Scalar { return &Scalar{Val: v} }

func (s *Scalar) ZeroGrad() { s.Grad = 0 }
