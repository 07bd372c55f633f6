package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/spatialdyn/internal/articulation"
	"github.com/san-kum/spatialdyn/internal/compute"
	"github.com/san-kum/spatialdyn/internal/config"
	"github.com/san-kum/spatialdyn/internal/metrics"
	"github.com/san-kum/spatialdyn/internal/spatial"
	"github.com/san-kum/spatialdyn/internal/storage"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Result holds one forward assembly and, when requested, the reverse pass
// seeded with random output gradients.
type Result struct {
	Model    *articulation.Model
	Backend  string
	Jacobian []float64
	Mass     []float64

	AdjS       []spatial.Vector
	AdjInertia []spatial.Matrix

	JacobianTime time.Duration
	MassTime     time.Duration
	AdjointTime  time.Duration
	Metrics      map[string]float64
}

type Experiment struct {
	cfg     *config.Config
	model   *articulation.Model
	backend compute.Backend
	metrics []metrics.Metric
	adjoint bool
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg, metrics: metrics.Default()}
}

// WithAdjoint makes Run also time the reverse pass.
func (e *Experiment) WithAdjoint() *Experiment {
	e.adjoint = true
	return e
}

// Setup builds the model and resolves the backend named by the config.
func (e *Experiment) Setup() error {
	model, err := e.cfg.Build()
	if err != nil {
		return err
	}
	backend, err := compute.ByName(e.cfg.Backend)
	if err != nil {
		return err
	}

	e.model = model
	e.backend = backend
	slog.Debug("experiment ready",
		"name", e.cfg.Name,
		"backend", backend.Name(),
		"joints", model.JointCount(),
		"dofs", model.DofCount())
	return nil
}

func (e *Experiment) Model() *articulation.Model { return e.model }

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.model == nil {
		return nil, ErrNotSetup
	}
	m := e.model

	res := &Result{
		Model:    m,
		Backend:  e.backend.Name(),
		Jacobian: make([]float64, m.JacobianLayout().Size),
		Mass:     make([]float64, m.MassLayout().Size),
	}

	start := time.Now()
	if err := m.AssembleJacobian(ctx, e.backend, res.Jacobian); err != nil {
		return nil, fmt.Errorf("assemble jacobian: %w", err)
	}
	res.JacobianTime = time.Since(start)

	start = time.Now()
	if err := m.AssembleMass(ctx, e.backend, res.Mass); err != nil {
		return nil, fmt.Errorf("assemble mass: %w", err)
	}
	res.MassTime = time.Since(start)

	if e.adjoint {
		if err := e.reverse(ctx, res); err != nil {
			return nil, err
		}
	}

	res.Metrics = metrics.Collect(e.metrics, m, res.Jacobian, res.Mass)
	return res, nil
}

func (e *Experiment) reverse(ctx context.Context, res *Result) error {
	m := e.model
	rng := rand.New(rand.NewSource(e.cfg.Seed))

	adjJ := make([]float64, len(res.Jacobian))
	for i := range adjJ {
		adjJ[i] = rng.NormFloat64()
	}
	adjM := make([]float64, len(res.Mass))
	for i := range adjM {
		adjM[i] = rng.NormFloat64()
	}
	res.AdjS = make([]spatial.Vector, m.DofCount())
	res.AdjInertia = make([]spatial.Matrix, m.JointCount())

	start := time.Now()
	if err := m.AdjAssembleJacobian(ctx, e.backend, res.AdjS, adjJ); err != nil {
		return fmt.Errorf("jacobian adjoint: %w", err)
	}
	if err := m.AdjAssembleMass(ctx, e.backend, res.AdjInertia, adjM); err != nil {
		return fmt.Errorf("mass adjoint: %w", err)
	}
	res.AdjointTime = time.Since(start)
	return nil
}

// Assembly converts a result into the form saved by storage.
func (r *Result) Assembly(name string, seed int64) *storage.Assembly {
	mets := make(map[string]float64, len(r.Metrics)+3)
	for k, v := range r.Metrics {
		mets[k] = v
	}
	mets["jacobian_ms"] = float64(r.JacobianTime.Microseconds()) / 1000
	mets["mass_ms"] = float64(r.MassTime.Microseconds()) / 1000
	if r.AdjS != nil {
		mets["adjoint_ms"] = float64(r.AdjointTime.Microseconds()) / 1000
	}

	return &storage.Assembly{
		Name:     name,
		Backend:  r.Backend,
		Seed:     seed,
		Model:    r.Model,
		Jacobian: r.Jacobian,
		Mass:     r.Mass,
		Metrics:  mets,
	}
}
