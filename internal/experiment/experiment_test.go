package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/spatialdyn/internal/config"
)

func TestRunBeforeSetup(t *testing.T) {
	exp := New(config.GetPreset("chain3"))
	if _, err := exp.Run(context.Background()); !errors.Is(err, ErrNotSetup) {
		t.Errorf("expected ErrNotSetup, got %v", err)
	}
}

func TestRunPresets(t *testing.T) {
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		cfg.Backend = "cpu"

		exp := New(cfg).WithAdjoint()
		if err := exp.Setup(); err != nil {
			t.Fatalf("preset %s: setup failed: %v", name, err)
		}
		res, err := exp.Run(context.Background())
		if err != nil {
			t.Fatalf("preset %s: run failed: %v", name, err)
		}

		m := exp.Model()
		if len(res.Jacobian) != m.JacobianLayout().Size {
			t.Errorf("preset %s: expected jacobian size %d, got %d", name, m.JacobianLayout().Size, len(res.Jacobian))
		}
		if len(res.AdjS) != m.DofCount() {
			t.Errorf("preset %s: expected %d dof adjoints, got %d", name, m.DofCount(), len(res.AdjS))
		}
		if res.Metrics["mass_asymmetry"] != 0 {
			t.Errorf("preset %s: expected symmetric mass, got %e", name, res.Metrics["mass_asymmetry"])
		}
		if res.Metrics["jacobian_rank_deficit"] != 0 {
			t.Errorf("preset %s: expected independent dofs, got deficit %f", name, res.Metrics["jacobian_rank_deficit"])
		}
	}
}

func TestSetupUnknownBackend(t *testing.T) {
	cfg := config.GetPreset("chain3")
	cfg.Backend = "tpu"
	if err := New(cfg).Setup(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestAssembly(t *testing.T) {
	cfg := config.GetPreset("branch")
	exp := New(cfg)
	if err := exp.Setup(); err != nil {
		t.Fatal(err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	a := res.Assembly("branch", 7)
	if a.Seed != 7 || a.Model != res.Model {
		t.Errorf("unexpected assembly %+v", a)
	}
	if _, ok := a.Metrics["jacobian_ms"]; !ok {
		t.Error("expected timing metric")
	}
	if _, ok := a.Metrics["adjoint_ms"]; ok {
		t.Error("expected no adjoint timing without WithAdjoint")
	}
}
