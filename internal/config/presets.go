package config

import "sort"

var (
	axisRX = [6]float64{1, 0, 0, 0, 0, 0}
	axisRY = [6]float64{0, 1, 0, 0, 0, 0}
	axisRZ = [6]float64{0, 0, 1, 0, 0, 0}
	axisTX = [6]float64{0, 0, 0, 1, 0, 0}
	axisTY = [6]float64{0, 0, 0, 0, 1, 0}
	axisTZ = [6]float64{0, 0, 0, 0, 0, 1}
)

// revolute returns the twist of a unit rotation about axis through point,
// with linear part point × axis.
func revolute(axis, point [3]float64) [6]float64 {
	return [6]float64{
		axis[0], axis[1], axis[2],
		point[1]*axis[2] - point[2]*axis[1],
		point[2]*axis[0] - point[0]*axis[2],
		point[0]*axis[1] - point[1]*axis[0],
	}
}

func link(name string, parent int, mass float64, axes ...[6]float64) JointConfig {
	return JointConfig{
		Name:    name,
		Parent:  parent,
		Axes:    axes,
		Mass:    mass,
		COM:     [3]float64{0.25, 0, 0},
		Inertia: [3]float64{0.01, 0.02, 0.02},
	}
}

func base(name string) *Config {
	return &Config{
		Name:      name,
		Backend:   DefaultBackend,
		Seed:      DefaultSeed,
		Tolerance: DefaultTolerance,
	}
}

func chain3() *Config {
	cfg := base("chain3")
	cfg.Articulations = []ArticulationConfig{{
		Name: "chain",
		Joints: []JointConfig{
			link("j0", -1, 1, axisRZ),
			link("j1", 0, 1, axisRY),
			link("j2", 1, 1, axisRX),
		},
	}}
	return cfg
}

// branch is a tree whose third joint is fixed (no DOFs).
func branch() *Config {
	cfg := base("branch")
	cfg.Articulations = []ArticulationConfig{{
		Name: "tree",
		Joints: []JointConfig{
			link("hip", -1, 2, axisRZ, axisRY),
			link("knee", 0, 1, axisRY),
			link("mount", 0, 0.5),
			link("ankle", 1, 0.5, axisRY, axisRX),
		},
	}}
	return cfg
}

// batch puts two mechanisms in the same buffers: a serial chain and a
// floating base with one revolute child.
func batch() *Config {
	cfg := base("batch")
	cfg.Articulations = []ArticulationConfig{
		chain3().Articulations[0],
		{
			Name: "floating",
			Joints: []JointConfig{
				link("root", -1, 5, axisRX, axisRY, axisRZ, axisTX, axisTY, axisTZ),
				link("arm", 0, 1, revolute([3]float64{0, 0, 1}, [3]float64{0.5, 0, 0})),
			},
		},
	}
	return cfg
}

func arm6() *Config {
	cfg := base("arm6")
	z, y, x := [3]float64{0, 0, 1}, [3]float64{0, 1, 0}, [3]float64{1, 0, 0}
	cfg.Articulations = []ArticulationConfig{{
		Name: "arm",
		Joints: []JointConfig{
			link("shoulder_pan", -1, 4, revolute(z, [3]float64{0, 0, 0})),
			link("shoulder_lift", 0, 3, revolute(y, [3]float64{0, 0, 0.1})),
			link("elbow", 1, 2, revolute(y, [3]float64{0.4, 0, 0.1})),
			link("wrist_1", 2, 1, revolute(x, [3]float64{0.8, 0, 0.1})),
			link("wrist_2", 3, 1, revolute(y, [3]float64{0.8, 0, 0.1})),
			link("wrist_3", 4, 0.5, revolute(x, [3]float64{0.9, 0, 0.1})),
		},
	}}
	return cfg
}

var presets = map[string]func() *Config{
	"chain3": chain3,
	"branch": branch,
	"batch":  batch,
	"arm6":   arm6,
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
