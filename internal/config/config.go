package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/geo/r3"
	"github.com/san-kum/spatialdyn/internal/articulation"
	"github.com/san-kum/spatialdyn/internal/spatial"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBackend   = "auto"
	DefaultSeed      = 1
	DefaultTolerance = 1e-6
)

var ErrEmpty = errors.New("config: no joints")

type Config struct {
	Name          string               `yaml:"name"`
	Backend       string               `yaml:"backend"`
	Seed          int64                `yaml:"seed"`
	Tolerance     float64              `yaml:"tolerance"`
	Articulations []ArticulationConfig `yaml:"articulations"`
}

type ArticulationConfig struct {
	Name   string        `yaml:"name"`
	Joints []JointConfig `yaml:"joints"`
}

// JointConfig describes one joint and the body it carries. Parent is an
// index into the same articulation's Joints, or -1 for the root; it must be
// set explicitly since the zero value names joint 0.
type JointConfig struct {
	Name    string       `yaml:"name"`
	Parent  int          `yaml:"parent"`
	Axes    [][6]float64 `yaml:"axes"`
	Mass    float64      `yaml:"mass"`
	COM     [3]float64   `yaml:"com"`
	Inertia [3]float64   `yaml:"inertia"`
}

func DefaultConfig() *Config {
	cfg := chain3()
	cfg.Name = "default"
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Backend:   DefaultBackend,
		Seed:      DefaultSeed,
		Tolerance: DefaultTolerance,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) JointCount() int {
	n := 0
	for _, a := range c.Articulations {
		n += len(a.Joints)
	}
	return n
}

// Build flattens every articulation into one Model, converting local parent
// indices to global ones, and validates the result.
func (c *Config) Build() (*articulation.Model, error) {
	if c.JointCount() == 0 {
		return nil, ErrEmpty
	}

	m := &articulation.Model{QdStart: []int{0}}
	for _, a := range c.Articulations {
		start := len(m.Parents)
		for _, j := range a.Joints {
			parent := articulation.NoParent
			if j.Parent >= 0 {
				parent = start + j.Parent
			}
			m.Parents = append(m.Parents, parent)
			m.JointNames = append(m.JointNames, j.Name)

			for _, axis := range j.Axes {
				m.S = append(m.S, spatial.VectorFromArray(axis))
			}
			m.QdStart = append(m.QdStart, len(m.S))
			m.Inertia = append(m.Inertia, j.spatialInertia())
		}
		m.Articulations = append(m.Articulations, articulation.Articulation{
			Name:       a.Name,
			JointStart: start,
			JointCount: len(a.Joints),
		})
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", c.Name, err)
	}
	return m, nil
}

func (j JointConfig) spatialInertia() spatial.Matrix {
	var ic spatial.Mat33
	for i := 0; i < 3; i++ {
		ic[i][i] = j.Inertia[i]
	}
	return spatial.SpatialInertia(j.Mass, r3.Vector{X: j.COM[0], Y: j.COM[1], Z: j.COM[2]}, ic)
}
