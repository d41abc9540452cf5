// Package config loads and saves run configurations. A configuration names
// a scenario and carries exactly one matching parameter section; the
// scenario must be picked explicitly, there is no default record.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/actinfriction/internal/params"
)

// Scenario names.
const (
	ScenarioRingCX   = "ring-cx"
	ScenarioRingNd   = "ring-nd"
	ScenarioLinearCX = "linear-cx"
	ScenarioLinearNd = "linear-nd"
	ScenarioHarmonic = "harmonic"
)

var ErrMissingSection = errors.New("config: scenario has no matching parameter section")

const (
	DefaultDt        = 1e-5
	DefaultTolerance = 1e-8
	DefaultMaxDt     = 1e-2
	DefaultMinDt     = 1e-12
)

type Config struct {
	Scenario   string  `yaml:"scenario"`
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Adaptive   bool    `yaml:"adaptive"`
	Tolerance  float64 `yaml:"tolerance"`
	MaxDt      float64 `yaml:"max_dt"`
	MinDt      float64 `yaml:"min_dt"`

	// Exactly one of these should be set, matching Scenario. The two ring
	// schemas are distinct records; RingDiffusion is accepted in files for
	// the historical schema but has no scenario wired to it.
	Ring          *params.Ring          `yaml:"ring,omitempty"`
	RingDiffusion *params.RingDiffusion `yaml:"ring_diffusion,omitempty"`
	Linear        *params.Linear        `yaml:"linear,omitempty"`
	Harmonic      *params.Harmonic      `yaml:"harmonic,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   ScenarioRingCX,
		Integrator: "rk45",
		Dt:         DefaultDt,
		Adaptive:   true,
		Tolerance:  DefaultTolerance,
		MaxDt:      DefaultMaxDt,
		MinDt:      DefaultMinDt,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
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

// Validate checks the stepping options and the parameter record named by
// the scenario.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Adaptive && c.Tolerance <= 0 {
		return fmt.Errorf("config: adaptive stepping needs a positive tolerance")
	}

	switch c.Scenario {
	case ScenarioRingCX, ScenarioRingNd:
		if c.Ring == nil {
			return fmt.Errorf("%w: %s needs a ring section", ErrMissingSection, c.Scenario)
		}
		return c.Ring.Validate()
	case ScenarioLinearCX, ScenarioLinearNd:
		if c.Linear == nil {
			return fmt.Errorf("%w: %s needs a linear section", ErrMissingSection, c.Scenario)
		}
		return c.Linear.Validate()
	case ScenarioHarmonic:
		if c.Harmonic == nil {
			return fmt.Errorf("%w: %s needs a harmonic section", ErrMissingSection, c.Scenario)
		}
		return c.Harmonic.Validate()
	default:
		return fmt.Errorf("config: unknown scenario %q", c.Scenario)
	}
}

// InitState is the integrator's initial state vector for the scenario.
func (c *Config) InitState() []float64 {
	switch c.Scenario {
	case ScenarioRingCX:
		return []float64{c.Ring.Lambda0}
	case ScenarioRingNd:
		return []float64{c.Ring.Lambda0, c.Ring.Ndtot0}
	case ScenarioLinearCX:
		return []float64{c.Linear.Lambda0}
	case ScenarioLinearNd:
		return []float64{c.Linear.Lambda0, c.Linear.Ndtot0}
	case ScenarioHarmonic:
		return []float64{c.Harmonic.X0}
	default:
		return nil
	}
}

// Duration is the integration horizon of the scenario's record.
func (c *Config) Duration() float64 {
	switch c.Scenario {
	case ScenarioRingCX, ScenarioRingNd:
		return c.Ring.Tend
	case ScenarioLinearCX, ScenarioLinearNd:
		return c.Linear.Tend
	case ScenarioHarmonic:
		return c.Harmonic.Tend
	default:
		return 0
	}
}

// WithParam returns a copy of c with one field of its parameter section
// overridden. The harmonic record only supports tend.
func (c *Config) WithParam(name string, value float64) (*Config, error) {
	out := c.clone()
	switch c.Scenario {
	case ScenarioRingCX, ScenarioRingNd:
		p, err := out.Ring.With(name, value)
		if err != nil {
			return nil, err
		}
		out.Ring = &p
	case ScenarioLinearCX, ScenarioLinearNd:
		p, err := out.Linear.With(name, value)
		if err != nil {
			return nil, err
		}
		out.Linear = &p
	case ScenarioHarmonic:
		if name != "tend" {
			return nil, fmt.Errorf("%w: %s", params.ErrUnknownField, name)
		}
		out.Harmonic.Tend = value
	default:
		return nil, fmt.Errorf("config: unknown scenario %q", c.Scenario)
	}
	return out, nil
}

// Label is the descriptive run name for storage and exports, derived from
// the parameter record fields.
func (c *Config) Label() string {
	ignored := []string{"tend", "lambda0", "Ndtot0", "x0"}
	switch c.Scenario {
	case ScenarioRingCX, ScenarioRingNd:
		return params.Savename(c.Scenario, c.Ring.Fields(), 2, "", ignored...)
	case ScenarioLinearCX, ScenarioLinearNd:
		return params.Savename(c.Scenario, c.Linear.Fields(), 2, "", ignored...)
	case ScenarioHarmonic:
		return params.Savename(c.Scenario, c.Harmonic.Fields(), 2, "", ignored...)
	default:
		return c.Scenario
	}
}
