// Package experiment assembles a configured sliding scenario into a
// runnable simulation.
package experiment

import (
	"context"

	"github.com/san-kum/actinfriction/internal/config"
	"github.com/san-kum/actinfriction/internal/dynamo"
	"github.com/san-kum/actinfriction/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

// New validates cfg, resolves its scenario and integrator and attaches
// the default metrics.
func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg := NewRegistry()
	dyn, err := reg.GetSystem(cfg)
	if err != nil {
		return nil, err
	}
	integrator, err := reg.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	simulator := sim.New(dyn, integrator)
	for _, m := range reg.DefaultMetrics(cfg) {
		simulator.AddMetric(m)
	}
	return &Experiment{cfg: cfg, simulator: simulator}, nil
}

func (e *Experiment) simConfig() dynamo.Config {
	return dynamo.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration(),
		Tolerance:     e.cfg.Tolerance,
		MaxDt:         e.cfg.MaxDt,
		MinDt:         e.cfg.MinDt,
		Adaptive:      e.cfg.Adaptive,
		ValidateState: true,
	}
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	return e.simulator.Run(ctx, dynamo.State(e.cfg.InitState()), e.simConfig())
}

// RunWithCallback streams states to callback as they are produced.
// Returning false from the callback stops the run.
func (e *Experiment) RunWithCallback(ctx context.Context, callback func(dynamo.State, float64) bool) error {
	return e.simulator.RunWithCallback(ctx, dynamo.State(e.cfg.InitState()), e.simConfig(), callback)
}

// Simulator exposes the underlying simulator for extra metrics or
// observers.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}
