// Package sim orchestrates integration runs: it owns the step loop, state
// validation, metrics and observers. It performs no recovery: a domain
// failure inside the equations surfaces as a recorded error and the run
// stops, leaving the decision to the caller.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/actinfriction/internal/dynamo"
)

type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 over cfg.Duration. The state vector is owned by the
// simulator's loop; the system never retains or mutates it between calls.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &dynamo.Result{
		States:  make([]dynamo.State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for step := 0; t < cfg.Duration; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		if t+dt > cfg.Duration {
			dt = cfg.Duration - t
		}

		var newX dynamo.State
		dtTaken := dt
		if cfg.Adaptive {
			var stepErr error
			newX, dtTaken, dt, stepErr = s.adaptiveStep(x, t, dt, cfg, step)
			if stepErr != nil {
				result.Errors = append(result.Errors, stepErr)
				break
			}
		} else {
			newX = s.integrator.Step(s.dyn, x, t, dt)
		}

		if cfg.ValidateState && !newX.IsValid() {
			err := dynamo.SimError{Time: t, Step: step, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		x = newX
		t += dtTaken
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validate(x0 dynamo.State, cfg dynamo.Config) error {
	if len(x0) != s.dyn.StateDim() {
		return fmt.Errorf("%w: state %d, system %d", dynamo.ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

// adaptiveStep advances x by at most dt. It returns the new state, the
// step actually taken and the suggested size for the next one; time must
// advance by the taken step, or recorded times drift from their states.
func (s *Simulator) adaptiveStep(x dynamo.State, t, dt float64, cfg dynamo.Config, step int) (dynamo.State, float64, float64, error) {
	if adaptive, ok := s.integrator.(dynamo.AdaptiveIntegrator); ok {
		newX, dtTaken, dtNext, err := adaptive.StepAdaptive(s.dyn, x, t, dt, cfg.Tolerance)
		if err != nil {
			return nil, 0, dt, err
		}
		// The horizon clamp may hand in a step below MinDt; only error
		// control shrinking past it marks a stall.
		if dtTaken < cfg.MinDt && dtTaken < dt {
			return nil, 0, dt, &dynamo.SimulationError{
				Step: step, Time: t, State: x.Clone(), Wrapped: dynamo.ErrStepTooSmall,
			}
		}
		return newX, dtTaken, math.Min(dtNext, cfg.MaxDt), nil
	}

	// Step doubling for integrators without embedded error estimates.
	x1 := s.integrator.Step(s.dyn, x, t, dt)
	xHalf := s.integrator.Step(s.dyn, x, t, dt/2)
	x2 := s.integrator.Step(s.dyn, xHalf, t+dt/2, dt/2)

	errNorm := x1.Sub(x2).Norm()

	if errNorm > cfg.Tolerance && dt > cfg.MinDt {
		return s.adaptiveStep(x, t, dt/2, cfg, step)
	}

	nextDt := dt
	if errNorm < cfg.Tolerance/10 && dt < cfg.MaxDt {
		nextDt = math.Min(dt*2, cfg.MaxDt)
	}

	return x2, dt, nextDt, nil
}

// RunWithCallback integrates with a per-step callback instead of trajectory
// recording; returning false from the callback stops the run. Used by the
// live terminal view.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 dynamo.State, cfg dynamo.Config, callback func(dynamo.State, float64) bool) error {
	if err := s.validate(x0, cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(x, t) {
			return nil
		}

		x = s.integrator.Step(s.dyn, x, t, dt)
		t += dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("invalid state at t=%.6g: %w", t, dynamo.ErrInvalidState)
		}
	}

	return nil
}
