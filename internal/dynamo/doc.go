// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of autonomous ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical integrator interface
//   - [Result]: recorded trajectory plus summary metrics
//
// Systems here are unactuated: the filament-sliding equations of motion are
// autonomous, so there is no control input anywhere in the step loop. The
// time argument is still threaded through [System.Derive] to keep the
// integrator contract generic.
//
// # Example
//
//	dyn := equations.NewRingConcentration(p)
//	integ := integrators.NewRK45()
//	s := sim.New(dyn, integ)
//	result, _ := s.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe, but systems and parameter records
// are pure values; independent simulations may run concurrently as long as
// each has its own Simulator and Integrator.
package dynamo
