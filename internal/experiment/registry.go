package experiment

import (
	"fmt"

	"github.com/san-kum/actinfriction/internal/config"
	"github.com/san-kum/actinfriction/internal/dynamo"
	"github.com/san-kum/actinfriction/internal/equations"
	"github.com/san-kum/actinfriction/internal/integrators"
	"github.com/san-kum/actinfriction/internal/metrics"
)

// Registry builds dynamical systems and integrators from their config
// names. Scenario builders expect a validated config; the corresponding
// parameter section must be present.
type Registry struct {
	scenarios   map[string]func(*config.Config) dynamo.System
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios:   make(map[string]func(*config.Config) dynamo.System),
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.scenarios[config.ScenarioRingCX] = func(cfg *config.Config) dynamo.System {
		return equations.NewRingConcentration(*cfg.Ring)
	}
	r.scenarios[config.ScenarioRingNd] = func(cfg *config.Config) dynamo.System {
		return equations.NewRingOccupancy(*cfg.Ring)
	}
	r.scenarios[config.ScenarioLinearCX] = func(cfg *config.Config) dynamo.System {
		return equations.NewLinearConcentration(*cfg.Linear)
	}
	r.scenarios[config.ScenarioLinearNd] = func(cfg *config.Config) dynamo.System {
		return equations.NewLinearOccupancy(*cfg.Linear)
	}
	r.scenarios[config.ScenarioHarmonic] = func(cfg *config.Config) dynamo.System {
		return equations.NewHarmonic(*cfg.Harmonic)
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }

	return r
}

func (r *Registry) GetSystem(cfg *config.Config) (dynamo.System, error) {
	fn, ok := r.scenarios[cfg.Scenario]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", cfg.Scenario)
	}
	return fn(cfg), nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListScenarios() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics are the observables collected for a scenario when the
// caller does not pick its own. Only the ring scenarios have geometric
// bounds; occupancy tracking needs the linker count in the state.
func (r *Registry) DefaultMetrics(cfg *config.Config) []dynamo.Metric {
	switch cfg.Scenario {
	case config.ScenarioRingCX:
		return []dynamo.Metric{metrics.NewLambdaBounds(*cfg.Ring)}
	case config.ScenarioRingNd:
		return []dynamo.Metric{
			metrics.NewLambdaBounds(*cfg.Ring),
			metrics.NewPeakOccupancy(*cfg.Ring),
		}
	default:
		return nil
	}
}
