package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/actinfriction/internal/config"
	"github.com/san-kum/actinfriction/internal/dynamo"
)

func TestRegistry_AllScenarios(t *testing.T) {
	reg := NewRegistry()

	for _, scenario := range reg.ListScenarios() {
		presets := config.ListPresets(scenario)
		if len(presets) == 0 {
			t.Errorf("scenario %s has no preset", scenario)
			continue
		}
		cfg := config.GetPreset(scenario, presets[0])
		dyn, err := reg.GetSystem(cfg)
		if err != nil {
			t.Errorf("scenario %s: %v", scenario, err)
			continue
		}
		if dyn.StateDim() != len(cfg.InitState()) {
			t.Errorf("scenario %s: state dim %d does not match init state %d",
				scenario, dyn.StateDim(), len(cfg.InitState()))
		}
	}
}

func TestRegistry_Unknown(t *testing.T) {
	reg := NewRegistry()

	cfg := config.DefaultConfig()
	cfg.Scenario = "pendulum"
	if _, err := reg.GetSystem(cfg); err == nil {
		t.Error("expected error for unknown scenario")
	}
	if _, err := reg.GetIntegrator("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, err := New(cfg); err == nil {
		t.Error("expected error for config without a ring section")
	}

	cfg = config.GetPreset(config.ScenarioRingCX, "constriction")
	cfg.Integrator = "verlet"
	if _, err := New(cfg); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestRun_HarmonicDecay(t *testing.T) {
	cfg := config.GetPreset(config.ScenarioHarmonic, "decay")
	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	last := res.States[len(res.States)-1][0]
	tEnd := res.Times[len(res.Times)-1]
	want := cfg.Harmonic.X0 * math.Exp(-cfg.Harmonic.K/cfg.Harmonic.Gamma0*tEnd)
	if math.Abs(last-want) > 1e-6 {
		t.Errorf("final position %v, analytic %v", last, want)
	}
}

func TestRun_RingConstriction(t *testing.T) {
	cfg := config.GetPreset(config.ScenarioRingCX, "constriction")
	cfg.Ring.Tend = 0.02

	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(res.Errors) != 0 {
		t.Fatalf("unexpected sim errors: %v", res.Errors)
	}
	last := res.States[len(res.States)-1][0]
	if last <= 0 {
		t.Errorf("overlap displacement should grow from zero, got %v", last)
	}

	if v, ok := res.Metrics["lambda_in_bounds"]; !ok || v != 1 {
		t.Errorf("expected all states in bounds, got %v (present %v)", v, ok)
	}
}

func TestRun_OccupancyMetrics(t *testing.T) {
	cfg := config.GetPreset(config.ScenarioRingNd, "relaxation")
	cfg.Ring.Tend = 0.01

	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	peak, ok := res.Metrics["peak_occupancy"]
	if !ok {
		t.Fatal("peak_occupancy metric missing")
	}
	if peak <= 0 || peak >= 1 {
		t.Errorf("peak occupancy %v outside (0, 1)", peak)
	}
}

type stepCounter struct {
	n int
}

func (c *stepCounter) OnStep(x dynamo.State, t float64) { c.n++ }

func TestSimulator_ObserverHook(t *testing.T) {
	cfg := config.GetPreset(config.ScenarioHarmonic, "decay")
	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	counter := &stepCounter{}
	exp.Simulator().AddObserver(counter)

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if counter.n == 0 {
		t.Fatal("observer never invoked")
	}
	if counter.n != res.StepsTaken {
		t.Errorf("observer saw %d steps, result records %d", counter.n, res.StepsTaken)
	}
}

func TestRunWithCallback_Stop(t *testing.T) {
	cfg := config.GetPreset(config.ScenarioHarmonic, "decay")
	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	calls := 0
	err = exp.RunWithCallback(context.Background(), func(x dynamo.State, tm float64) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected callback to stop after 5 calls, got %d", calls)
	}
}
