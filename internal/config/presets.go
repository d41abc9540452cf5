package config

import "github.com/san-kum/actinfriction/internal/params"

// constrictionKinetics is the crosslinker parameter set shared by the
// bundled presets.
func constrictionKinetics() params.Kinetics {
	return params.Kinetics{
		K01: 3e5, R01: 2, R10: 1, R12: 4, R21: 1,
		Deltas: 2.7e-9, Deltad: 36e-9, K: 1e-2, T: 300, CX: 1e-6,
	}
}

func constrictionRing() *params.Ring {
	return &params.Ring{
		Kinetics: constrictionKinetics(),
		Nf:       2, Nsca: 3,
		EI: 7e-26, Lf: 3e-6, R0: 4e3,
		KsD: 1e-6, KdD: 1e-7,
	}
}

func slidingLinear() *params.Linear {
	return &params.Linear{
		Kinetics: constrictionKinetics(),
		R0:       4e3, Fcond: -1e-13,
	}
}

func withRing(cfg *Config, tend, lambda0, ndtot0 float64) *Config {
	r := constrictionRing()
	r.Tend, r.Lambda0, r.Ndtot0 = tend, lambda0, ndtot0
	cfg.Ring = r
	return cfg
}

func withLinear(cfg *Config, tend, lambda0, ndtot0 float64) *Config {
	l := slidingLinear()
	l.Tend, l.Lambda0, l.Ndtot0 = tend, lambda0, ndtot0
	cfg.Linear = l
	return cfg
}

var Presets = map[string]map[string]*Config{
	ScenarioRingCX: {
		"constriction": withRing(&Config{
			Scenario: ScenarioRingCX, Integrator: "rk45",
			Dt: 1e-5, Adaptive: true, Tolerance: 1e-8, MaxDt: 1e-3, MinDt: 1e-12,
		}, 0.2, 0, 0),
		"expanded": withRing(&Config{
			Scenario: ScenarioRingCX, Integrator: "rk45",
			Dt: 1e-5, Adaptive: true, Tolerance: 1e-8, MaxDt: 1e-3, MinDt: 1e-12,
		}, 0.2, 400, 0),
	},
	ScenarioRingNd: {
		"relaxation": withRing(&Config{
			Scenario: ScenarioRingNd, Integrator: "rk45",
			Dt: 1e-6, Adaptive: true, Tolerance: 1e-8, MaxDt: 1e-4, MinDt: 1e-14,
		}, 0.05, 100, 5),
	},
	ScenarioLinearCX: {
		"sliding": withLinear(&Config{
			Scenario: ScenarioLinearCX, Integrator: "rk4",
			Dt: 1e-3, MaxDt: 1e-2, MinDt: 1e-12,
		}, 10, 100, 0),
	},
	ScenarioLinearNd: {
		"relaxation": withLinear(&Config{
			Scenario: ScenarioLinearNd, Integrator: "rk45",
			Dt: 1e-4, Adaptive: true, Tolerance: 1e-8, MaxDt: 1e-3, MinDt: 1e-14,
		}, 1, 100, 3),
	},
	ScenarioHarmonic: {
		"decay": {
			Scenario: ScenarioHarmonic, Integrator: "rk4",
			Dt: 1e-5, MaxDt: 1e-3, MinDt: 1e-12,
			Harmonic: &params.Harmonic{Gamma0: 1e-6, K: 1e-3, T: 300, Tend: 5e-3, X0: 1},
		},
	},
}

// GetPreset returns a copy of the named preset so callers can override
// fields without mutating the shared table.
func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg.clone()
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}

func (c *Config) clone() *Config {
	out := *c
	if c.Ring != nil {
		r := *c.Ring
		out.Ring = &r
	}
	if c.RingDiffusion != nil {
		r := *c.RingDiffusion
		out.RingDiffusion = &r
	}
	if c.Linear != nil {
		l := *c.Linear
		out.Linear = &l
	}
	if c.Harmonic != nil {
		h := *c.Harmonic
		out.Harmonic = &h
	}
	return &out
}
