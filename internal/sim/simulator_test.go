package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/actinfriction/internal/dynamo"
	"github.com/san-kum/actinfriction/internal/equations"
	"github.com/san-kum/actinfriction/internal/integrators"
	"github.com/san-kum/actinfriction/internal/metrics"
	"github.com/san-kum/actinfriction/internal/params"
	"github.com/san-kum/actinfriction/internal/sim"
)

func ringParams() params.Ring {
	return params.Ring{
		Kinetics: params.Kinetics{
			K01: 3e5, R01: 2, R10: 1, R12: 4, R21: 1,
			Deltas: 2.7e-9, Deltad: 36e-9, K: 1e-2, T: 300, CX: 1e-6,
		},
		Nf: 2, Nsca: 3,
		EI: 7e-26, Lf: 3e-6, R0: 4e3,
		KsD: 1e-6, KdD: 1e-7,
		Tend: 10, Lambda0: 100, Ndtot0: 5,
	}
}

var _ = Describe("Simulator", func() {
	var cfg dynamo.Config

	BeforeEach(func() {
		cfg = dynamo.DefaultConfig()
	})

	Describe("running the harmonic reference system", func() {
		It("reproduces the analytic decay", func() {
			hp := params.Harmonic{Gamma0: 1e-6, K: 1e-3, T: 300, Tend: 3e-3, X0: 1}
			dyn := equations.NewHarmonic(hp)
			s := sim.New(dyn, integrators.NewRK4())

			cfg.Dt = 1e-5
			cfg.Duration = hp.Tend
			result, err := s.Run(context.Background(), dynamo.State{hp.X0}, cfg)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Errors).To(BeEmpty())

			final := result.States[len(result.States)-1][0]
			tFinal := result.Times[len(result.Times)-1]
			Expect(tFinal).To(BeNumerically("~", hp.Tend, 1e-12))
			Expect(final).To(BeNumerically("~", dyn.Solution(hp.X0, tFinal), 1e-8))
		})
	})

	Describe("state validation", func() {
		It("records an error and stops when occupancy saturates", func() {
			p := ringParams()
			p.Ndtot0 = 8 // 8.5 sites at lambda0=100; relaxation pushes upward
			dyn := equations.NewRingOccupancy(p)
			s := sim.New(dyn, integrators.NewRK4())

			cfg.Dt = 1e-2
			cfg.Duration = 1.0
			result, err := s.Run(context.Background(), dynamo.State{p.Lambda0, p.Ndtot0}, cfg)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Errors).NotTo(BeEmpty())
			Expect(result.Errors[0]).To(BeAssignableToTypeOf(dynamo.SimError{}))

			// Every recorded state stays finite; the poisoned one was
			// rejected, not stored.
			for _, x := range result.States {
				Expect(x.IsValid()).To(BeTrue())
			}
		})

		It("rejects a state vector of the wrong width", func() {
			s := sim.New(equations.NewRingOccupancy(ringParams()), integrators.NewRK4())

			_, err := s.Run(context.Background(), dynamo.State{1}, cfg)
			Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
		})
	})

	Describe("adaptive stepping", func() {
		It("integrates the ring constriction with a Dormand-Prince stepper", func() {
			p := ringParams()
			p.Ndtot0 = 0
			dyn := equations.NewRingConcentration(p)
			s := sim.New(dyn, integrators.NewRK45())

			cfg.Adaptive = true
			cfg.Dt = 1e-6
			cfg.MaxDt = 1e-3
			cfg.Duration = 0.05
			cfg.Tolerance = 1e-8
			result, err := s.Run(context.Background(), dynamo.State{p.Lambda0}, cfg)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Errors).To(BeEmpty())

			// Constriction: lambda grows monotonically toward equilibrium
			// but never passes it.
			lambdaEq := equations.RadiusToLambda(equations.EquilibriumRingRadius(p), p)
			last := p.Lambda0
			for _, x := range result.States[1:] {
				Expect(x[0]).To(BeNumerically(">=", last))
				last = x[0]
			}
			Expect(last).To(BeNumerically("<=", lambdaEq+1e-6))
		})

		It("records times consistent with their states", func() {
			hp := params.Harmonic{Gamma0: 1e-6, K: 1e-3, T: 300, Tend: 3e-3, X0: 1}
			dyn := equations.NewHarmonic(hp)
			s := sim.New(dyn, integrators.NewRK45())

			cfg.Adaptive = true
			cfg.Dt = 1e-6
			cfg.MaxDt = 1e-3
			cfg.Duration = hp.Tend
			cfg.Tolerance = 1e-8
			result, err := s.Run(context.Background(), dynamo.State{hp.X0}, cfg)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Errors).To(BeEmpty())

			// Every sample must sit on the analytic trajectory at its
			// recorded time; a timestamp advanced by anything other than
			// the step actually taken shows up here immediately.
			for i, x := range result.States {
				Expect(x[0]).To(BeNumerically("~", dyn.Solution(hp.X0, result.Times[i]), 1e-6))
			}

			last := result.Times[len(result.Times)-1]
			Expect(last).To(BeNumerically("<=", hp.Tend+1e-15))
			Expect(last).To(BeNumerically("~", hp.Tend, 1e-12))
		})

		It("fails cleanly when tolerance is missing", func() {
			s := sim.New(equations.NewRingConcentration(ringParams()), integrators.NewRK45())

			cfg.Adaptive = true
			cfg.Tolerance = 0
			_, err := s.Run(context.Background(), dynamo.State{100}, cfg)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("metrics", func() {
		It("collects peak occupancy over the run", func() {
			p := ringParams()
			dyn := equations.NewRingOccupancy(p)
			s := sim.New(dyn, integrators.NewRK4())
			s.AddMetric(metrics.NewPeakOccupancy(p))

			cfg.Dt = 1e-3
			cfg.Duration = 0.05
			result, err := s.Run(context.Background(), dynamo.State{p.Lambda0, p.Ndtot0}, cfg)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Metrics).To(HaveKey("peak_occupancy"))
			Expect(result.Metrics["peak_occupancy"]).To(BeNumerically(">", 0))
			Expect(result.Metrics["peak_occupancy"]).To(BeNumerically("<", 1))
		})
	})

	Describe("cancellation", func() {
		It("returns early when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			s := sim.New(equations.NewHarmonic(params.Harmonic{Gamma0: 1e-6, K: 1e-3, T: 300, Tend: 1, X0: 1}), integrators.NewRK4())
			cfg.Dt = 1e-6
			cfg.Duration = 1
			_, err := s.Run(ctx, dynamo.State{1}, cfg)
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Describe("callback runs", func() {
		It("stops when the callback declines", func() {
			s := sim.New(equations.NewHarmonic(params.Harmonic{Gamma0: 1e-6, K: 1e-3, T: 300, Tend: 1, X0: 1}), integrators.NewRK4())

			cfg.Dt = 1e-5
			cfg.Duration = 1
			calls := 0
			err := s.RunWithCallback(context.Background(), dynamo.State{1}, cfg, func(x dynamo.State, t float64) bool {
				calls++
				return calls < 10
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(10))
		})
	})
})
