package equations

import (
	"math"

	"github.com/san-kum/actinfriction/internal/dynamo"
	"github.com/san-kum/actinfriction/internal/params"
)

// Each scenario implements dynamo.System over a fixed state layout:
// [lambda] for the concentration-driven variants, [lambda, Nd] for the
// occupancy-driven ones. The systems are autonomous; t is accepted to
// satisfy the integrator contract and otherwise unused. Domain failures
// (saturated occupancy) surface as NaN derivatives, which the simulator's
// state validation turns into a recorded error.

// relaxationRate is the linear binding-kinetics relaxation of the
// doubly-bound count toward its concentration-dependent target:
// dNd/dt = cX*k01*r12*ltot - (cX*k01*r12 - r21*r10)*Nd.
func relaxationRate(ltot, nd float64, p params.Kinetics) float64 {
	on := p.CX * p.K01 * p.R12
	return on*ltot - (on-p.R21*p.R10)*nd
}

// LinearConcentration is the fixed-concentration linear scenario. The net
// condensation force is the externally supplied p.Fcond.
type LinearConcentration struct {
	p params.Linear
}

func NewLinearConcentration(p params.Linear) *LinearConcentration {
	return &LinearConcentration{p: p}
}

func (s *LinearConcentration) StateDim() int { return 1 }

func (s *LinearConcentration) Derive(x dynamo.State, t float64) dynamo.State {
	zeta := FrictionLinearCX(x[0], s.p)

	return dynamo.State{s.p.Fcond / (s.p.Deltas * zeta)}
}

// LinearOccupancy is the explicit-occupancy linear scenario with state
// [lambda, Nd].
type LinearOccupancy struct {
	p params.Linear
}

func NewLinearOccupancy(p params.Linear) *LinearOccupancy {
	return &LinearOccupancy{p: p}
}

func (s *LinearOccupancy) StateDim() int { return 2 }

func (s *LinearOccupancy) Derive(x dynamo.State, t float64) dynamo.State {
	lmbda, nd := x[0], x[1]
	zeta := FrictionLinearNd(lmbda, nd, s.p)

	// The linear overlap has a single independent region; its entropic
	// force is the ring form with one overlap.
	force, _ := EntropicForce(lmbda, nd, linearAsRing(s.p))
	ltot := 1 + s.p.Deltas/s.p.Deltad*lmbda

	return dynamo.State{
		force / (s.p.Deltas * zeta),
		relaxationRate(ltot, nd, s.p.Kinetics),
	}
}

// linearAsRing views a linear record as a single-overlap ring for the
// entropic force, which only reads the lattice geometry and temperature.
func linearAsRing(p params.Linear) params.Ring {
	return params.Ring{Kinetics: p.Kinetics, Nf: 1, Nsca: 1}
}

// RingConcentration is the fixed-concentration ring scenario. The minus sign
// reflects the convention that growing lambda shrinks the ring radius.
type RingConcentration struct {
	p params.Ring
}

func NewRingConcentration(p params.Ring) *RingConcentration {
	return &RingConcentration{p: p}
}

func (s *RingConcentration) StateDim() int { return 1 }

func (s *RingConcentration) Derive(x dynamo.State, t float64) dynamo.State {
	lmbda := x[0]
	zeta := FrictionRingCX(lmbda, s.p)
	forcetot := BendingForce(lmbda, s.p) + CondensationForce(s.p)

	return dynamo.State{-forcetot / (zeta * s.p.Deltas * float64(s.p.Overlaps()))}
}

// RingOccupancy is the explicit-occupancy ring scenario with state
// [lambda, Nd]; the relaxation target is scaled by the overlap count.
type RingOccupancy struct {
	p params.Ring
}

func NewRingOccupancy(p params.Ring) *RingOccupancy {
	return &RingOccupancy{p: p}
}

func (s *RingOccupancy) StateDim() int { return 2 }

func (s *RingOccupancy) Derive(x dynamo.State, t float64) dynamo.State {
	lmbda, nd := x[0], x[1]
	overlaps := float64(s.p.Overlaps())
	zeta := FrictionRingNd(lmbda, nd, s.p)

	entropic, _ := EntropicForce(lmbda, nd, s.p)
	forcetot := BendingForce(lmbda, s.p) + entropic
	ltot := (1 + s.p.Deltas/s.p.Deltad*lmbda) * overlaps

	return dynamo.State{
		-forcetot / (zeta * s.p.Deltas * overlaps),
		relaxationRate(ltot, nd, s.p.Kinetics),
	}
}

// Harmonic is the overdamped harmonic oscillator reference system,
// dx/dt = -k*x/gamma0, with the analytic solution x0*exp(-k*t/gamma0). It
// exists to validate the integration machinery against a soluble case.
type Harmonic struct {
	p params.Harmonic
}

func NewHarmonic(p params.Harmonic) *Harmonic {
	return &Harmonic{p: p}
}

func (s *Harmonic) StateDim() int { return 1 }

func (s *Harmonic) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{-s.p.K * x[0] / s.p.Gamma0}
}

// Solution is the closed-form trajectory of the oscillator from x0.
func (s *Harmonic) Solution(x0, t float64) float64 {
	return x0 * math.Exp(-s.p.K*t/s.p.Gamma0)
}
