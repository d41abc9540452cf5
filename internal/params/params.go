package params

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrNonPositive    = errors.New("params: field must be strictly positive")
	ErrScaffoldCount  = errors.New("params: Nsca must not exceed 2*Nf")
	ErrOccupancyBound = errors.New("params: initial occupancy outside [0, 1)")
	ErrUnknownField   = errors.New("params: unknown field")
)

// Kinetics holds the crosslinker binding and unbinding rate constants and
// the lattice geometry shared by every sliding scenario.
//
// k01 is the bimolecular binding rate from solution, r01/r10 the single-head
// binding/unbinding rates, r12/r21 the second-head binding/unbinding rates.
// deltas is the lattice spacing along the filament backbone, deltad the
// spacing of the crosslinker lattice. k is the cooperative-binding spring
// scale, T the temperature and cX the bulk crosslinker concentration.
type Kinetics struct {
	K01    float64 `yaml:"k01"`
	R01    float64 `yaml:"r01"`
	R10    float64 `yaml:"r10"`
	R12    float64 `yaml:"r12"`
	R21    float64 `yaml:"r21"`
	Deltas float64 `yaml:"deltas"`
	Deltad float64 `yaml:"deltad"`
	K      float64 `yaml:"k"`
	T      float64 `yaml:"T"`
	CX     float64 `yaml:"cX"`
}

func (k Kinetics) validate() error {
	positives := map[string]float64{
		"k01": k.K01, "r01": k.R01, "r10": k.R10, "r12": k.R12, "r21": k.R21,
		"deltas": k.Deltas, "deltad": k.Deltad, "k": k.K, "T": k.T,
	}
	for name, v := range positives {
		if v <= 0 {
			return fmt.Errorf("%w: %s = %g", ErrNonPositive, name, v)
		}
	}
	if k.CX < 0 {
		return fmt.Errorf("%w: cX = %g", ErrNonPositive, k.CX)
	}
	return nil
}

// Ring is the geometric parameter record for ring constriction dynamics.
// EI is the filament bending modulus, Lf the filament length, r0 the bare
// hopping rate setting the friction scale, KsD/KdD the singly/doubly bound
// dissociation constants, tend the integration horizon, lambda0 and Ndtot0
// the initial overlap displacement and doubly-bound linker count.
type Ring struct {
	Kinetics `yaml:",inline"`

	Nf      int     `yaml:"Nf"`
	Nsca    int     `yaml:"Nsca"`
	EI      float64 `yaml:"EI"`
	Lf      float64 `yaml:"Lf"`
	R0      float64 `yaml:"r0"`
	KsD     float64 `yaml:"KsD"`
	KdD     float64 `yaml:"KdD"`
	Tend    float64 `yaml:"tend"`
	Lambda0 float64 `yaml:"lambda0"`
	Ndtot0  float64 `yaml:"Ndtot0"`
}

// Overlaps is the number of independent overlap regions around the ring.
func (p Ring) Overlaps() int {
	return 2*p.Nf - p.Nsca
}

func (p Ring) Validate() error {
	if err := p.Kinetics.validate(); err != nil {
		return err
	}
	positives := map[string]float64{
		"EI": p.EI, "Lf": p.Lf, "r0": p.R0, "KsD": p.KsD, "KdD": p.KdD,
		"tend": p.Tend, "Nf": float64(p.Nf), "Nsca": float64(p.Nsca),
	}
	for name, v := range positives {
		if v <= 0 {
			return fmt.Errorf("%w: %s = %g", ErrNonPositive, name, v)
		}
	}
	if p.Nsca > 2*p.Nf {
		return fmt.Errorf("%w: Nsca = %d, Nf = %d", ErrScaffoldCount, p.Nsca, p.Nf)
	}
	if p.Lambda0 < 0 {
		return fmt.Errorf("%w: lambda0 = %g", ErrNonPositive, p.Lambda0)
	}
	// Ndtot0 must leave the entropic-force logarithm defined at lambda0.
	sites := (1 + p.Deltas/(p.Deltad*float64(p.Overlaps()))*p.Lambda0) * float64(p.Overlaps())
	if p.Ndtot0 < 0 || p.Ndtot0 >= sites {
		return fmt.Errorf("%w: Ndtot0 = %g with %g sites", ErrOccupancyBound, p.Ndtot0, sites)
	}
	return nil
}

// With returns a copy of p with the named field overridden. Unknown names
// return ErrUnknownField; the receiver is never modified.
func (p Ring) With(name string, value float64) (Ring, error) {
	switch name {
	case "k01":
		p.K01 = value
	case "r01":
		p.R01 = value
	case "r10":
		p.R10 = value
	case "r12":
		p.R12 = value
	case "r21":
		p.R21 = value
	case "deltas":
		p.Deltas = value
	case "deltad":
		p.Deltad = value
	case "k":
		p.K = value
	case "T":
		p.T = value
	case "cX":
		p.CX = value
	case "Nf":
		p.Nf = int(value)
	case "Nsca":
		p.Nsca = int(value)
	case "EI":
		p.EI = value
	case "Lf":
		p.Lf = value
	case "r0":
		p.R0 = value
	case "KsD":
		p.KsD = value
	case "KdD":
		p.KdD = value
	case "tend":
		p.Tend = value
	case "lambda0":
		p.Lambda0 = value
	case "Ndtot0":
		p.Ndtot0 = value
	default:
		return p, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return p, nil
}

// Fields lists every field for output naming, keyed by its canonical name.
func (p Ring) Fields() map[string]any {
	return map[string]any{
		"k01": p.K01, "r01": p.R01, "r10": p.R10, "r12": p.R12, "r21": p.R21,
		"deltas": p.Deltas, "deltad": p.Deltad, "k": p.K, "T": p.T, "cX": p.CX,
		"Nf": p.Nf, "Nsca": p.Nsca, "EI": p.EI, "Lf": p.Lf, "r0": p.R0,
		"KsD": p.KsD, "KdD": p.KdD, "tend": p.Tend, "lambda0": p.Lambda0,
		"Ndtot0": p.Ndtot0,
	}
}

// RingDiffusion is the historical ring schema in which the mechanical fields
// (EI, r0) are replaced by filament diffusion and viscosity fields: Df is
// the filament diffusion constant, eta the medium viscosity, Ds the
// crosslinker diffusion constant and n a filament number factor. It is kept
// as a distinct record with no adapter to Ring; the equations core only
// accepts Ring.
type RingDiffusion struct {
	Kinetics `yaml:",inline"`

	Nf      int     `yaml:"Nf"`
	Nsca    int     `yaml:"Nsca"`
	Df      float64 `yaml:"Df"`
	Eta     float64 `yaml:"eta"`
	Ds      float64 `yaml:"Ds"`
	N       int     `yaml:"n"`
	Lf      float64 `yaml:"Lf"`
	KsD     float64 `yaml:"KsD"`
	KdD     float64 `yaml:"KdD"`
	Tend    float64 `yaml:"tend"`
	Lambda0 float64 `yaml:"lambda0"`
	Ndtot0  float64 `yaml:"Ndtot0"`
}

func (p RingDiffusion) Overlaps() int {
	return 2*p.Nf - p.Nsca
}

func (p RingDiffusion) Validate() error {
	if err := p.Kinetics.validate(); err != nil {
		return err
	}
	positives := map[string]float64{
		"Df": p.Df, "eta": p.Eta, "Ds": p.Ds, "n": float64(p.N),
		"Lf": p.Lf, "KsD": p.KsD, "KdD": p.KdD, "tend": p.Tend,
		"Nf": float64(p.Nf), "Nsca": float64(p.Nsca),
	}
	for name, v := range positives {
		if v <= 0 {
			return fmt.Errorf("%w: %s = %g", ErrNonPositive, name, v)
		}
	}
	if p.Nsca > 2*p.Nf {
		return fmt.Errorf("%w: Nsca = %d, Nf = %d", ErrScaffoldCount, p.Nsca, p.Nf)
	}
	return nil
}

func (p RingDiffusion) Fields() map[string]any {
	return map[string]any{
		"k01": p.K01, "r01": p.R01, "r10": p.R10, "r12": p.R12, "r21": p.R21,
		"deltas": p.Deltas, "deltad": p.Deltad, "k": p.K, "T": p.T, "cX": p.CX,
		"Nf": p.Nf, "Nsca": p.Nsca, "Df": p.Df, "eta": p.Eta, "Ds": p.Ds,
		"n": p.N, "Lf": p.Lf, "KsD": p.KsD, "KdD": p.KdD, "tend": p.Tend,
		"lambda0": p.Lambda0, "Ndtot0": p.Ndtot0,
	}
}

// Linear is the parameter record for sliding between a straight filament
// pair. Fcond is the externally supplied net condensation force; it is an
// input here, not a derived quantity.
type Linear struct {
	Kinetics `yaml:",inline"`

	R0      float64 `yaml:"r0"`
	Fcond   float64 `yaml:"Fcond"`
	Tend    float64 `yaml:"tend"`
	Lambda0 float64 `yaml:"lambda0"`
	Ndtot0  float64 `yaml:"Ndtot0"`
}

func (p Linear) Validate() error {
	if err := p.Kinetics.validate(); err != nil {
		return err
	}
	if p.R0 <= 0 {
		return fmt.Errorf("%w: r0 = %g", ErrNonPositive, p.R0)
	}
	if p.Tend <= 0 {
		return fmt.Errorf("%w: tend = %g", ErrNonPositive, p.Tend)
	}
	sites := 1 + p.Deltas/p.Deltad*p.Lambda0
	if p.Ndtot0 < 0 || p.Ndtot0 >= sites {
		return fmt.Errorf("%w: Ndtot0 = %g with %g sites", ErrOccupancyBound, p.Ndtot0, sites)
	}
	return nil
}

func (p Linear) With(name string, value float64) (Linear, error) {
	switch name {
	case "k01":
		p.K01 = value
	case "r01":
		p.R01 = value
	case "r10":
		p.R10 = value
	case "r12":
		p.R12 = value
	case "r21":
		p.R21 = value
	case "deltas":
		p.Deltas = value
	case "deltad":
		p.Deltad = value
	case "k":
		p.K = value
	case "T":
		p.T = value
	case "cX":
		p.CX = value
	case "r0":
		p.R0 = value
	case "Fcond":
		p.Fcond = value
	case "tend":
		p.Tend = value
	case "lambda0":
		p.Lambda0 = value
	case "Ndtot0":
		p.Ndtot0 = value
	default:
		return p, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return p, nil
}

func (p Linear) Fields() map[string]any {
	return map[string]any{
		"k01": p.K01, "r01": p.R01, "r10": p.R10, "r12": p.R12, "r21": p.R21,
		"deltas": p.Deltas, "deltad": p.Deltad, "k": p.K, "T": p.T, "cX": p.CX,
		"r0": p.R0, "Fcond": p.Fcond, "tend": p.Tend, "lambda0": p.Lambda0,
		"Ndtot0": p.Ndtot0,
	}
}

// Harmonic is the reference record for the overdamped harmonic oscillator
// used to validate the integration machinery against an analytic solution.
type Harmonic struct {
	Gamma0 float64 `yaml:"gamma0"`
	K      float64 `yaml:"k"`
	T      float64 `yaml:"T"`
	Tend   float64 `yaml:"tend"`
	X0     float64 `yaml:"x0"`
}

func (p Harmonic) Validate() error {
	positives := map[string]float64{
		"gamma0": p.Gamma0, "k": p.K, "T": p.T, "tend": p.Tend,
	}
	for name, v := range positives {
		if v <= 0 {
			return fmt.Errorf("%w: %s = %g", ErrNonPositive, name, v)
		}
	}
	return nil
}

func (p Harmonic) Fields() map[string]any {
	return map[string]any{
		"gamma0": p.Gamma0, "k": p.K, "T": p.T, "tend": p.Tend, "x0": p.X0,
	}
}
