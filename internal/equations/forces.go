package equations

import (
	"errors"
	"math"

	"github.com/san-kum/actinfriction/internal/params"
)

// ErrOccupancySaturated reports an entropic-force evaluation with the bound
// linker count at or above the number of available lattice sites, where the
// logarithm is undefined. The core never clamps past this bound; the caller
// (typically the integrator, by shrinking its step) has to stay clear of it.
var ErrOccupancySaturated = errors.New("equations: doubly-bound count saturates overlap sites")

// BendingForce is the elastic restoring force of a ring of Nsca filament
// segments bent with modulus EI. The denominator is the cube of the free
// segment length (Lf - deltas*lambda); the force diverges as lambda
// approaches Lf/deltas, a physical bound the state must never cross.
func BendingForce(lmbda float64, p params.Ring) float64 {
	f := 8 * math.Pi * math.Pi * math.Pi * p.EI * p.Lf * float64(p.Nf) / math.Pow(float64(p.Nsca), 3)
	g := -(p.Deltas * p.Deltas * p.Deltas)
	h := 3 * p.Lf * p.Deltas * p.Deltas
	j := -3 * p.Lf * p.Lf * p.Deltas
	k := p.Lf * p.Lf * p.Lf

	return f / (g*lmbda*lmbda*lmbda + h*lmbda*lmbda + j*lmbda + k)
}

// CondensationForce is the constant mean-field force from crosslinker
// binding at fixed bulk concentration cX. It vanishes when cX is zero and is
// negative (contractile) otherwise.
func CondensationForce(p params.Ring) float64 {
	isotherm := math.Log(1 + p.KsD*p.KsD*p.CX/(p.KdD*(p.KsD+p.CX)*(p.KsD+p.CX)))

	return -2 * math.Pi * Boltzmann * p.T * float64(p.Overlaps()) / (float64(p.Nsca) * p.Deltad) * isotherm
}

// EntropicForce is the direct entropic force from nd doubly-bound linkers
// distributed over the lattice sites of the ring's overlaps. It is strictly
// decreasing in nd and diverges to -Inf as nd approaches the site count;
// at or past saturation it returns NaN and ErrOccupancySaturated.
func EntropicForce(lmbda, nd float64, p params.Ring) (float64, error) {
	overlaps := float64(p.Overlaps())
	logarg := 1 - nd/((1+p.Deltas/(p.Deltad*overlaps)*lmbda)*overlaps)
	if logarg <= 0 {
		return math.NaN(), ErrOccupancySaturated
	}

	return overlaps * Boltzmann * p.T * math.Log(logarg) / p.Deltad, nil
}
