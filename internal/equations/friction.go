package equations

import (
	"math"

	"github.com/san-kum/actinfriction/internal/params"
)

// All four friction variants share the same derivation: a bare Stokes-like
// coefficient zeta0 raised to a scenario-specific exponent encoding the
// cooperative kinetics of multi-linker binding. The exponent algebra below
// is an empirically fit model; the order of operations is load-bearing and
// must not be rearranged.

func zeta0(k, temp, deltas, r0 float64) float64 {
	return Boltzmann * temp / (deltas * deltas) / r0 *
		math.Sqrt(1+3*k*deltas*deltas/(4*Boltzmann*temp))
}

// bindingB is the cooperative binding exponent scale. It can be negative
// (the log 2 offset dominates for soft linkers), which flips the nested
// exponentials; callers must not assume a sign.
func bindingB(k, temp, deltas float64) float64 {
	return k*deltas*deltas/(8*Boltzmann*temp) - math.Ln2
}

// Zeta0Linear is the bare friction coefficient of the linear scenario.
func Zeta0Linear(p params.Linear) float64 {
	return zeta0(p.K, p.T, p.Deltas, p.R0)
}

// Zeta0Ring is the bare friction coefficient of the ring scenario.
func Zeta0Ring(p params.Ring) float64 {
	return zeta0(p.K, p.T, p.Deltas, p.R0)
}

// FrictionLinearCX is the concentration-driven friction coefficient of a
// linear overlap, with the cooperativity scale z = zd/(1+zs)^k.
func FrictionLinearCX(lmbda float64, p params.Linear) float64 {
	zs := p.R01 / p.R10
	zd := p.R01 * p.R12 / (p.R10 * p.R21)
	z := zd / math.Pow(1+zs, p.K)
	rhos := (zs + zs*zs) / ((1+zs)*(1+zs) + zd)
	rhod := z / (1 + z)
	b := bindingB(p.K, p.T, p.Deltas)
	c := (z + 1) / (z*math.Exp(-b*math.Exp((rhod+rhos)/(4*b))) + 1)

	return Zeta0Linear(p) * math.Pow(c, 1+p.Deltas/p.Deltad*lmbda)
}

// FrictionLinearNd is the occupancy-driven friction coefficient of a linear
// overlap with nd explicit doubly-bound linkers.
func FrictionLinearNd(lmbda, nd float64, p params.Linear) float64 {
	b := bindingB(p.K, p.T, p.Deltas)
	inner := nd / ((1 + p.Deltas/p.Deltad*lmbda) * 4 * b)

	return Zeta0Linear(p) * math.Exp(nd*b*math.Exp(inner))
}

// FrictionRingCX is the concentration-driven friction coefficient of a ring,
// the linear form scaled by the overlap count in the exponent. Unlike the
// linear variant, the cooperativity scale here is z = zd/(1+zs)^2.
func FrictionRingCX(lmbda float64, p params.Ring) float64 {
	zs := p.R01 / p.R10
	zd := p.R01 * p.R12 / (p.R10 * p.R21)
	z := zd / ((1 + zs) * (1 + zs))
	rhos := (zs + zs*zs) / ((1+zs)*(1+zs) + zd)
	rhod := z / (1 + z)
	b := bindingB(p.K, p.T, p.Deltas)
	c := (z + 1) / (z*math.Exp(-b*math.Exp((rhod+rhos)/(4*b))) + 1)

	return Zeta0Ring(p) * math.Pow(c, (1+p.Deltas/p.Deltad*lmbda)*float64(p.Overlaps()))
}

// FrictionRingNd is the occupancy-driven friction coefficient of a ring,
// with the effective overlap length divided across the overlap count.
func FrictionRingNd(lmbda, nd float64, p params.Ring) float64 {
	overlaps := float64(p.Overlaps())
	b := bindingB(p.K, p.T, p.Deltas)
	inner := nd / ((1 + p.Deltas/(p.Deltad*overlaps)*lmbda) * overlaps * 4 * b)

	return Zeta0Ring(p) * math.Exp(nd*b*math.Exp(inner))
}
