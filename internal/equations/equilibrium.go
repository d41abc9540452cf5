package equations

import (
	"math"

	"github.com/san-kum/actinfriction/internal/params"
)

// EquilibriumRingRadius is the closed-form radius at which the bending force
// exactly balances the condensation force. It coincides with the zero of the
// RingConcentration derivative mapped through LambdaToRadius; the two are
// cross-checked in tests by independent root-finding. For cX = 0 the
// condensation force vanishes and the radius is +Inf.
func EquilibriumRingRadius(p params.Ring) float64 {
	isotherm := math.Log(1 + p.KsD*p.KsD*p.CX/(p.KdD*(p.KsD+p.CX)*(p.KsD+p.CX)))
	num := p.EI * float64(p.Nf) * p.Deltad * p.Lf * float64(p.Nsca)
	denom := 2 * math.Pi * p.T * Boltzmann * isotherm * float64(p.Overlaps())

	return math.Cbrt(num / denom)
}

// EquilibriumOccupancy is the closed-form equilibrium fraction of
// doubly-bound linkers at fixed bulk concentration,
// xi_d/((1+xi_s)^2 + xi_d) with xi_s = cX/KsD and xi_d = cX/KdD.
func EquilibriumOccupancy(p params.Ring) float64 {
	xis := p.CX / p.KsD
	xid := p.CX / p.KdD

	return xid / ((1+xis)*(1+xis) + xid)
}

// OccupancyFixedPoint is the doubly-bound count at which the occupancy
// relaxation term vanishes for a ring overlap at displacement lambda:
// Nd* = cX*k01*r12*ltot / (cX*k01*r12 - r21*r10). It is finite only when
// the binding and unbinding branches are unbalanced.
func OccupancyFixedPoint(lmbda float64, p params.Ring) float64 {
	on := p.CX * p.K01 * p.R12
	ltot := (1 + p.Deltas/p.Deltad*lmbda) * float64(p.Overlaps())

	return on * ltot / (on - p.R21*p.R10)
}
