package analysis

import (
	"github.com/san-kum/actinfriction/internal/dynamo"
	"github.com/san-kum/actinfriction/internal/equations"
	"github.com/san-kum/actinfriction/internal/params"
)

// RingSeries holds the physically derived time series of a ring trajectory:
// everything the raw [lambda, Nd] state implies but does not store.
type RingSeries struct {
	Times      []float64
	Lambda     []float64
	Nd         []float64 // nil for concentration-driven runs
	Radius     []float64
	RadiusEq   float64
	Occupancy  []float64 // nil for concentration-driven runs
	Bending    []float64
	Entropic   []float64 // NaN where undefined, nil for concentration runs
	TotalForce []float64
	ZetaCX     []float64
	ZetaNd     []float64 // nil for concentration-driven runs
}

// DeriveRing expands a stored ring trajectory into derived series. The
// result must come from one of the ring scenarios; a 2-wide state is read
// as [lambda, Nd].
func DeriveRing(res *dynamo.Result, p params.Ring) RingSeries {
	n := len(res.States)
	withNd := n > 0 && len(res.States[0]) > 1

	s := RingSeries{
		Times:      append([]float64(nil), res.Times...),
		Lambda:     make([]float64, n),
		Radius:     make([]float64, n),
		RadiusEq:   equations.EquilibriumRingRadius(p),
		Bending:    make([]float64, n),
		TotalForce: make([]float64, n),
		ZetaCX:     make([]float64, n),
	}
	if withNd {
		s.Nd = make([]float64, n)
		s.Occupancy = make([]float64, n)
		s.Entropic = make([]float64, n)
		s.ZetaNd = make([]float64, n)
	}

	cond := equations.CondensationForce(p)
	for i, x := range res.States {
		lmbda := x[0]
		s.Lambda[i] = lmbda
		s.Radius[i] = equations.LambdaToRadius(lmbda, p)
		s.Bending[i] = equations.BendingForce(lmbda, p)
		s.ZetaCX[i] = equations.FrictionRingCX(lmbda, p)

		if withNd {
			nd := x[1]
			sites := equations.LambdaToSites(lmbda, p) * float64(p.Overlaps())
			s.Nd[i] = nd
			s.Occupancy[i] = nd / sites
			s.Entropic[i], _ = equations.EntropicForce(lmbda, nd, p)
			s.ZetaNd[i] = equations.FrictionRingNd(lmbda, nd, p)
			s.TotalForce[i] = s.Bending[i] + s.Entropic[i]
		} else {
			s.TotalForce[i] = s.Bending[i] + cond
		}
	}

	return s
}

// ConstrictionFraction maps a radius series onto the fraction of the way
// from the initial radius to the equilibrium radius, 0 at start and 1 at
// full constriction.
func (s RingSeries) ConstrictionFraction() []float64 {
	if len(s.Radius) == 0 {
		return nil
	}
	rMax := s.Radius[0]
	out := make([]float64, len(s.Radius))
	span := rMax - s.RadiusEq
	if span == 0 {
		return out
	}
	for i, r := range s.Radius {
		out[i] = (rMax - r) / span
	}
	return out
}
