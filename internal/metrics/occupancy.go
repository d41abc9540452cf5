// Package metrics provides summary metrics recorded during a run.
package metrics

import (
	"github.com/san-kum/actinfriction/internal/dynamo"
	"github.com/san-kum/actinfriction/internal/equations"
	"github.com/san-kum/actinfriction/internal/params"
)

// PeakOccupancy tracks the maximum fraction of occupied lattice sites seen
// over a run of an occupancy-driven scenario. Values approaching 1 warn that
// the trajectory is flirting with the entropic-force singularity.
type PeakOccupancy struct {
	p    params.Ring
	peak float64
}

func NewPeakOccupancy(p params.Ring) *PeakOccupancy {
	return &PeakOccupancy{p: p}
}

func (m *PeakOccupancy) Name() string { return "peak_occupancy" }

func (m *PeakOccupancy) Observe(x dynamo.State, t float64) {
	if len(x) < 2 {
		return
	}
	sites := equations.LambdaToSites(x[0], m.p) * float64(m.p.Overlaps())
	if sites <= 0 {
		return
	}
	if occ := x[1] / sites; occ > m.peak {
		m.peak = occ
	}
}

func (m *PeakOccupancy) Value() float64 { return m.peak }

func (m *PeakOccupancy) Reset() { m.peak = 0 }
