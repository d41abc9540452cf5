package metrics

import (
	"github.com/san-kum/actinfriction/internal/dynamo"
	"github.com/san-kum/actinfriction/internal/params"
)

// LambdaBounds reports the fraction of samples with the overlap displacement
// inside its physical window [0, Lf/deltas). The bending force diverges at
// the upper bound, so anything below 1.0 means the integrator strayed.
type LambdaBounds struct {
	max        float64
	violations int
	samples    int
}

func NewLambdaBounds(p params.Ring) *LambdaBounds {
	return &LambdaBounds{max: p.Lf / p.Deltas}
}

func (m *LambdaBounds) Name() string { return "lambda_in_bounds" }

func (m *LambdaBounds) Observe(x dynamo.State, t float64) {
	m.samples++
	if len(x) == 0 || x[0] < 0 || x[0] >= m.max {
		m.violations++
	}
}

func (m *LambdaBounds) Value() float64 {
	if m.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(m.violations)/float64(m.samples)
}

func (m *LambdaBounds) Reset() {
	m.violations = 0
	m.samples = 0
}
