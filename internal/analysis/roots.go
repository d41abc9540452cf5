// Package analysis provides post-hoc computations over simulated
// trajectories plus small numeric utilities used to cross-check the
// closed-form equilibrium results.
package analysis

import (
	"errors"
	"math"
)

var (
	// ErrNoSignChange indicates a bracketing interval without a root.
	ErrNoSignChange = errors.New("analysis: interval does not bracket a root")

	// ErrNoConvergence indicates the iteration budget was exhausted.
	ErrNoConvergence = errors.New("analysis: bisection did not converge")
)

// Bisect finds a root of f in [a, b] by bisection. The interval must bracket
// a sign change. tol bounds the interval width at termination.
func Bisect(f func(float64) float64, a, b, tol float64, maxIter int) (float64, error) {
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if math.Signbit(fa) == math.Signbit(fb) {
		return 0, ErrNoSignChange
	}

	for i := 0; i < maxIter; i++ {
		mid := a + (b-a)/2
		fm := f(mid)
		if fm == 0 || (b-a)/2 < tol {
			return mid, nil
		}
		if math.Signbit(fm) == math.Signbit(fa) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}

	return 0, ErrNoConvergence
}
