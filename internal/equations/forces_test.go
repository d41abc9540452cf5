package equations

import (
	"errors"
	"math"
	"testing"
)

func relDiff(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a)
	}
	return math.Abs(a-b) / math.Abs(b)
}

func TestBendingForceValues(t *testing.T) {
	p := ringParams()

	cases := []struct {
		lmbda float64
		want  float64
	}{
		{0, 1.4290958799150534e-13},
		{100, 1.8964316300853578e-13},
	}
	for _, tc := range cases {
		got := BendingForce(tc.lmbda, p)
		if relDiff(got, tc.want) > 1e-12 {
			t.Errorf("BendingForce(%v) = %v, want %v", tc.lmbda, got, tc.want)
		}
	}
}

func TestBendingForceGrowsTowardSingularity(t *testing.T) {
	p := ringParams()

	// The denominator root sits at lambda = Lf/deltas; the force must grow
	// monotonically as the free segment length shrinks.
	prev := 0.0
	for _, lmbda := range []float64{0, 200, 500, 900, 1100} {
		f := BendingForce(lmbda, p)
		if f <= prev {
			t.Fatalf("bending force not increasing at lambda=%v: %v <= %v", lmbda, f, prev)
		}
		prev = f
	}

	if f := BendingForce(1110, p); f < 1e-6 {
		t.Errorf("bending force near singularity unexpectedly small: %v", f)
	}
}

func TestCondensationForce(t *testing.T) {
	p := ringParams()

	got := CondensationForce(p)
	if relDiff(got, -3.018766747549418e-13) > 1e-12 {
		t.Errorf("CondensationForce = %v", got)
	}
	if got >= 0 {
		t.Error("condensation force must be contractile (negative)")
	}
}

func TestCondensationForceZeroConcentration(t *testing.T) {
	p := ringParams()
	p.CX = 0

	if got := CondensationForce(p); got != 0 {
		t.Errorf("CondensationForce with cX=0 = %v, want 0", got)
	}
}

func TestEntropicForceValue(t *testing.T) {
	p := ringParams()

	got, err := EntropicForce(100, 5, p)
	if err != nil {
		t.Fatal(err)
	}
	if relDiff(got, -1.020878557395668e-13) > 1e-12 {
		t.Errorf("EntropicForce(100, 5) = %v", got)
	}
}

func TestEntropicForceDecreasesWithOccupancy(t *testing.T) {
	p := ringParams()

	// Strictly decreasing in Nd, diverging toward -Inf at the site bound
	// (8.5 sites at lambda=100).
	prev := 0.0
	for _, nd := range []float64{1, 3, 5, 7, 8, 8.4, 8.49, 8.4999} {
		f, err := EntropicForce(100, nd, p)
		if err != nil {
			t.Fatalf("unexpected error at Nd=%v: %v", nd, err)
		}
		if f >= prev {
			t.Fatalf("entropic force not decreasing at Nd=%v: %v >= %v", nd, f, prev)
		}
		prev = f
	}

	if prev > -1e-12 {
		t.Errorf("entropic force should diverge near saturation, got %v", prev)
	}
}

func TestEntropicForceSaturation(t *testing.T) {
	p := ringParams()

	for _, nd := range []float64{8.5, 9, 100} {
		f, err := EntropicForce(100, nd, p)
		if !errors.Is(err, ErrOccupancySaturated) {
			t.Errorf("Nd=%v: expected ErrOccupancySaturated, got %v", nd, err)
		}
		if !math.IsNaN(f) {
			t.Errorf("Nd=%v: expected NaN, got %v", nd, f)
		}
	}
}
