package equations

import (
	"math"
	"testing"
)

func TestZeta0(t *testing.T) {
	want := 5.352614768328406e-07

	if got := Zeta0Ring(ringParams()); relDiff(got, want) > 1e-12 {
		t.Errorf("Zeta0Ring = %v, want %v", got, want)
	}
	if got := Zeta0Linear(linearParams()); relDiff(got, want) > 1e-12 {
		t.Errorf("Zeta0Linear = %v, want %v", got, want)
	}
}

func TestFrictionValues(t *testing.T) {
	rp := ringParams()
	lp := linearParams()

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"linear cX", FrictionLinearCX(100, lp), 0.0664293319847877},
		{"ring cX", FrictionRingCX(100, rp), 3.426629026337786e-05},
		{"linear Nd", FrictionLinearNd(100, 5, lp), 0.0021687247785216568},
		{"ring Nd", FrictionRingNd(100, 5, rp), 0.0021687247785216568},
	}
	for _, tc := range cases {
		if relDiff(tc.got, tc.want) > 1e-12 {
			t.Errorf("%s friction = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

// With a single overlap the ring occupancy variant degenerates to the linear
// one; the pinned values above agreeing is not a coincidence.
func TestSingleOverlapDegeneracy(t *testing.T) {
	rp := ringParams() // overlaps = 1
	lp := linearParams()

	for _, nd := range []float64{0, 1, 5, 8} {
		ring := FrictionRingNd(100, nd, rp)
		linear := FrictionLinearNd(100, nd, lp)
		if relDiff(ring, linear) > 1e-14 {
			t.Errorf("Nd=%v: ring %v != linear %v", nd, ring, linear)
		}
	}
}

func TestFrictionPositiveAndFinite(t *testing.T) {
	rp := ringParams()
	lp := linearParams()

	for _, lmbda := range []float64{0, 10, 100, 500, 1000} {
		for _, zeta := range []float64{
			FrictionLinearCX(lmbda, lp),
			FrictionRingCX(lmbda, rp),
		} {
			if zeta <= 0 || math.IsInf(zeta, 0) || math.IsNaN(zeta) {
				t.Fatalf("concentration friction invalid at lambda=%v: %v", lmbda, zeta)
			}
		}

		for _, nd := range []float64{0, 2, 5} {
			for _, zeta := range []float64{
				FrictionLinearNd(lmbda, nd, lp),
				FrictionRingNd(lmbda, nd, rp),
			} {
				if zeta <= 0 || math.IsInf(zeta, 0) || math.IsNaN(zeta) {
					t.Fatalf("occupancy friction invalid at lambda=%v Nd=%v: %v", lmbda, nd, zeta)
				}
			}
		}
	}
}

func TestFrictionExceedsBareCoefficient(t *testing.T) {
	rp := ringParams()

	z0 := Zeta0Ring(rp)
	for _, lmbda := range []float64{0, 50, 200} {
		if FrictionRingCX(lmbda, rp) < z0 {
			t.Errorf("cooperative friction below bare coefficient at lambda=%v", lmbda)
		}
	}
}
