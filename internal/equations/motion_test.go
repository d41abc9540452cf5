package equations

import (
	"math"
	"testing"

	"github.com/san-kum/actinfriction/internal/dynamo"
)

func TestRingConcentrationDerivative(t *testing.T) {
	sys := NewRingConcentration(ringParams())

	cases := []struct {
		lmbda float64
		want  float64
	}{
		{0, 67.43284007995945},
		{100, 1.2130863012594486},
		{300, -0.0004595310439481314},
	}
	for _, tc := range cases {
		got := sys.Derive(dynamo.State{tc.lmbda}, 0)
		if len(got) != 1 {
			t.Fatalf("derivative length %d, want 1", len(got))
		}
		if relDiff(got[0], tc.want) > 1e-9 {
			t.Errorf("dlambda/dt at %v = %v, want %v", tc.lmbda, got[0], tc.want)
		}
	}
}

// Below the equilibrium displacement the condensation force wins and the
// ring constricts (dlambda/dt > 0); above it, bending pushes back.
func TestRingConcentrationSignFlipsAtEquilibrium(t *testing.T) {
	p := ringParams()
	sys := NewRingConcentration(p)
	lmbdaEq := RadiusToLambda(EquilibriumRingRadius(p), p)

	below := sys.Derive(dynamo.State{lmbdaEq - 1}, 0)[0]
	above := sys.Derive(dynamo.State{lmbdaEq + 1}, 0)[0]

	if below <= 0 {
		t.Errorf("expected constriction below equilibrium, got %v", below)
	}
	if above >= 0 {
		t.Errorf("expected expansion above equilibrium, got %v", above)
	}
}

func TestLinearConcentrationDerivative(t *testing.T) {
	sys := NewLinearConcentration(linearParams())

	got := sys.Derive(dynamo.State{100}, 0)
	if relDiff(got[0], -0.0005575404106956623) > 1e-9 {
		t.Errorf("dlambda/dt = %v", got[0])
	}
}

func TestOccupancyRelaxationFixedPoint(t *testing.T) {
	p := ringParams()
	sys := NewRingOccupancy(p)

	// dNd/dt vanishes at the fixed point regardless of the lambda branch.
	ndStar := OccupancyFixedPoint(100, p)
	if relDiff(ndStar, 51.0) > 1e-12 {
		t.Fatalf("OccupancyFixedPoint(100) = %v, want 51", ndStar)
	}

	dx := sys.Derive(dynamo.State{100, ndStar}, 0)
	if math.Abs(dx[1]) > 1e-9 {
		t.Errorf("dNd/dt at fixed point = %v, want 0", dx[1])
	}
}

func TestRingOccupancyDerivative(t *testing.T) {
	p := ringParams()
	sys := NewRingOccupancy(p)

	dx := sys.Derive(dynamo.State{100, 5}, 0)
	if len(dx) != 2 {
		t.Fatalf("derivative length %d, want 2", len(dx))
	}

	// forcetot = bending + entropic with the pinned component values.
	zeta := FrictionRingNd(100, 5, p)
	wantLambda := -(1.8964316300853578e-13 + -1.020878557395668e-13) / (zeta * p.Deltas)
	if relDiff(dx[0], wantLambda) > 1e-9 {
		t.Errorf("dlambda/dt = %v, want %v", dx[0], wantLambda)
	}

	// dNd/dt = on*ltot - (on - off)*Nd with on = cX*k01*r12 = 1.2, off = 1.
	wantNd := 1.2*8.5 - 0.2*5
	if relDiff(dx[1], wantNd) > 1e-12 {
		t.Errorf("dNd/dt = %v, want %v", dx[1], wantNd)
	}
}

func TestLinearOccupancyDerivative(t *testing.T) {
	lp := linearParams()
	sys := NewLinearOccupancy(lp)

	dx := sys.Derive(dynamo.State{100, 5}, 0)

	zeta := FrictionLinearNd(100, 5, lp)
	wantLambda := -1.020878557395668e-13 / (lp.Deltas * zeta)
	if relDiff(dx[0], wantLambda) > 1e-9 {
		t.Errorf("dlambda/dt = %v, want %v", dx[0], wantLambda)
	}

	wantNd := 1.2*8.5 - 0.2*5
	if relDiff(dx[1], wantNd) > 1e-12 {
		t.Errorf("dNd/dt = %v, want %v", dx[1], wantNd)
	}
}

// Saturated occupancy must surface as NaN, caught by state validation, not
// as a panic or a clamped value.
func TestOccupancySaturationPropagatesNaN(t *testing.T) {
	sys := NewRingOccupancy(ringParams())

	dx := sys.Derive(dynamo.State{100, 9}, 0)
	if !math.IsNaN(dx[0]) {
		t.Errorf("expected NaN dlambda/dt, got %v", dx[0])
	}
	if dynamo.State(dx).IsValid() {
		t.Error("saturated derivative should fail state validation")
	}
}

func TestSystemsAreAutonomous(t *testing.T) {
	systems := []dynamo.System{
		NewRingConcentration(ringParams()),
		NewRingOccupancy(ringParams()),
		NewLinearConcentration(linearParams()),
		NewLinearOccupancy(linearParams()),
	}

	for _, sys := range systems {
		x := make(dynamo.State, sys.StateDim())
		x[0] = 100
		if sys.StateDim() == 2 {
			x[1] = 3
		}

		at0 := sys.Derive(x, 0)
		later := sys.Derive(x, 12345.6)
		for i := range at0 {
			if at0[i] != later[i] {
				t.Errorf("derivative depends on t: %v != %v", at0, later)
			}
		}
	}
}

func TestHarmonicMatchesAnalyticDecay(t *testing.T) {
	sys := NewHarmonic(harmonicParams())

	dx := sys.Derive(dynamo.State{1}, 0)
	if relDiff(dx[0], -1000) > 1e-12 {
		t.Errorf("Derive = %v, want -1000", dx[0])
	}

	if got := sys.Solution(1, 5e-3); relDiff(got, 0.006737946999085467) > 1e-12 {
		t.Errorf("Solution(1, 5e-3) = %v", got)
	}
}
