package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/actinfriction/internal/dynamo"
)

func TestRK45AdaptiveAccuracy(t *testing.T) {
	dyn := decaySystem()
	integ := NewRK45()

	x := dynamo.State{1.0}
	tNow := 0.0
	dt := 1e-5
	tEnd := 3e-3

	for tNow < tEnd {
		if tNow+dt > tEnd {
			dt = tEnd - tNow
		}
		next, dtTaken, dtNext, err := integ.StepAdaptive(dyn, x, tNow, dt, 1e-9)
		if err != nil {
			t.Fatal(err)
		}
		if dtTaken > dt {
			t.Fatalf("took %v, more than the requested %v", dtTaken, dt)
		}
		tNow += dtTaken
		x = next
		dt = dtNext
	}

	if tNow > tEnd+1e-15 {
		t.Errorf("integration overstepped the horizon: %v > %v", tNow, tEnd)
	}
	expected := math.Exp(-1000 * tEnd)
	if math.Abs(x[0]-expected)/expected > 1e-6 {
		t.Errorf("adaptive decay: got %.12f, expected %.12f", x[0], expected)
	}
}

func TestRK45RejectsOversizedStep(t *testing.T) {
	dyn := decaySystem()
	integ := NewRK45()

	// A grossly oversized step must be rejected and retaken smaller, and
	// the accepted state must be accurate at the step actually taken.
	next, dtTaken, dtNext, err := integ.StepAdaptive(dyn, dynamo.State{1.0}, 0, 0.5, 1e-12)
	if err != nil {
		t.Fatal(err)
	}
	if dtTaken >= 0.5 {
		t.Fatalf("oversized step was accepted whole: dtTaken = %v", dtTaken)
	}
	if dtNext >= 0.5 {
		t.Errorf("expected shrunken suggestion, got %v", dtNext)
	}

	expected := math.Exp(-1000 * dtTaken)
	if math.Abs(next[0]-expected)/expected > 1e-9 {
		t.Errorf("accepted state %v does not match analytic %v at t=%v", next[0], expected, dtTaken)
	}
}

func TestRK45AcceptsResolvedStep(t *testing.T) {
	dyn := decaySystem()
	integ := NewRK45()

	// A step well inside tolerance is taken whole and the suggestion grows.
	_, dtTaken, dtNext, err := integ.StepAdaptive(dyn, dynamo.State{1.0}, 0, 1e-7, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if dtTaken != 1e-7 {
		t.Errorf("resolved step was shrunk: dtTaken = %v", dtTaken)
	}
	if dtNext <= dtTaken {
		t.Errorf("expected growing suggestion, got %v after %v", dtNext, dtTaken)
	}
}
