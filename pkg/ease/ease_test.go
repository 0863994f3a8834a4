package ease

import (
	"math"
	"testing"
)

// all easings must fix the endpoints: f(0)=0, f(1)=1.
func TestEndpoints(t *testing.T) {
	for name, f := range byName {
		if got := f(0); math.Abs(got) > 1e-9 {
			t.Errorf("%s(0) = %f, want 0", name, got)
		}
		if got := f(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %f, want 1", name, got)
		}
	}
}

func TestMonotone(t *testing.T) {
	const steps = 100
	for name, f := range byName {
		prev := f(0)
		for i := 1; i <= steps; i++ {
			cur := f(float64(i) / steps)
			if cur < prev-1e-9 {
				t.Errorf("%s not monotone at t=%f: %f < %f", name, float64(i)/steps, cur, prev)
			}
			prev = cur
		}
	}
}

func TestByName(t *testing.T) {
	f, ok := ByName("in-out-cubic")
	if !ok {
		t.Fatal("ByName('in-out-cubic') not found")
	}
	if got := f(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("in-out-cubic(0.5) = %f, want 0.5", got)
	}
	if _, ok := ByName("bounce"); ok {
		t.Error("ByName should miss for unknown easing")
	}
}
