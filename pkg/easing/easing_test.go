package easing

import (
	"math"
	"testing"
)

func TestCurvesHitEndpoints(t *testing.T) {
	for _, name := range Names() {
		f, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if got := f(0); math.Abs(got) > 1e-12 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		want := 1.0
		if name == "there_and_back" {
			want = 0
		}
		if got := f(1); math.Abs(got-want) > 1e-12 {
			t.Errorf("%s(1) = %v, want %v", name, got, want)
		}
	}
}

func TestSmoothIsSymmetric(t *testing.T) {
	for _, x := range []float64{0.1, 0.25, 0.4} {
		if d := Smooth(x) + Smooth(1-x) - 1; math.Abs(d) > 1e-12 {
			t.Errorf("Smooth(%v)+Smooth(%v) = 1%+v", x, 1-x, d)
		}
	}
	if got := Smooth(0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Smooth(0.5) = %v", got)
	}
}

func TestSmoothIsMonotonic(t *testing.T) {
	prev := Smooth(0)
	for i := 1; i <= 100; i++ {
		v := Smooth(float64(i) / 100)
		if v < prev {
			t.Fatalf("Smooth decreases at %v", float64(i)/100)
		}
		prev = v
	}
}

func TestClampsOutOfRange(t *testing.T) {
	if Linear(-1) != 0 || Linear(2) != 1 {
		t.Error("Linear does not clamp")
	}
	if Smooth(1.5) != 1 {
		t.Error("Smooth does not clamp")
	}
}

func TestSpringSettles(t *testing.T) {
	f := Spring(12, 0.5)
	if got := f(0.99); math.Abs(got-1) > 0.05 {
		t.Errorf("spring(0.99) = %v, not settled", got)
	}
	overshoot := false
	for i := 0; i <= 100; i++ {
		if f(float64(i)/100) > 1 {
			overshoot = true
		}
	}
	if !overshoot {
		t.Error("under-damped spring should overshoot")
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("rush-into"); err != nil {
		t.Errorf("dash alias: %v", err)
	}
	if _, err := Lookup("bounce"); err == nil {
		t.Error("unknown curve should fail")
	}
}
