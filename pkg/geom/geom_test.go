package geom

import (
	"math"
	"testing"
)

func TestMat2Apply(t *testing.T) {
	m := M(3, -1, -1, 1.5)
	tests := []struct {
		in, want Vec2
	}{
		{V(0, 1), V(-1, 1.5)},
		{V(-1, 0.5), V(-3.5, 1.75)},
		{V(1, 0), V(3, -1)},
	}
	for _, tt := range tests {
		if got := m.Apply(tt.in); got != tt.want {
			t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMat2LerpMatchesPointInterpolation(t *testing.T) {
	m := M(3, -1, -1, 1.5)
	p := V(-1, 0.5)
	for _, a := range []float64{0, 0.25, 0.5, 0.9, 1} {
		got := Identity.Lerp(m, a).Apply(p)
		want := p.Lerp(m.Apply(p), a)
		if !got.Eq(want, 1e-12) {
			t.Errorf("alpha=%v: %v, want %v", a, got, want)
		}
	}
}

func TestAffineAbout(t *testing.T) {
	a := Affine{M: M(2, 0, 0, 2), About: V(1, 1)}
	if got := a.Apply(V(1, 1)); got != V(1, 1) {
		t.Errorf("fixed point moved to %v", got)
	}
	if got := a.Apply(V(2, 1)); got != V(3, 1) {
		t.Errorf("Apply = %v, want (3,1)", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("Normalize(0) = %v", got)
	}
	if got := V(3, 4).Normalize().Len(); math.Abs(got-1) > 1e-12 {
		t.Errorf("|Normalize| = %v", got)
	}
}

func TestBoundsCorner(t *testing.T) {
	b := Rect(Origin, 4, 2)
	tests := []struct {
		dir, want Vec2
	}{
		{DR, V(2, -1)},
		{UL, V(-2, 1)},
		{Up, V(0, 1)},
		{Origin, V(0, 0)},
	}
	for _, tt := range tests {
		if got := b.Corner(tt.dir); got != tt.want {
			t.Errorf("Corner(%v) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestBoundsUnionEmpty(t *testing.T) {
	var empty Bounds
	b := Rect(V(1, 1), 2, 2)
	if got := empty.Union(b); got != b {
		t.Errorf("empty ∪ b = %v", got)
	}
	if !empty.Empty() || b.Empty() {
		t.Error("Empty() wrong")
	}
}

func TestPartial(t *testing.T) {
	pts := []Vec2{V(0, 0), V(1, 0), V(1, 1)}
	if got := Partial(pts, 1); len(got) != 3 {
		t.Errorf("full partial has %d points", len(got))
	}
	half := Partial(pts, 0.5)
	if last := half[len(half)-1]; !last.Eq(V(1, 0), 1e-12) {
		t.Errorf("half ends at %v, want (1,0)", last)
	}
	q := Partial(pts, 0.75)
	if last := q[len(q)-1]; !last.Eq(V(1, 0.5), 1e-12) {
		t.Errorf("3/4 ends at %v, want (1,0.5)", last)
	}
	if got := Partial(pts, 0); len(got) != 1 {
		t.Errorf("zero partial has %d points", len(got))
	}
	if got := Length(Partial(pts, 0.3)); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("length = %v, want 0.6", got)
	}
}
