package value

import "testing"

func TestCellSetBumpsRevision(t *testing.T) {
	c := NewCell("x_k", 3.4)
	if c.Get() != 3.4 || c.Revision() != 0 {
		t.Fatalf("new cell = %v rev %d", c.Get(), c.Revision())
	}

	rev := c.Revision()
	c.Set(2.716)
	if c.Get() != 2.716 {
		t.Errorf("Get() = %v, want 2.716", c.Get())
	}
	if !c.Changed(rev) {
		t.Error("Changed() = false after Set")
	}

	rev = c.Revision()
	c.Set(2.716)
	if !c.Changed(rev) {
		t.Error("Set with equal value should still bump the revision")
	}
	if c.Changed(c.Revision()) {
		t.Error("Changed(current) = true")
	}
}

func TestLerpEndsExactly(t *testing.T) {
	tests := []struct{ a, b float64 }{
		{0.1, 0.7},
		{3.4, 3.4 - 4.104/6},
		{-1, 1.5},
		{1e-9, 1e9},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, 1); got != tt.b {
			t.Errorf("Lerp(%v, %v, 1) = %v", tt.a, tt.b, got)
		}
		if got := Lerp(tt.a, tt.b, 0); got != tt.a {
			t.Errorf("Lerp(%v, %v, 0) = %v", tt.a, tt.b, got)
		}
	}
}

func TestSnap(t *testing.T) {
	p := NewPair("v1", 0, 1)
	snap := Snap([]*Cell{p.X, p.Y})
	if len(snap) != 2 || snap[0].Name != "v1.x" || snap[1].Value != 1 {
		t.Errorf("Snap = %+v", snap)
	}
}
