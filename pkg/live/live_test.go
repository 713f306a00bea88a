package live

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/shape"
	"github.com/matzehuels/mathscene/pkg/value"
)

func TestDeriveReadsLatestValue(t *testing.T) {
	x := value.NewCell("x", 1)
	calls := 0
	dot := Derive("dot", func() (shape.Object, error) {
		calls++
		return shape.NewDot(geom.V(x.Get(), 0)), nil
	}, x)

	for _, v := range []float64{1, 2.5, -3, 2.5} {
		x.Set(v)
		obj, err := dot.Resolve()
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if got := obj.(*shape.Dot).Center.X; got != v {
			t.Errorf("after Set(%v) dot at x=%v", v, got)
		}
	}
	if calls != 4 {
		t.Errorf("derivation ran %d times, want 4 (no caching)", calls)
	}
}

func TestDeriveReturnsFreshObjects(t *testing.T) {
	x := value.NewCell("x", 0)
	d := Derive("dot", func() (shape.Object, error) {
		return shape.NewDot(geom.V(x.Get(), 0)), nil
	}, x)
	a, _ := d.Resolve()
	b, _ := d.Resolve()
	if a == b {
		t.Error("Resolve returned the same object twice")
	}
}

func TestDeriveFailsFast(t *testing.T) {
	disc := value.NewCell("disc", 1)
	d := Derive("interval", func() (shape.Object, error) {
		if disc.Get() < 0 {
			return nil, fmt.Errorf("sqrt(%g)", disc.Get())
		}
		r := math.Sqrt(disc.Get())
		return shape.NewLine(geom.V(-r, 0), geom.V(r, 0)), nil
	}, disc)

	if _, err := d.Resolve(); err != nil {
		t.Fatalf("defined derivation failed: %v", err)
	}
	disc.Set(-1)
	_, err := d.Resolve()
	if !errors.Is(err, errors.ErrCodeUndefined) {
		t.Fatalf("err = %v, want UNDEFINED_DERIVATION", err)
	}
}

func TestDeriveNilObject(t *testing.T) {
	d := Derive("nothing", func() (shape.Object, error) { return nil, nil })
	if _, err := d.Resolve(); !errors.Is(err, errors.ErrCodeUndefined) {
		t.Errorf("err = %v, want UNDEFINED_DERIVATION", err)
	}
}

func TestGroupResolvesMembers(t *testing.T) {
	x := value.NewCell("x", 1)
	dot := Derive("dot", func() (shape.Object, error) {
		return shape.NewDot(geom.V(x.Get(), 0)), nil
	}, x)
	label := Derive("label", func() (shape.Object, error) {
		b, err := Bounds(dot)
		if err != nil {
			return nil, err
		}
		lbl := shape.MathTex("x_k")
		shape.NextTo(lbl, b, geom.Up, 0.15)
		return lbl, nil
	}, dot)
	title := Static("title", shape.Tex("Title"))

	g := Group("all", dot, label, title)
	x.Set(2)
	obj, err := g.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	items := obj.(*shape.Group).Items
	if len(items) != 3 {
		t.Fatalf("got %d items", len(items))
	}
	if got := items[1].Bounds().Center().X; math.Abs(got-2) > 1e-12 {
		t.Errorf("label follows dot: x=%v, want 2", got)
	}
	if len(g.Inputs()) != 3 || label.Inputs()[0] != Input(dot) {
		t.Error("inputs not recorded")
	}
}
