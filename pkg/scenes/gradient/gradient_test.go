package gradient

import (
	"context"
	"math"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/scenes"
	"github.com/matzehuels/mathscene/pkg/shape"
)

func TestCubic(t *testing.T) {
	f := DefaultParams().Cubic()
	tests := []struct {
		x, f, grad float64
	}{
		{0, 2.4, 0.5},
		{1, 2.2, -0.6},
		{3.4, 0.3*3.4*3.4*3.4 - 3.4*3.4 + 0.5*3.4 + 2.4, 0.9*3.4*3.4 - 2*3.4 + 0.5},
	}
	for _, tt := range tests {
		if got := f.Eval(tt.x); math.Abs(got-tt.f) > 1e-12 {
			t.Errorf("f(%v) = %v, want %v", tt.x, got, tt.f)
		}
		if got := f.Grad(tt.x); math.Abs(got-tt.grad) > 1e-12 {
			t.Errorf("grad(%v) = %v, want %v", tt.x, got, tt.grad)
		}
	}
}

func TestBoundTangentAndStationary(t *testing.T) {
	p := DefaultParams()
	f := p.Cubic()
	for _, x := range samples(p.XMin, p.XMax, 50) {
		q := p.Bound(x)
		if d := math.Abs(q.Eval(x) - f.Eval(x)); d > 1e-12 {
			t.Errorf("q(%v) - f(%v) = %v", x, x, d)
		}
		if s := q.Slope(q.Min()); math.Abs(s) > 1e-12 {
			t.Errorf("q'(y*) = %v at x=%v", s, x)
		}
	}
}

func TestNextIterate(t *testing.T) {
	q := DefaultParams().Bound(3.4)
	grad := 0.9*3.4*3.4 - 2*3.4 + 0.5
	want := 3.4 - grad/6
	if got := q.Min(); math.Abs(got-want) > 1e-12 {
		t.Errorf("y* = %v, want %v", got, want)
	}
}

func TestInterval(t *testing.T) {
	p := DefaultParams()
	q := p.Bound(3.4)
	lo, hi, err := q.Interval(p.YMax)
	if err != nil {
		t.Fatal(err)
	}
	if lo >= hi {
		t.Fatalf("interval [%v, %v] is empty", lo, hi)
	}
	for _, y := range []float64{lo, hi} {
		if got := q.Eval(y); math.Abs(got-p.YMax) > 1e-9 {
			t.Errorf("q(%v) = %v, want %v", y, got, p.YMax)
		}
	}
	if m := q.Min(); m < lo || m > hi {
		t.Errorf("minimiser %v outside [%v, %v]", m, lo, hi)
	}

	_, _, err = q.Interval(q.Eval(q.Min()) - 1)
	if !errors.Is(err, errors.ErrCodeUndefined) {
		t.Errorf("below the minimum: err = %v, want UNDEFINED_DERIVATION", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero L", func(p *Params) { p.L = 0 }},
		{"empty domain", func(p *Params) { p.XMax = p.XMin }},
		{"x0 outside", func(p *Params) { p.X0 = 10 }},
		{"nan", func(p *Params) { p.A = math.NaN() }},
		{"zero step", func(p *Params) { p.StepTime = 0 }},
	}
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestConstructMovesIterate(t *testing.T) {
	rec := &scene.Recorder{}
	cfg := scene.DefaultConfig()
	cfg.FPS = 10
	s := New(DefaultParams())
	sc := scene.New(Name, cfg, rec, nil)
	if err := s.Construct(context.Background(), sc); err != nil {
		t.Fatalf("Construct: %v", err)
	}

	want := DefaultParams().Bound(3.4).Min()
	if got := s.Xk.Get(); got != want {
		t.Errorf("x_k = %v, want exactly %v", got, want)
	}
	last, ok := rec.Last()
	if !ok {
		t.Fatal("no frames")
	}
	if v, _ := last.Cell("x_k"); v != want {
		t.Errorf("last frame x_k = %v, want %v", v, want)
	}

	var texts int
	for _, it := range last.Items {
		if it.Kind == shape.KindText {
			texts++
		}
	}
	// title, two axis labels, two formulas, step, x_k, tangent, q_k, y*, x_k+1
	if texts != 11 {
		t.Errorf("%d text items in last frame, want 11", texts)
	}
	if len(sc.Bindings()) != 19 {
		t.Errorf("%d bindings, want 19", len(sc.Bindings()))
	}
}

func TestCheckDefaults(t *testing.T) {
	for _, c := range check(context.Background(), scenes.Defaults) {
		if !c.OK() {
			t.Errorf("%s: %v", c.Property, c.Err)
		}
	}
}

func TestDecodeFromTOML(t *testing.T) {
	var doc struct {
		Scenes map[string]toml.Primitive `toml:"scenes"`
	}
	md, err := toml.Decode(`
[scenes.gd-quadratic-bound]
x0 = 2.5
l = 8
`, &doc)
	if err != nil {
		t.Fatal(err)
	}
	decode := scenes.FromTOML(md, doc.Scenes[Name], "scenes", Name)
	script, err := Definition.New(decode)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := script.(*Script)
	if s.p.X0 != 2.5 || s.p.L != 8 || s.p.A != 0.3 {
		t.Errorf("params = %+v", s.p)
	}

	md, err = toml.Decode(`
[scenes.gd-quadratic-bound]
step = 1
`, &doc)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Definition.New(scenes.FromTOML(md, doc.Scenes[Name], "scenes", Name))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown key: err = %v, want INVALID_CONFIG", err)
	}
}
