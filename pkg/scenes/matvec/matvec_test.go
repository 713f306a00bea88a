package matvec

import (
	"context"
	"testing"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/scenes"
	"github.com/matzehuels/mathscene/pkg/shape"
)

func TestImages(t *testing.T) {
	p := DefaultParams()
	want := []geom.Vec2{{X: -1, Y: 1.5}, {X: -3.5, Y: 1.75}, {X: 3, Y: -1}}
	for i, y := range p.Ys() {
		if y != want[i] {
			t.Errorf("M·x_%d = %v, want %v", i+1, y, want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"3x2 matrix", func(p *Params) { p.Matrix = append(p.Matrix, []float64{0, 0}) }},
		{"short row", func(p *Params) { p.Matrix[1] = []float64{1} }},
		{"no vectors", func(p *Params) { p.Vectors = nil }},
		{"four vectors", func(p *Params) { p.Vectors = append(p.Vectors, []float64{0, 0}) }},
		{"3d vector", func(p *Params) { p.Vectors[0] = []float64{1, 2, 3} }},
		{"image off axes", func(p *Params) { p.Vectors[2] = []float64{3, 0} }},
		{"zero move", func(p *Params) { p.MoveTime = 0 }},
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

func TestConstructLandsOnImages(t *testing.T) {
	rec := &scene.Recorder{}
	cfg := scene.DefaultConfig()
	cfg.FPS = 10
	s := New(DefaultParams())
	sc := scene.New(Name, cfg, rec, nil)
	if err := s.Construct(context.Background(), sc); err != nil {
		t.Fatalf("Construct: %v", err)
	}

	last, _ := rec.Last()
	for i, y := range DefaultParams().Ys() {
		gx, gy := s.Ends[i].Get()
		if gx != y.X || gy != y.Y {
			t.Errorf("end %d = (%v, %v), want %v", i+1, gx, gy, y)
		}
		if v, _ := last.Cell(s.Ends[i].X.Name()); v != y.X {
			t.Errorf("frame cell %s = %v, want %v", s.Ends[i].X.Name(), v, y.X)
		}
	}

	// The derived arrows must end exactly where the axes put M·x_i.
	for _, src := range sc.Bindings() {
		if src.Label() != "b.arrow1" {
			continue
		}
		obj, err := src.Resolve()
		if err != nil {
			t.Fatal(err)
		}
		want := s.axes.C2P(-1, 1.5)
		if got := obj.(*shape.Arrow).End; !got.Eq(want, 1e-12) {
			t.Errorf("arrow end = %v, want %v", got, want)
		}
	}
}

func TestGridFollowsMatrix(t *testing.T) {
	rec := &scene.Recorder{}
	cfg := scene.DefaultConfig()
	cfg.FPS = 5
	s := New(DefaultParams())
	if err := s.Construct(context.Background(), scene.New(Name, cfg, rec, nil)); err != nil {
		t.Fatal(err)
	}
	last, _ := rec.Last()
	origin := s.axes.Origin()
	m := DefaultParams().M()

	// The grid line x = 1 ends at (1, 4) in coordinates; after the transform
	// it must sit at the image of that point.
	want := geom.Affine{M: m, About: origin}.Apply(s.axes.C2P(1, 4))
	found := false
	for _, it := range last.Items {
		if it.Kind != shape.KindPath || len(it.Points) != 2 || it.Opacity >= 0.5 {
			continue
		}
		if it.Points[1].Eq(want, 1e-9) {
			found = true
		}
	}
	if !found {
		t.Errorf("no transformed grid line ends at %v", want)
	}
}

func TestCheckDefaults(t *testing.T) {
	checks := check(context.Background(), scenes.Defaults)
	if len(checks) != 6 {
		t.Errorf("%d checks, want 6", len(checks))
	}
	for _, c := range checks {
		if !c.OK() {
			t.Errorf("%s: %v", c.Property, c.Err)
		}
	}
}
