// Package gradient animates one step of gradient descent as minimising a
// quadratic upper bound of a cubic.
//
// The iterate x_k is a single cell. The dot on f, the tangent, the bound q_k,
// its minimiser and the next iterate are all derived from it, so moving x_k
// to y* redraws the whole construction at the new point.
package gradient

import (
	"context"
	"math"
	"time"

	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/live"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/scenes"
	"github.com/matzehuels/mathscene/pkg/shape"
	"github.com/matzehuels/mathscene/pkg/value"
)

// Name is the scene's registry name.
const Name = "gd-quadratic-bound"

// Definition registers the scene.
var Definition = &scenes.Definition{
	Name:        Name,
	Description: "Gradient descent as minimizing a quadratic upper bound",
	New: func(decode scenes.Decode) (scene.Script, error) {
		p, err := decodeParams(decode)
		if err != nil {
			return nil, err
		}
		return New(p), nil
	},
	Check: check,
}

func decodeParams(decode scenes.Decode) (Params, error) {
	p := DefaultParams()
	if decode != nil {
		if err := decode(&p); err != nil {
			return p, err
		}
	}
	return p, p.Validate()
}

// Script is the scene. Its iterate cell is exposed for inspection after
// Construct.
type Script struct {
	p  Params
	Xk *value.Cell
}

// New creates the script. p must be valid.
func New(p Params) *Script {
	return &Script{p: p, Xk: value.NewCell("x_k", p.X0)}
}

func (s *Script) Name() string        { return Name }
func (s *Script) Description() string { return Definition.Description }

const dotRadius = 0.07

// objects is everything the narration stages, built up front.
type objects struct {
	title, axes, xLabel, yLabel, graph, formulas, step live.Source

	xkDot, xkLabel           live.Source
	tangent, tangentLabel    live.Source
	bound, boundLabel        live.Source
	ystarDot, ystarLabel     live.Source
	drop, nextDot, nextLabel live.Source
}

func (s *Script) build() (*objects, error) {
	p := s.p
	f := p.Cubic()
	xk := s.Xk

	axes, err := shape.NewAxes(shape.AxesConfig{
		X:       shape.Range{Min: p.XMin, Max: p.XMax, Step: 1},
		Y:       shape.Range{Min: -1, Max: p.YMax, Step: 1},
		XLength: 6, YLength: 5,
		IncludeTip: true,
	})
	if err != nil {
		return nil, err
	}
	shape.ToCorner(axes, geom.DR, geom.EdgeBuff)

	graph, err := axes.Plot(f.Eval, p.XMin, p.XMax)
	if err != nil {
		return nil, err
	}

	title := shape.Tex(`Gradient Descent as Minimizing a Quadratic Upper Bound`)
	shape.ToEdge(title, geom.Up, geom.EdgeBuff)

	formulas := shape.NewGroup(
		shape.MathTex(`q_k(y)= f(x_k)+f'(x_k)(y-x_k)+\frac{L}{2}(y-x_k)^2`).Scaled(0.75),
		shape.MathTex(`y^\star=\arg\min_y q_k(y)=x_k-\frac{1}{L}f'(x_k)`).Scaled(0.75),
	).Arrange(geom.Down, geom.MedSmallBuff, geom.Left)
	shape.ToCorner(formulas, geom.UL, 1)

	step := shape.MathTex(`x_{k+1}=x_k-\frac{1}{L}f'(x_k)`).Scaled(0.8)
	shape.NextTo(step, formulas.Bounds(), geom.Down, 0.3)
	shape.AlignTo(step, formulas.Bounds(), geom.Left)

	o := &objects{
		title:    live.Static("title", title),
		axes:     live.Static("axes", axes),
		xLabel:   live.Static("x_label", axes.XAxisLabel(shape.Tex("x").Scaled(0.8))),
		yLabel:   live.Static("y_label", axes.YAxisLabel(shape.Tex("f(x)").Scaled(0.8))),
		graph:    live.Static("f_graph", graph),
		formulas: live.Static("formulas", formulas),
		step:     live.Static("step_text", step),
	}

	bound := func() Bound { return p.Bound(xk.Get()) }

	o.xkDot = live.Derive("xk_dot", func() (shape.Object, error) {
		x := xk.Get()
		return shape.NewDot(axes.C2P(x, f.Eval(x))).WithRadius(dotRadius), nil
	}, xk)
	o.xkLabel = labelAbove("xk_label", `x_k`, 0.7, o.xkDot, geom.Up, 0.15)

	o.tangent = live.Derive("tangent", func() (shape.Object, error) {
		x0 := xk.Get()
		c, err := axes.Plot(func(t float64) float64 {
			return f.Eval(x0) + f.Grad(x0)*(t-x0)
		}, p.XMin, p.XMax)
		if err != nil {
			return nil, err
		}
		return c.WithColor(shape.Blue).WithWidth(3), nil
	}, xk)
	o.tangentLabel = live.Derive("tangent_label", func() (shape.Object, error) {
		b, err := live.Bounds(o.tangent)
		if err != nil {
			return nil, err
		}
		t := shape.MathTex(`\text{tangent}`).Scaled(0.6).WithColor(shape.Blue)
		shape.NextTo(t, b, geom.Down, 0.2)
		return t, nil
	}, o.tangent)

	o.bound = live.Derive("q_graph", func() (shape.Object, error) {
		q := bound()
		lo, hi, err := q.Interval(p.YMax)
		if err != nil {
			return nil, err
		}
		c, err := axes.Plot(q.Eval, math.Max(lo, p.XMin), math.Min(hi, p.XMax))
		if err != nil {
			return nil, err
		}
		return c.WithColor(shape.Red).WithWidth(3), nil
	}, xk)
	o.boundLabel = labelAbove("q_label", `q_k(y)`, 0.7, o.bound, geom.Up, 0.2)

	minimum := func() geom.Vec2 {
		q := bound()
		y := q.Min()
		return axes.C2P(y, q.Eval(y))
	}
	next := func() geom.Vec2 {
		y := bound().Min()
		return axes.C2P(y, f.Eval(y))
	}

	o.ystarDot = live.Derive("ystar_dot", func() (shape.Object, error) {
		return shape.NewDot(minimum()).WithRadius(dotRadius).WithColor(shape.Yellow), nil
	}, xk)
	o.ystarLabel = labelAbove("ystar_label", `y^\star`, 0.7, o.ystarDot, geom.Up, 0.45)

	o.drop = live.Derive("drop_line", func() (shape.Object, error) {
		return shape.NewDashedLine(minimum(), next()).WithColor(shape.GreyB), nil
	}, xk)
	o.nextDot = live.Derive("xkp1_dot", func() (shape.Object, error) {
		return shape.NewDot(next()).WithRadius(dotRadius).WithColor(shape.Yellow), nil
	}, xk)
	o.nextLabel = labelAbove("xkp1_label", `x_{k+1}`, 0.7, o.nextDot, geom.Down, 0.45)

	return o, nil
}

// labelAbove derives a MathTex label kept next to target.
func labelAbove(label, tex string, scale float64, target live.Source, dir geom.Vec2, buff float64) live.Source {
	return live.Derive(label, func() (shape.Object, error) {
		b, err := live.Bounds(target)
		if err != nil {
			return nil, err
		}
		t := shape.MathTex(tex).Scaled(scale)
		shape.NextTo(t, b, dir, buff)
		return t, nil
	}, target)
}

func secs(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

// Construct plays the narration.
func (s *Script) Construct(ctx context.Context, sc *scene.Scene) error {
	o, err := s.build()
	if err != nil {
		return err
	}
	s.Xk.Set(s.p.X0)
	sc.Track(s.Xk)

	play := func(anims ...scene.Animation) func() error {
		return func() error { return sc.Play(ctx, anims...) }
	}
	wait := func(d float64) func() error {
		return func() error { return sc.Wait(ctx, secs(d)) }
	}

	err = scenes.Steps(
		play(scene.Write(o.title)),
		play(scene.Create(o.axes), scene.FadeIn(o.xLabel), scene.FadeIn(o.yLabel)),
		play(scene.Create(o.graph)),
		wait(0.5),

		play(scene.Write(o.formulas)),
		wait(0.5),

		play(scene.FadeIn(o.xkDot), scene.FadeIn(o.xkLabel)),
		wait(0.4),
		play(scene.Create(o.tangent), scene.FadeIn(o.tangentLabel)),
		wait(0.4),
		play(scene.Create(o.bound), scene.FadeIn(o.boundLabel)),
		wait(0.4),
		play(scene.FadeIn(o.ystarDot), scene.FadeIn(o.ystarLabel)),
		play(scene.Create(o.drop)),
		play(scene.FadeIn(o.nextDot), scene.FadeIn(o.nextLabel)),
		wait(1.0),

		play(scene.Write(o.step)),
		wait(0.5),
	)
	if err != nil {
		return err
	}

	target := s.p.Bound(s.Xk.Get()).Min()
	sc.Logger().Debug("descent step", "x_k", s.Xk.Get(), "x_k+1", target)
	if err := sc.PlayWith(ctx, scene.PlayOpts{RunTime: s.p.stepDuration()}, scene.SetValue(s.Xk, target)); err != nil {
		return err
	}
	if err := sc.Wait(ctx, secs(1.0)); err != nil {
		return err
	}

	dot, err := o.nextDot.Resolve()
	if err != nil {
		return err
	}
	highlight := live.Static("highlight", shape.SurroundingRectangle(dot, 0.15, shape.Yellow))
	return scenes.Steps(
		play(scene.Create(highlight)),
		wait(1.0),
		wait(3.5),
	)
}
