package shape

import (
	"math"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/value"
)

// Range is a closed interval with a tick step.
type Range struct {
	Min, Max, Step float64
}

func (r Range) span() float64 { return r.Max - r.Min }

func (r Range) valid() bool {
	return r.Max > r.Min && r.Step > 0 && value.Finite(r.Min) && value.Finite(r.Max)
}

// ticks returns every multiple of Step inside the range.
func (r Range) ticks() []float64 {
	var out []float64
	first := math.Ceil(r.Min/r.Step) * r.Step
	for v := first; v <= r.Max+1e-9; v += r.Step {
		out = append(out, v)
	}
	return out
}

// AxesConfig configures a coordinate system.
type AxesConfig struct {
	X, Y             Range
	XLength, YLength float64
	IncludeTip       bool
	Color            Color
	StrokeWidth      float64
}

// Axes is a pair of number lines. Before any shift the axes are centred on
// the origin.
type Axes struct {
	cfg    AxesConfig
	offset geom.Vec2
}

const (
	axisTipLength = 0.25
	tickSize      = 0.1
	plotSamples   = 160
)

// NewAxes validates cfg and builds the axes.
func NewAxes(cfg AxesConfig) (*Axes, error) {
	if !cfg.X.valid() || !cfg.Y.valid() {
		return nil, errors.New(errors.ErrCodeInvalidGeometry,
			"degenerate axis range x=%v y=%v", cfg.X, cfg.Y)
	}
	if cfg.XLength <= 0 || cfg.YLength <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry,
			"axis lengths must be positive, got %gx%g", cfg.XLength, cfg.YLength)
	}
	if cfg.Color == (Color{}) {
		cfg.Color = White
	}
	if cfg.StrokeWidth == 0 {
		cfg.StrokeWidth = 2
	}
	return &Axes{cfg: cfg}, nil
}

// Config returns the configuration the axes were built with.
func (a *Axes) Config() AxesConfig { return a.cfg }

// C2P maps graph coordinates to a scene point.
func (a *Axes) C2P(x, y float64) geom.Vec2 {
	c := a.cfg
	px := (x-c.X.Min)/c.X.span()*c.XLength - c.XLength/2
	py := (y-c.Y.Min)/c.Y.span()*c.YLength - c.YLength/2
	return geom.Vec2{X: px, Y: py}.Add(a.offset)
}

// P2C maps a scene point back to graph coordinates.
func (a *Axes) P2C(p geom.Vec2) (x, y float64) {
	c := a.cfg
	p = p.Sub(a.offset)
	x = (p.X+c.XLength/2)/c.XLength*c.X.span() + c.X.Min
	y = (p.Y+c.YLength/2)/c.YLength*c.Y.span() + c.Y.Min
	return x, y
}

// Origin returns the scene point of graph coordinate (0, 0).
func (a *Axes) Origin() geom.Vec2 { return a.C2P(0, 0) }

func clampTo(v float64, r Range) float64 { return math.Min(math.Max(v, r.Min), r.Max) }

func (a *Axes) xAxis() (geom.Vec2, geom.Vec2) {
	y0 := clampTo(0, a.cfg.Y)
	return a.C2P(a.cfg.X.Min, y0), a.C2P(a.cfg.X.Max, y0)
}

func (a *Axes) yAxis() (geom.Vec2, geom.Vec2) {
	x0 := clampTo(0, a.cfg.X)
	return a.C2P(x0, a.cfg.Y.Min), a.C2P(x0, a.cfg.Y.Max)
}

func (a *Axes) Shift(v geom.Vec2) { a.offset = a.offset.Add(v) }

func (a *Axes) Bounds() geom.Bounds {
	xs, xe := a.xAxis()
	ys, ye := a.yAxis()
	b := geom.BoundsOf(xs, xe, ys, ye)
	if a.cfg.IncludeTip {
		b = b.Expand(axisTipLength / 4)
	}
	return b
}

func (a *Axes) Primitives() []Primitive {
	var out []Primitive
	axis := func(start, end geom.Vec2) {
		if a.cfg.IncludeTip {
			arrow := NewArrow(start, end).WithColor(a.cfg.Color).WithWidth(a.cfg.StrokeWidth)
			arrow.TipLength = axisTipLength
			out = append(out, arrow.Primitives()...)
			return
		}
		out = append(out, NewLine(start, end).WithColor(a.cfg.Color).WithWidth(a.cfg.StrokeWidth).Primitives()...)
	}
	tick := func(p, dir geom.Vec2) {
		out = append(out, Primitive{
			Kind:   KindPath,
			Points: []geom.Vec2{p.Sub(dir.Scale(tickSize)), p.Add(dir.Scale(tickSize))},
			Stroke: a.cfg.Color, StrokeWidth: a.cfg.StrokeWidth, Opacity: 1,
		})
	}

	axis(a.xAxis())
	axis(a.yAxis())

	y0, x0 := clampTo(0, a.cfg.Y), clampTo(0, a.cfg.X)
	for _, x := range a.cfg.X.ticks() {
		if x == x0 || x == a.cfg.X.Max {
			continue
		}
		tick(a.C2P(x, y0), geom.Up)
	}
	for _, y := range a.cfg.Y.ticks() {
		if y == y0 || y == a.cfg.Y.Max {
			continue
		}
		tick(a.C2P(x0, y), geom.Right)
	}
	return out
}

// Plot samples f on [lo, hi] and returns its graph. A sample that is NaN or
// infinite means f is undefined there; the error is returned rather than
// patched over.
func (a *Axes) Plot(f func(float64) float64, lo, hi float64) (*Curve, error) {
	if !(hi > lo) || !value.Finite(lo) || !value.Finite(hi) {
		return nil, errors.New(errors.ErrCodeUndefined, "invalid plot interval [%g, %g]", lo, hi)
	}
	pts := make([]geom.Vec2, 0, plotSamples+1)
	for i := 0; i <= plotSamples; i++ {
		x := lo + (hi-lo)*float64(i)/plotSamples
		if i == plotSamples {
			x = hi
		}
		y := f(x)
		if !value.Finite(y) {
			return nil, errors.New(errors.ErrCodeUndefined, "function undefined at x=%g", x)
		}
		pts = append(pts, a.C2P(x, y))
	}
	return NewCurve(pts), nil
}

// XAxisLabel places label beyond the positive end of the x axis.
func (a *Axes) XAxisLabel(label *Text) *Text {
	_, end := a.xAxis()
	NextToPoint(label, end, geom.UR, geom.SmallBuff)
	return label
}

// YAxisLabel places label beyond the top of the y axis.
func (a *Axes) YAxisLabel(label *Text) *Text {
	_, end := a.yAxis()
	NextToPoint(label, end, geom.UR, geom.SmallBuff)
	return label
}

// LineStyle styles background grid lines.
type LineStyle struct {
	Color       Color
	Opacity     float64
	StrokeWidth float64
}

// NumberPlane is a grid of background lines over the same coordinate
// mapping as [Axes]. Its own axes are not drawn.
type NumberPlane struct {
	*Axes
	Style LineStyle
}

// NewNumberPlane builds a grid.
func NewNumberPlane(cfg AxesConfig, style LineStyle) (*NumberPlane, error) {
	axes, err := NewAxes(cfg)
	if err != nil {
		return nil, err
	}
	if style.StrokeWidth == 0 {
		style.StrokeWidth = 1
	}
	if style.Opacity == 0 {
		style.Opacity = 1
	}
	return &NumberPlane{Axes: axes, Style: style}, nil
}

func (n *NumberPlane) Bounds() geom.Bounds {
	c := n.cfg
	return geom.BoundsOf(n.C2P(c.X.Min, c.Y.Min), n.C2P(c.X.Max, c.Y.Max))
}

func (n *NumberPlane) Primitives() []Primitive {
	c := n.cfg
	line := func(p, q geom.Vec2) Primitive {
		return Primitive{
			Kind: KindPath, Points: []geom.Vec2{p, q},
			Stroke: n.Style.Color, StrokeWidth: n.Style.StrokeWidth, Opacity: n.Style.Opacity,
		}
	}
	var out []Primitive
	for _, x := range c.X.ticks() {
		out = append(out, line(n.C2P(x, c.Y.Min), n.C2P(x, c.Y.Max)))
	}
	for _, y := range c.Y.ticks() {
		out = append(out, line(n.C2P(c.X.Min, y), n.C2P(c.X.Max, y)))
	}
	return out
}
