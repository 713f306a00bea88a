package shape

import (
	"math"

	"github.com/matzehuels/mathscene/pkg/geom"
)

// Defaults shared by the basic objects.
const (
	DefaultStrokeWidth = 4.0
	DefaultDotRadius   = 0.08
	DefaultTipLength   = 0.25
	DefaultTipRatio    = 0.8
	DefaultDashLength  = 0.08
)

// Dot is a filled disc.
type Dot struct {
	Center geom.Vec2
	Radius float64
	Color  Color
}

// NewDot creates a white dot of the default radius at p.
func NewDot(p geom.Vec2) *Dot {
	return &Dot{Center: p, Radius: DefaultDotRadius, Color: White}
}

func (d *Dot) WithRadius(r float64) *Dot { d.Radius = r; return d }
func (d *Dot) WithColor(c Color) *Dot    { d.Color = c; return d }
func (d *Dot) Shift(v geom.Vec2)         { d.Center = d.Center.Add(v) }
func (d *Dot) Bounds() geom.Bounds       { return geom.Rect(d.Center, 2*d.Radius, 2*d.Radius) }
func (d *Dot) Primitives() []Primitive {
	return []Primitive{{
		Kind: KindCircle, Center: d.Center, Radius: d.Radius,
		Fill: d.Color, FillOpacity: 1, Opacity: 1,
	}}
}

// Line is a straight segment, optionally dashed.
type Line struct {
	Start, End  geom.Vec2
	Color       Color
	StrokeWidth float64
	Dash        float64
}

// NewLine creates a solid white line.
func NewLine(start, end geom.Vec2) *Line {
	return &Line{Start: start, End: end, Color: White, StrokeWidth: DefaultStrokeWidth}
}

// NewDashedLine creates a dashed line with the default dash length.
func NewDashedLine(start, end geom.Vec2) *Line {
	l := NewLine(start, end)
	l.Dash = DefaultDashLength
	return l
}

func (l *Line) WithColor(c Color) *Line   { l.Color = c; return l }
func (l *Line) WithWidth(w float64) *Line { l.StrokeWidth = w; return l }
func (l *Line) Shift(v geom.Vec2)         { l.Start, l.End = l.Start.Add(v), l.End.Add(v) }
func (l *Line) Bounds() geom.Bounds       { return geom.BoundsOf(l.Start, l.End) }
func (l *Line) Primitives() []Primitive {
	return []Primitive{{
		Kind: KindPath, Points: []geom.Vec2{l.Start, l.End}, Dash: l.Dash,
		Stroke: l.Color, StrokeWidth: l.StrokeWidth, Opacity: 1,
	}}
}

// Arrow is a line with a filled triangular tip at End. The tip keeps a fixed
// length but never exceeds TipRatio of the arrow's length, so short arrows
// stay arrows.
type Arrow struct {
	Start, End  geom.Vec2
	Color       Color
	StrokeWidth float64
	TipLength   float64
	TipRatio    float64
	Opacity     float64
}

// NewArrow creates a white arrow from start to end.
func NewArrow(start, end geom.Vec2) *Arrow {
	return &Arrow{
		Start: start, End: end, Color: White,
		StrokeWidth: 6, TipLength: DefaultTipLength, TipRatio: DefaultTipRatio,
		Opacity: 1,
	}
}

func (a *Arrow) WithColor(c Color) *Arrow     { a.Color = c; return a }
func (a *Arrow) WithWidth(w float64) *Arrow   { a.StrokeWidth = w; return a }
func (a *Arrow) WithOpacity(o float64) *Arrow { a.Opacity = o; return a }
func (a *Arrow) Shift(v geom.Vec2)            { a.Start, a.End = a.Start.Add(v), a.End.Add(v) }

// Direction returns the unit vector from Start to End (zero for a
// zero-length arrow).
func (a *Arrow) Direction() geom.Vec2 { return a.End.Sub(a.Start).Normalize() }

func (a *Arrow) tip() (base, left, right geom.Vec2, ok bool) {
	length := a.Start.Dist(a.End)
	if length == 0 {
		return geom.Vec2{}, geom.Vec2{}, geom.Vec2{}, false
	}
	tl := math.Min(a.TipLength, a.TipRatio*length)
	dir := a.Direction()
	base = a.End.Sub(dir.Scale(tl))
	half := dir.Perp().Scale(tl / 2)
	return base, base.Add(half), base.Sub(half), true
}

func (a *Arrow) Bounds() geom.Bounds {
	b := geom.BoundsOf(a.Start, a.End)
	if _, l, r, ok := a.tip(); ok {
		b = b.Include(l).Include(r)
	}
	return b
}

func (a *Arrow) Primitives() []Primitive {
	base, l, r, ok := a.tip()
	if !ok {
		return nil
	}
	return []Primitive{
		{
			Kind: KindPath, Points: []geom.Vec2{a.Start, base},
			Stroke: a.Color, StrokeWidth: a.StrokeWidth, Opacity: a.Opacity,
		},
		{
			Kind: KindPath, Points: []geom.Vec2{a.End, l, r}, Closed: true,
			Fill: a.Color, FillOpacity: 1, Opacity: a.Opacity,
		},
	}
}

// Curve is an open polyline, usually a sampled function graph.
type Curve struct {
	Points      []geom.Vec2
	Color       Color
	StrokeWidth float64
}

// NewCurve creates a white curve through pts.
func NewCurve(pts []geom.Vec2) *Curve {
	return &Curve{Points: pts, Color: White, StrokeWidth: DefaultStrokeWidth}
}

func (c *Curve) WithColor(col Color) *Curve { c.Color = col; return c }
func (c *Curve) WithWidth(w float64) *Curve { c.StrokeWidth = w; return c }
func (c *Curve) Bounds() geom.Bounds        { return geom.BoundsOf(c.Points...) }
func (c *Curve) Shift(v geom.Vec2) {
	for i := range c.Points {
		c.Points[i] = c.Points[i].Add(v)
	}
}
func (c *Curve) Primitives() []Primitive {
	return []Primitive{{
		Kind: KindPath, Points: c.Points,
		Stroke: c.Color, StrokeWidth: c.StrokeWidth, Opacity: 1,
	}}
}

// Rect is an outlined rectangle.
type Rect struct {
	Box         geom.Bounds
	Color       Color
	StrokeWidth float64
}

// NewRect outlines box.
func NewRect(box geom.Bounds) *Rect {
	return &Rect{Box: box, Color: White, StrokeWidth: DefaultStrokeWidth}
}

// SurroundingRectangle outlines o with buff units of padding.
func SurroundingRectangle(o Object, buff float64, c Color) *Rect {
	return &Rect{Box: o.Bounds().Expand(buff), Color: c, StrokeWidth: DefaultStrokeWidth}
}

func (r *Rect) Bounds() geom.Bounds { return r.Box }
func (r *Rect) Shift(v geom.Vec2)   { r.Box = r.Box.Shift(v) }
func (r *Rect) Primitives() []Primitive {
	b := r.Box
	return []Primitive{{
		Kind: KindPath, Closed: true,
		Points: []geom.Vec2{
			b.Corner(geom.UL), b.Corner(geom.UR), b.Corner(geom.DR), b.Corner(geom.DL),
		},
		Stroke: r.Color, StrokeWidth: r.StrokeWidth, Opacity: 1,
	}}
}

// Group is an ordered collection of objects.
type Group struct {
	Items []Object
}

// NewGroup groups objs.
func NewGroup(objs ...Object) *Group { return &Group{Items: objs} }

func (g *Group) Add(o Object) { g.Items = append(g.Items, o) }

func (g *Group) Shift(v geom.Vec2) {
	for _, o := range g.Items {
		o.Shift(v)
	}
}

func (g *Group) Bounds() geom.Bounds {
	var b geom.Bounds
	for _, o := range g.Items {
		b = b.Union(o.Bounds())
	}
	return b
}

func (g *Group) Primitives() []Primitive {
	var out []Primitive
	for _, o := range g.Items {
		out = append(out, o.Primitives()...)
	}
	return out
}

// Arrange stacks the items in direction dir with buff units between them.
// A non-zero align lines every item up on that edge of the first one.
func (g *Group) Arrange(dir geom.Vec2, buff float64, align geom.Vec2) *Group {
	for i := 1; i < len(g.Items); i++ {
		NextTo(g.Items[i], g.Items[i-1].Bounds(), dir, buff)
		if align != geom.Origin {
			AlignTo(g.Items[i], g.Items[0].Bounds(), align)
		}
	}
	MoveTo(g, geom.Origin)
	return g
}
