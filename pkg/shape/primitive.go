package shape

import (
	"math"
	"unicode/utf8"

	"github.com/matzehuels/mathscene/pkg/geom"
)

// Kind discriminates primitives.
type Kind int

const (
	KindPath Kind = iota
	KindCircle
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindCircle:
		return "circle"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Primitive is a single drawable in scene units.
//
// StrokeWidth uses the conventional animation scale where 4 is a normal line;
// sinks convert it with [StrokeUnits]. A zero StrokeWidth means no stroke and
// a zero FillOpacity means no fill.
type Primitive struct {
	Kind Kind `json:"kind"`

	// KindPath
	Points []geom.Vec2 `json:"points,omitempty"`
	Closed bool        `json:"closed,omitempty"`
	Dash   float64     `json:"dash,omitempty"`

	// KindCircle
	Center geom.Vec2 `json:"center"`
	Radius float64   `json:"radius,omitempty"`

	// KindText (Center is the middle of the run)
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`

	Stroke      Color   `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Fill        Color   `json:"fill"`
	FillOpacity float64 `json:"fill_opacity,omitempty"`
	Opacity     float64 `json:"opacity"`
}

// StrokeUnits converts a stroke width to scene units.
func StrokeUnits(w float64) float64 { return w * 0.01 }

// Transform returns p with every point mapped through a.
func (p Primitive) Transform(a geom.Affine) Primitive {
	if a.IsIdentity() {
		return p
	}
	switch p.Kind {
	case KindPath:
		pts := make([]geom.Vec2, len(p.Points))
		for i, q := range p.Points {
			pts[i] = a.Apply(q)
		}
		p.Points = pts
	case KindCircle:
		p.Center = a.Apply(p.Center)
		p.Radius *= math.Sqrt(math.Abs(a.M.Det()))
	case KindText:
		p.Center = a.Apply(p.Center)
	}
	return p
}

// Partial returns p drawn up to frac. Paths are cut by arc length (fills of
// closed shapes fade in with frac), circles fade in and text reveals a prefix
// of its runes.
func (p Primitive) Partial(frac float64) Primitive {
	if frac >= 1 {
		return p
	}
	frac = math.Max(0, frac)
	switch p.Kind {
	case KindPath:
		pts := p.Points
		if p.Closed && len(pts) > 1 {
			pts = append(append([]geom.Vec2(nil), pts...), pts[0])
			p.Closed = false
		}
		p.Points = geom.Partial(pts, frac)
		p.FillOpacity *= frac
	case KindCircle:
		p.Opacity *= frac
	case KindText:
		n := utf8.RuneCountInString(p.Text)
		k := int(math.Ceil(frac * float64(n)))
		p.Text = string([]rune(p.Text)[:k])
	}
	return p
}

// Fade multiplies the primitive's opacity.
func (p Primitive) Fade(opacity float64) Primitive {
	p.Opacity *= opacity
	return p
}

// Bounds returns the primitive's bounding box, ignoring stroke width.
func (p Primitive) Bounds() geom.Bounds {
	switch p.Kind {
	case KindCircle:
		return geom.Rect(p.Center, 2*p.Radius, 2*p.Radius)
	case KindText:
		return geom.Rect(p.Center, textWidth(p.Text, p.FontSize), p.FontSize)
	}
	return geom.BoundsOf(p.Points...)
}
