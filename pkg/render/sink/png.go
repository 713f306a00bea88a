package sink

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/fonts"
	"github.com/matzehuels/mathscene/pkg/render"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/shape"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	vp         render.Viewport
	background shape.Color
}

// WithPNGViewport sets the output size. The default is 1280×720.
func WithPNGViewport(v render.Viewport) PNGOption { return func(r *pngRenderer) { r.vp = v } }

// WithPNGBackground sets the background colour.
func WithPNGBackground(c shape.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterises f.
func RenderPNG(f scene.Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{vp: render.NewViewport(1280, 720), background: shape.Background}
	for _, opt := range opts {
		opt(&r)
	}

	dc := gg.NewContext(r.vp.Width, r.vp.Height)
	dc.SetRGB(r.background.R, r.background.G, r.background.B)
	dc.Clear()
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, p := range f.Items {
		var err error
		switch p.Kind {
		case shape.KindPath:
			r.path(dc, p)
		case shape.KindCircle:
			r.circle(dc, p)
		case shape.KindText:
			err = r.text(dc, p)
		}
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) path(dc *gg.Context, p shape.Primitive) {
	if len(p.Points) < 2 {
		return
	}
	dc.NewSubPath()
	for i, pt := range p.Points {
		x, y := r.vp.Point(pt)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	if p.Closed {
		dc.ClosePath()
	}
	r.finish(dc, p)
}

func (r *pngRenderer) circle(dc *gg.Context, p shape.Primitive) {
	x, y := r.vp.Point(p.Center)
	dc.NewSubPath()
	dc.DrawCircle(x, y, r.vp.Length(p.Radius))
	r.finish(dc, p)
}

// finish fills and strokes the current path.
func (r *pngRenderer) finish(dc *gg.Context, p shape.Primitive) {
	if p.FillOpacity > 0 {
		dc.SetRGBA(p.Fill.R, p.Fill.G, p.Fill.B, p.FillOpacity*p.Opacity)
		dc.FillPreserve()
	}
	if p.StrokeWidth > 0 {
		dc.SetRGBA(p.Stroke.R, p.Stroke.G, p.Stroke.B, p.Opacity)
		dc.SetLineWidth(r.vp.Length(shape.StrokeUnits(p.StrokeWidth)))
		if p.Dash > 0 {
			l := r.vp.Length(p.Dash)
			dc.SetDash(l, l)
		} else {
			dc.SetDash()
		}
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

func (r *pngRenderer) text(dc *gg.Context, p shape.Primitive) error {
	if p.Text == "" {
		return nil
	}
	face, err := fonts.Face(r.vp.Length(p.FontSize))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "load font")
	}
	defer face.Close()
	dc.SetFontFace(face)
	x, y := r.vp.Point(p.Center)
	dc.SetRGBA(p.Fill.R, p.Fill.G, p.Fill.B, p.Opacity)
	dc.DrawStringAnchored(p.Text, x, y, 0.5, 0.35)
	return nil
}
