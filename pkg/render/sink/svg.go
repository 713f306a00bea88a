package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/mathscene/pkg/fonts"
	"github.com/matzehuels/mathscene/pkg/render"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/shape"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	vp         render.Viewport
	background shape.Color
	fontFamily string
}

// WithViewport sets the output size. The default is 1280×720.
func WithViewport(v render.Viewport) SVGOption { return func(r *svgRenderer) { r.vp = v } }

// WithBackground sets the background colour.
func WithBackground(c shape.Color) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithFontFamily overrides the CSS font family of text.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		vp:         render.NewViewport(1280, 720),
		background: shape.Background,
		fontFamily: fonts.FontFamily,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws f as a standalone SVG document.
func RenderSVG(f scene.Frame, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := r.vp.Width, r.vp.Height

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background.Hex())
	for _, p := range f.Items {
		switch p.Kind {
		case shape.KindPath:
			r.path(&buf, p)
		case shape.KindCircle:
			r.circle(&buf, p)
		case shape.KindText:
			r.text(&buf, p)
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) path(buf *bytes.Buffer, p shape.Primitive) {
	if len(p.Points) < 2 {
		return
	}
	var d strings.Builder
	for i, pt := range p.Points {
		x, y := r.vp.Point(pt)
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&d, "%s%.2f %.2f ", cmd, x, y)
	}
	if p.Closed {
		d.WriteString("Z")
	}
	fmt.Fprintf(buf, `  <path d="%s"%s%s/>`+"\n", strings.TrimSpace(d.String()), r.paint(p), r.dash(p))
}

func (r *svgRenderer) circle(buf *bytes.Buffer, p shape.Primitive) {
	x, y := r.vp.Point(p.Center)
	fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n", x, y, r.vp.Length(p.Radius), r.paint(p))
}

func (r *svgRenderer) text(buf *bytes.Buffer, p shape.Primitive) {
	if p.Text == "" {
		return
	}
	x, y := r.vp.Point(p.Center)
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.2f" text-anchor="middle" dominant-baseline="central" fill="%s" opacity="%.3f">%s</text>`+"\n",
		x, y, escapeXML(r.fontFamily), r.vp.Length(p.FontSize), p.Fill.Hex(), p.Opacity, escapeXML(p.Text))
}

// paint renders fill, stroke and opacity attributes.
func (r *svgRenderer) paint(p shape.Primitive) string {
	var b strings.Builder
	if p.FillOpacity > 0 {
		fmt.Fprintf(&b, ` fill="%s" fill-opacity="%.3f"`, p.Fill.Hex(), p.FillOpacity)
	} else {
		b.WriteString(` fill="none"`)
	}
	if p.StrokeWidth > 0 {
		fmt.Fprintf(&b, ` stroke="%s" stroke-width="%.2f" stroke-linecap="round" stroke-linejoin="round"`,
			p.Stroke.Hex(), r.vp.Length(shape.StrokeUnits(p.StrokeWidth)))
	}
	if p.Opacity < 1 {
		fmt.Fprintf(&b, ` opacity="%.3f"`, p.Opacity)
	}
	return b.String()
}

func (r *svgRenderer) dash(p shape.Primitive) string {
	if p.Dash <= 0 {
		return ""
	}
	l := r.vp.Length(p.Dash)
	return fmt.Sprintf(` stroke-dasharray="%.2f %.2f"`, l, l)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
