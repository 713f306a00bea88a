package render

import (
	"math"

	"github.com/matzehuels/mathscene/pkg/geom"
)

// Viewport maps scene units to pixels. The full frame height always fits;
// wider or narrower aspect ratios show more or less of the plane sideways.
type Viewport struct {
	Width, Height int
	// Scale is pixels per scene unit.
	Scale float64
}

// NewViewport fits the scene frame into width×height pixels.
func NewViewport(width, height int) Viewport {
	return Viewport{Width: width, Height: height, Scale: float64(height) / geom.FrameHeight}
}

// Point returns the pixel position of p, with y growing downwards.
func (v Viewport) Point(p geom.Vec2) (x, y float64) {
	return float64(v.Width)/2 + p.X*v.Scale, float64(v.Height)/2 - p.Y*v.Scale
}

// Length converts a distance in scene units to pixels.
func (v Viewport) Length(u float64) float64 { return u * v.Scale }

// Visible returns the scene-space rectangle the viewport shows.
func (v Viewport) Visible() geom.Bounds {
	w, h := float64(v.Width)/v.Scale, float64(v.Height)/v.Scale
	return geom.Rect(geom.Origin, w, h)
}

// Round reports p in whole pixels, as a rasteriser would place it.
func (v Viewport) Round(p geom.Vec2) (x, y int) {
	fx, fy := v.Point(p)
	return int(math.Round(fx)), int(math.Round(fy))
}
