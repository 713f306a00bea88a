// Package fonts provides the font used for scene text.
//
// Frames use the Go Regular typeface, which ships with golang.org/x/image, so
// rasterising text needs no system fonts. SVG output names the same family
// and falls back to a generic sans-serif.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family for SVG text.
const FontFamily = `'Go', 'DejaVu Sans', 'Helvetica Neue', Arial, sans-serif`

var (
	parsed    *truetype.Font
	parseErr  error
	parseOnce sync.Once
)

// Regular returns the parsed Go Regular font.
func Regular() (*truetype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = truetype.Parse(goregular.TTF)
	})
	return parsed, parseErr
}

// Face returns a new face of the given pixel size. A face keeps a glyph
// cache and must not be shared between goroutines.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}
