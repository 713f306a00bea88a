package shape

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/mathscene/pkg/errors"
)

// Color is an sRGB colour.
type Color = colorful.Color

// Palette.
var (
	White  = mustHex("#FFFFFF")
	GreyA  = mustHex("#DDDDDD")
	GreyB  = mustHex("#BBBBBB")
	Blue   = mustHex("#58C4DD")
	Red    = mustHex("#FC6255")
	Yellow = mustHex("#FFFF00")
	Pink   = mustHex("#D147BD")
	GreenB = mustHex("#A6CF8C")
)

// Background is the default scene background.
var Background = mustHex("#000000")

// ParseColor parses "#rrggbb".
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid colour %q", s)
	}
	return c, nil
}

func mustHex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
