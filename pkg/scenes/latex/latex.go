// Package latex writes a single formula. It exercises text rendering end to
// end.
package latex

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/live"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/scenes"
	"github.com/matzehuels/mathscene/pkg/shape"
)

// Name is the scene's registry name.
const Name = "latex-test"

// Params configures the [scenes.latex-test] table.
type Params struct {
	Formula string  `toml:"formula"`
	Hold    float64 `toml:"hold"`
}

// DefaultParams writes ∫₀¹ x² dx = 1/3 and holds it for a second.
func DefaultParams() Params {
	return Params{Formula: `\int_0^1 x^2\,dx = \frac{1}{3}`, Hold: 1}
}

func (p Params) Validate() error {
	if strings.TrimSpace(p.Formula) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "formula is empty")
	}
	if p.Hold <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "hold must be positive, got %g", p.Hold)
	}
	return nil
}

// Definition registers the scene.
var Definition = &scenes.Definition{
	Name:        Name,
	Description: "Write a single formula",
	New: func(decode scenes.Decode) (scene.Script, error) {
		p, err := decodeParams(decode)
		if err != nil {
			return nil, err
		}
		return &Script{p: p}, nil
	},
	Check: func(_ context.Context, decode scenes.Decode) []scenes.Check {
		p, err := decodeParams(decode)
		if err != nil {
			return []scenes.Check{scenes.Failed("params", err)}
		}
		shown := shape.PlainTeX(p.Formula)
		return []scenes.Check{
			scenes.Verify("formula has a display form", strings.TrimSpace(shown) != "", shown),
			scenes.Verify("no TeX commands left", !strings.Contains(shown, `\`), shown),
		}
	},
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

// Script is the scene.
type Script struct {
	p Params
}

func (s *Script) Name() string        { return Name }
func (s *Script) Description() string { return Definition.Description }

func (s *Script) Construct(ctx context.Context, sc *scene.Scene) error {
	eq := live.Static("eq", shape.MathTex(s.p.Formula))
	if err := sc.Play(ctx, scene.Write(eq)); err != nil {
		return err
	}
	return sc.Wait(ctx, time.Duration(s.p.Hold*float64(time.Second)))
}
