package gradient

import (
	"time"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/value"
)

// Params configures the scene. All fields map to keys of the
// [scenes.gd-quadratic-bound] config table.
type Params struct {
	A float64 `toml:"a"`
	B float64 `toml:"b"`
	C float64 `toml:"c"`
	D float64 `toml:"d"`
	L float64 `toml:"l"`

	// X0 is where the iterate starts.
	X0 float64 `toml:"x0"`

	XMin float64 `toml:"x_min"`
	XMax float64 `toml:"x_max"`
	YMax float64 `toml:"y_max"`

	// StepTime is how long the iterate takes to move, in seconds.
	StepTime float64 `toml:"step_time"`
}

// DefaultParams returns f(x) = 0.3x³ − x² + 0.5x + 2.4 with L = 6 starting at
// 3.4 on [−1, 4].
func DefaultParams() Params {
	return Params{
		A: 0.3, B: -1, C: 0.5, D: 2.4, L: 6,
		X0:   3.4,
		XMin: -1, XMax: 4, YMax: 8,
		StepTime: 1.5,
	}
}

// Cubic returns f.
func (p Params) Cubic() Cubic { return Cubic{A: p.A, B: p.B, C: p.C, D: p.D} }

// Bound returns the quadratic upper bound at x0.
func (p Params) Bound(x0 float64) Bound { return Bound{F: p.Cubic(), L: p.L, X0: x0} }

func (p Params) stepDuration() time.Duration {
	return time.Duration(p.StepTime * float64(time.Second))
}

// Validate rejects parameters the scene cannot draw.
func (p Params) Validate() error {
	for name, v := range map[string]float64{
		"a": p.A, "b": p.B, "c": p.C, "d": p.D, "l": p.L,
		"x0": p.X0, "x_min": p.XMin, "x_max": p.XMax, "y_max": p.YMax, "step_time": p.StepTime,
	} {
		if !value.Finite(v) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite, got %v", name, v)
		}
	}
	if p.L <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "l must be positive, got %g", p.L)
	}
	if p.XMax <= p.XMin {
		return errors.New(errors.ErrCodeInvalidConfig, "x_max %g must exceed x_min %g", p.XMax, p.XMin)
	}
	if p.X0 < p.XMin || p.X0 > p.XMax {
		return errors.New(errors.ErrCodeInvalidConfig, "x0 %g outside [%g, %g]", p.X0, p.XMin, p.XMax)
	}
	if p.YMax <= -1 {
		return errors.New(errors.ErrCodeInvalidConfig, "y_max must exceed -1, got %g", p.YMax)
	}
	if p.StepTime <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "step_time must be positive, got %g", p.StepTime)
	}
	return nil
}
