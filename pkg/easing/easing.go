// Package easing provides easing curves: functions that map the elapsed
// fraction of an animation to the fraction of the change that has been
// applied.
//
// Every named curve maps 0 to 0 and 1 to 1 except [ThereAndBack], which
// returns to 0. The sequencer does not rely on Func(1) == 1 to land values on
// their targets; it finishes every animation explicitly.
package easing

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/harmonica"

	"github.com/matzehuels/mathscene/pkg/errors"
)

// Func maps elapsed fraction t in [0, 1] to interpolation fraction.
type Func func(t float64) float64

func clamp01(t float64) float64 { return math.Min(1, math.Max(0, t)) }

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// Linear applies the change at a constant rate.
func Linear(t float64) float64 { return clamp01(t) }

// smoothInflection controls how sharp Smooth is.
const smoothInflection = 10.0

// Smooth is a logistic ease-in-out normalised to hit 0 and 1 exactly.
func Smooth(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	e := sigmoid(-smoothInflection / 2)
	return clamp01((sigmoid(smoothInflection*(t-0.5)) - e) / (1 - 2*e))
}

// RushInto starts slowly and arrives at full speed.
func RushInto(t float64) float64 { return 2 * Smooth(clamp01(t)/2) }

// RushFrom starts at full speed and settles.
func RushFrom(t float64) float64 { return 2*Smooth(clamp01(t)/2+0.5) - 1 }

// DoubleSmooth eases in and out of each half.
func DoubleSmooth(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 0.5 * Smooth(2*t)
	}
	return 0.5 * (1 + Smooth(2*t-1))
}

// ThereAndBack goes to 1 at the midpoint and back to 0.
func ThereAndBack(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return Smooth(2 * t)
	}
	return Smooth(2 - 2*t)
}

// EaseInOutSine follows half a cosine wave.
func EaseInOutSine(t float64) float64 { return -(math.Cos(math.Pi*clamp01(t)) - 1) / 2 }

// EaseInCubic accelerates from rest.
func EaseInCubic(t float64) float64 { t = clamp01(t); return t * t * t }

// EaseOutCubic decelerates to rest.
func EaseOutCubic(t float64) float64 { t = 1 - clamp01(t); return 1 - t*t*t }

// springSteps is the resolution of the precomputed spring curve.
const springSteps = 240

// Spring returns a damped-spring curve. angularFrequency sets how fast the
// spring moves and damping how much it overshoots (1 is critically damped).
// The curve is simulated once with harmonica and then looked up; it may
// overshoot 1 before settling, and it is pinned to 1 at t = 1.
func Spring(angularFrequency, damping float64) Func {
	s := harmonica.NewSpring(1.0/springSteps, angularFrequency, damping)
	table := make([]float64, springSteps+1)
	var pos, vel float64
	for i := 1; i <= springSteps; i++ {
		pos, vel = s.Update(pos, vel, 1)
		table[i] = pos
	}
	table[springSteps] = 1
	return func(t float64) float64 {
		t = clamp01(t)
		f := t * springSteps
		i := int(f)
		if i >= springSteps {
			return 1
		}
		return table[i] + (table[i+1]-table[i])*(f-float64(i))
	}
}

var named = map[string]Func{
	"linear":           Linear,
	"smooth":           Smooth,
	"rush_into":        RushInto,
	"rush_from":        RushFrom,
	"double_smooth":    DoubleSmooth,
	"there_and_back":   ThereAndBack,
	"ease_in_out_sine": EaseInOutSine,
	"ease_in_cubic":    EaseInCubic,
	"ease_out_cubic":   EaseOutCubic,
	"spring":           Spring(12, 0.5),
}

// Lookup returns the curve registered under name. Dashes and underscores are
// interchangeable.
func Lookup(name string) (Func, error) {
	f, ok := named[strings.ReplaceAll(strings.ToLower(name), "-", "_")]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown easing curve %q (known: %s)",
			name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered curves.
func Names() []string {
	out := make([]string, 0, len(named))
	for k := range named {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
