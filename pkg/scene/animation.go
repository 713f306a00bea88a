package scene

import (
	"time"

	"github.com/matzehuels/mathscene/pkg/easing"
	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/live"
	"github.com/matzehuels/mathscene/pkg/value"
)

// DefaultRunTime is the duration of an animation without RunTime.
const DefaultRunTime = time.Second

// Animation changes scene state over a play step.
//
// Begin is called once when the step starts, Update once per frame with the
// eased fraction, and Finish once before the step's last frame. Finish must
// leave the state exactly where the animation ends, whatever the last alpha
// was.
type Animation interface {
	Begin(s *Scene) error
	Update(alpha float64) error
	Finish() error
	Duration() time.Duration
	Rate() easing.Func
}

// Option configures an animation.
type Option func(*timing)

// RunTime sets how long the animation takes.
func RunTime(d time.Duration) Option {
	return func(t *timing) { t.dur = d }
}

// RateFunc sets the easing curve.
func RateFunc(f easing.Func) Option {
	return func(t *timing) { t.rate = f }
}

type timing struct {
	dur  time.Duration
	rate easing.Func
}

func newTiming(rate easing.Func, opts []Option) timing {
	t := timing{dur: DefaultRunTime, rate: rate}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func (t timing) Duration() time.Duration { return t.dur }
func (t timing) Rate() easing.Func       { return t.rate }

// =============================================================================
// Tracked values
// =============================================================================

type setValue struct {
	timing
	cell   *value.Cell
	target float64
	start  float64
}

// SetValue moves cell to target. The cell holds exactly target once the step
// ends.
func SetValue(cell *value.Cell, target float64, opts ...Option) Animation {
	return &setValue{timing: newTiming(easing.Smooth, opts), cell: cell, target: target}
}

func (a *setValue) Begin(s *Scene) error {
	if !value.Finite(a.target) {
		return errors.New(errors.ErrCodeInvalidInput, "%s: target %v is not finite", a.cell.Name(), a.target)
	}
	s.Track(a.cell)
	a.start = a.cell.Get()
	return nil
}

func (a *setValue) Update(alpha float64) error {
	a.cell.Set(value.Lerp(a.start, a.target, alpha))
	return nil
}

func (a *setValue) Finish() error {
	a.cell.Set(a.target)
	return nil
}

// MoveTo moves both cells of a pair.
func MoveTo(p value.Pair, x, y float64, opts ...Option) []Animation {
	return []Animation{SetValue(p.X, x, opts...), SetValue(p.Y, y, opts...)}
}

// =============================================================================
// Opacity
// =============================================================================

type fade struct {
	timing
	src   live.Source
	e     *entry
	in    bool
	scene *Scene
}

// FadeIn stages src transparent and raises it to full opacity.
func FadeIn(src live.Source, opts ...Option) Animation {
	return &fade{timing: newTiming(easing.Smooth, opts), src: src, in: true}
}

// FadeOut lowers a staged source to transparent and removes it.
func FadeOut(src live.Source, opts ...Option) Animation {
	return &fade{timing: newTiming(easing.Smooth, opts), src: src}
}

func (a *fade) Begin(s *Scene) error {
	a.scene = s
	if a.in {
		a.e = s.stage(a.src, 0, 1)
		a.e.opacity = 0
		return nil
	}
	e, err := s.entry(a.src)
	if err != nil {
		return err
	}
	a.e = e
	return nil
}

func (a *fade) Update(alpha float64) error {
	if a.in {
		a.e.opacity = alpha
	} else {
		a.e.opacity = 1 - alpha
	}
	return nil
}

func (a *fade) Finish() error {
	if a.in {
		a.e.opacity = 1
		return nil
	}
	a.scene.Remove(a.src)
	return nil
}

// =============================================================================
// Drawing
// =============================================================================

type create struct {
	timing
	src live.Source
	e   *entry
}

// Create stages src and draws it progressively: paths are traced by arc
// length, dots fade in.
func Create(src live.Source, opts ...Option) Animation {
	return &create{timing: newTiming(easing.Smooth, opts), src: src}
}

// Write is Create at a constant rate, which reads better for text.
func Write(src live.Source, opts ...Option) Animation {
	return &create{timing: newTiming(easing.Linear, opts), src: src}
}

func (a *create) Begin(s *Scene) error {
	a.e = s.stage(a.src, 1, 0)
	a.e.progress = 0
	return nil
}

func (a *create) Update(alpha float64) error {
	a.e.progress = alpha
	return nil
}

func (a *create) Finish() error {
	a.e.progress = 1
	return nil
}

// =============================================================================
// Linear maps
// =============================================================================

type applyMatrix struct {
	timing
	m     geom.Mat2
	src   live.Source
	about geom.Vec2
	e     *entry
	from  geom.Mat2
}

// ApplyMatrix morphs a staged source by m about a fixed point. Every point p
// travels in a straight line from p to m(p−about)+about.
func ApplyMatrix(m geom.Mat2, src live.Source, about geom.Vec2, opts ...Option) Animation {
	return &applyMatrix{timing: newTiming(easing.Smooth, opts), m: m, src: src, about: about}
}

func (a *applyMatrix) Begin(s *Scene) error {
	e, err := s.entry(a.src)
	if err != nil {
		return err
	}
	if !e.affine.IsIdentity() && e.affine.About != a.about {
		return errors.New(errors.ErrCodeInvalidGeometry,
			"%s: already transformed about %v, cannot apply about %v", a.src.Label(), e.affine.About, a.about)
	}
	a.e = e
	a.from = e.affine.M
	return nil
}

func (a *applyMatrix) Update(alpha float64) error {
	a.e.affine = geom.Affine{M: a.from.Lerp(a.m.Mul(a.from), alpha), About: a.about}
	return nil
}

func (a *applyMatrix) Finish() error {
	a.e.affine = geom.Affine{M: a.m.Mul(a.from), About: a.about}
	return nil
}
