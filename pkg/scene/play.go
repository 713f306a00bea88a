package scene

import (
	"context"
	"math"
	"time"

	"github.com/matzehuels/mathscene/pkg/easing"
	"github.com/matzehuels/mathscene/pkg/errors"
)

// PlayOpts applies to every animation of a step.
type PlayOpts struct {
	// RunTime overrides each animation's duration.
	RunTime time.Duration
	// Rate overrides each animation's easing curve.
	Rate easing.Func
}

// Play runs animations together as one step.
func (s *Scene) Play(ctx context.Context, anims ...Animation) error {
	return s.PlayWith(ctx, PlayOpts{}, anims...)
}

// PlayWith runs animations together as one step.
//
// The step lasts opts.RunTime, or the longest animation when it is zero. Frame
// k of N = round(T·fps) is sampled at t = T·k/N and each animation sees
// rate(min(1, t/d)) for its own duration d. Every animation is finished before
// the last frame is emitted.
func (s *Scene) PlayWith(ctx context.Context, opts PlayOpts, anims ...Animation) error {
	if len(anims) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "play: no animations")
	}
	total := opts.RunTime
	if total <= 0 {
		for _, a := range anims {
			total = max(total, a.Duration())
		}
	}
	if total <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "play: non-positive run time %v", total)
	}

	for _, a := range anims {
		if err := a.Begin(s); err != nil {
			return err
		}
	}

	n := s.frameCount(total)
	s.logger.Debug("play", "scene", s.name, "step", s.step, "animations", len(anims), "duration", total, "frames", n)

	start := s.clock
	for k := 1; k <= n; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		at := time.Duration(float64(total) * float64(k) / float64(n))
		if k == n {
			for _, a := range anims {
				if err := a.Finish(); err != nil {
					return err
				}
			}
		} else {
			for _, a := range anims {
				d := a.Duration()
				if opts.RunTime > 0 || d <= 0 {
					d = total
				}
				rate := a.Rate()
				if opts.Rate != nil {
					rate = opts.Rate
				}
				if rate == nil {
					rate = easing.Smooth
				}
				if err := a.Update(rate(math.Min(1, float64(at)/float64(d)))); err != nil {
					return err
				}
			}
		}
		if err := s.emit(ctx, start+at); err != nil {
			return err
		}
	}
	s.step++
	return nil
}

// Wait holds the current state for d.
func (s *Scene) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "wait: non-positive duration %v", d)
	}
	n := s.frameCount(d)
	s.logger.Debug("wait", "scene", s.name, "step", s.step, "duration", d, "frames", n)
	start := s.clock
	for k := 1; k <= n; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		at := time.Duration(float64(d) * float64(k) / float64(n))
		if err := s.emit(ctx, start+at); err != nil {
			return err
		}
	}
	s.step++
	return nil
}

// frameCount returns round(d·fps), at least one.
func (s *Scene) frameCount(d time.Duration) int {
	return max(1, int(math.Round(d.Seconds()*s.cfg.FPS)))
}
