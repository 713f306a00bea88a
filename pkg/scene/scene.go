package scene

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/live"
	"github.com/matzehuels/mathscene/pkg/shape"
	"github.com/matzehuels/mathscene/pkg/value"
)

// Config controls frame sampling and output size.
type Config struct {
	Width      int
	Height     int
	FPS        float64
	Background shape.Color
}

// DefaultConfig is 1280x720 at 30 frames per second on the standard
// background.
func DefaultConfig() Config {
	return Config{Width: 1280, Height: 720, FPS: 30, Background: shape.Background}
}

// Script builds a scene by staging sources and playing animations.
type Script interface {
	Name() string
	Description() string
	Construct(ctx context.Context, s *Scene) error
}

type entry struct {
	src      live.Source
	opacity  float64
	progress float64
	affine   geom.Affine
}

// Scene holds what is on screen and the playback clock.
type Scene struct {
	name   string
	cfg    Config
	sink   Sink
	logger *log.Logger

	entries  []*entry
	staged   map[live.Source]*entry
	bindings []live.Source
	seen     map[live.Source]bool
	cells    []*value.Cell
	tracked  map[*value.Cell]bool

	frames int
	clock  time.Duration
	step   int
}

// New creates an empty scene. A nil sink discards frames and a nil logger
// discards log output.
func New(name string, cfg Config, sink Sink, logger *log.Logger) *Scene {
	if sink == nil {
		sink = Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultConfig().FPS
	}
	return &Scene{
		name:    name,
		cfg:     cfg,
		sink:    sink,
		logger:  logger,
		staged:  make(map[live.Source]*entry),
		seen:    make(map[live.Source]bool),
		tracked: make(map[*value.Cell]bool),
	}
}

func (s *Scene) Name() string        { return s.name }
func (s *Scene) Config() Config      { return s.cfg }
func (s *Scene) Logger() *log.Logger { return s.logger }

// Time is the scene clock: the summed duration of every step played so far.
func (s *Scene) Time() time.Duration { return s.clock }

// FrameCount is the number of frames emitted so far.
func (s *Scene) FrameCount() int { return s.frames }

// Steps is the number of play and wait steps run so far.
func (s *Scene) Steps() int { return s.step }

// Add stages sources fully drawn and opaque. Sources already on screen are
// left where they are.
func (s *Scene) Add(srcs ...live.Source) {
	for _, src := range srcs {
		s.stage(src, 1, 1)
	}
}

func (s *Scene) stage(src live.Source, opacity, progress float64) *entry {
	if e, ok := s.staged[src]; ok {
		return e
	}
	e := &entry{src: src, opacity: opacity, progress: progress, affine: geom.IdentityAffine}
	s.entries = append(s.entries, e)
	s.staged[src] = e
	s.bind(src)
	return e
}

// bind records src for Bindings and tracks every cell it reads.
func (s *Scene) bind(src live.Source) {
	if s.seen[src] {
		return
	}
	s.seen[src] = true
	s.bindings = append(s.bindings, src)
	var walk func(in live.Input)
	walk = func(in live.Input) {
		switch v := in.(type) {
		case *value.Cell:
			s.Track(v)
		case live.Source:
			for _, child := range v.Inputs() {
				walk(child)
			}
		}
	}
	walk(src)
}

// Remove unstages sources. Removing something that is not staged is a no-op.
func (s *Scene) Remove(srcs ...live.Source) {
	for _, src := range srcs {
		e, ok := s.staged[src]
		if !ok {
			continue
		}
		delete(s.staged, src)
		for i, other := range s.entries {
			if other == e {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				break
			}
		}
	}
}

// Has reports whether src is staged.
func (s *Scene) Has(src live.Source) bool {
	_, ok := s.staged[src]
	return ok
}

func (s *Scene) entry(src live.Source) (*entry, error) {
	e, ok := s.staged[src]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotStaged, "%s is not on screen", src.Label())
	}
	return e, nil
}

// Track adds cells to the snapshot carried by every frame.
func (s *Scene) Track(cells ...*value.Cell) {
	for _, c := range cells {
		if s.tracked[c] {
			continue
		}
		s.tracked[c] = true
		s.cells = append(s.cells, c)
	}
}

// Cells returns the tracked cells in the order they were first seen.
func (s *Scene) Cells() []*value.Cell { return s.cells }

// Bindings returns every source ever staged, in staging order.
func (s *Scene) Bindings() []live.Source { return s.bindings }

// Snapshot resolves every staged source and returns the current frame
// without emitting it.
func (s *Scene) Snapshot() (Frame, error) {
	var items []shape.Primitive
	for _, e := range s.entries {
		obj, err := e.src.Resolve()
		if err != nil {
			return Frame{}, err
		}
		if e.opacity <= 0 {
			continue
		}
		for _, p := range obj.Primitives() {
			p = p.Transform(e.affine)
			if e.progress < 1 {
				p = p.Partial(e.progress)
			}
			if e.opacity < 1 {
				p = p.Fade(e.opacity)
			}
			items = append(items, p)
		}
	}
	return Frame{
		Scene: s.name,
		Index: s.frames,
		Time:  s.clock,
		Step:  s.step,
		Cells: value.Snap(s.cells),
		Items: items,
	}, nil
}

func (s *Scene) emit(ctx context.Context, at time.Duration) error {
	s.clock = at
	f, err := s.Snapshot()
	if err != nil {
		return err
	}
	if err := s.sink.WriteFrame(ctx, f); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write frame %d", f.Index)
	}
	s.frames++
	return nil
}
