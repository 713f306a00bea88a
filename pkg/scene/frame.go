package scene

import (
	"context"
	"time"

	"github.com/matzehuels/mathscene/pkg/shape"
	"github.com/matzehuels/mathscene/pkg/value"
)

// Frame is the resolved state of a scene at one instant.
type Frame struct {
	Scene string            `json:"scene"`
	Index int               `json:"index"`
	Time  time.Duration     `json:"time"`
	Step  int               `json:"step"`
	Cells []value.Snapshot  `json:"cells"`
	Items []shape.Primitive `json:"items"`
}

// Cell returns the snapshotted value of the named cell.
func (f Frame) Cell(name string) (float64, bool) {
	for _, c := range f.Cells {
		if c.Name == name {
			return c.Value, true
		}
	}
	return 0, false
}

// Sink consumes frames as the scene produces them.
type Sink interface {
	WriteFrame(ctx context.Context, f Frame) error
	Close() error
}

type discard struct{}

func (discard) WriteFrame(context.Context, Frame) error { return nil }
func (discard) Close() error                            { return nil }

// Discard drops every frame.
var Discard Sink = discard{}

// Recorder keeps every frame in memory.
type Recorder struct {
	Frames []Frame
}

func (r *Recorder) WriteFrame(_ context.Context, f Frame) error {
	r.Frames = append(r.Frames, f)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Last returns the most recent frame.
func (r *Recorder) Last() (Frame, bool) {
	if len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// MultiSink writes every frame to each sink in order.
type MultiSink []Sink

func (m MultiSink) WriteFrame(ctx context.Context, f Frame) error {
	for _, s := range m {
		if err := s.WriteFrame(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and returns the first error.
func (m MultiSink) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
