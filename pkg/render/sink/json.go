package sink

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/shape"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	cfg   scene.Config
	items bool
}

// WithJSONConfig records the frame size and rate.
func WithJSONConfig(cfg scene.Config) JSONOption {
	return func(r *jsonRenderer) { r.cfg = cfg }
}

// WithJSONItems includes every frame's primitives, not just cell values.
func WithJSONItems() JSONOption { return func(r *jsonRenderer) { r.items = true } }

type jsonTimeline struct {
	Scene    string      `json:"scene"`
	Width    int         `json:"width,omitempty"`
	Height   int         `json:"height,omitempty"`
	FPS      float64     `json:"fps,omitempty"`
	Duration float64     `json:"duration"`
	Cells    []string    `json:"cells"`
	Frames   []jsonFrame `json:"frames"`
}

type jsonFrame struct {
	Index int                `json:"index"`
	Time  float64            `json:"time"`
	Step  int                `json:"step"`
	Cells map[string]float64 `json:"cells"`
	Items []jsonItem         `json:"items,omitempty"`
}

type jsonItem struct {
	Kind        string      `json:"kind"`
	Points      []geom.Vec2 `json:"points,omitempty"`
	Closed      bool        `json:"closed,omitempty"`
	Dash        float64     `json:"dash,omitempty"`
	Center      *geom.Vec2  `json:"center,omitempty"`
	Radius      float64     `json:"radius,omitempty"`
	Text        string      `json:"text,omitempty"`
	FontSize    float64     `json:"font_size,omitempty"`
	Stroke      string      `json:"stroke,omitempty"`
	StrokeWidth float64     `json:"stroke_width,omitempty"`
	Fill        string      `json:"fill,omitempty"`
	FillOpacity float64     `json:"fill_opacity,omitempty"`
	Opacity     float64     `json:"opacity"`
}

// RenderJSON writes a timeline: for every frame, its time, step and the
// value of every tracked cell. Times are in seconds.
func RenderJSON(frames []scene.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonTimeline{
		Width:  r.cfg.Width,
		Height: r.cfg.Height,
		FPS:    r.cfg.FPS,
		Frames: make([]jsonFrame, 0, len(frames)),
	}
	seen := map[string]bool{}
	for _, f := range frames {
		out.Scene = f.Scene
		out.Duration = f.Time.Seconds()
		jf := jsonFrame{Index: f.Index, Time: f.Time.Seconds(), Step: f.Step, Cells: map[string]float64{}}
		for _, c := range f.Cells {
			jf.Cells[c.Name] = c.Value
			if !seen[c.Name] {
				seen[c.Name] = true
				out.Cells = append(out.Cells, c.Name)
			}
		}
		if r.items {
			jf.Items = buildItems(f.Items)
		}
		out.Frames = append(out.Frames, jf)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode timeline")
	}
	return data, nil
}

func buildItems(prims []shape.Primitive) []jsonItem {
	items := make([]jsonItem, len(prims))
	for i, p := range prims {
		it := jsonItem{
			Kind:        p.Kind.String(),
			Points:      p.Points,
			Closed:      p.Closed,
			Dash:        p.Dash,
			Radius:      p.Radius,
			Text:        p.Text,
			FontSize:    p.FontSize,
			StrokeWidth: p.StrokeWidth,
			FillOpacity: p.FillOpacity,
			Opacity:     p.Opacity,
		}
		if p.Kind != shape.KindPath {
			c := p.Center
			it.Center = &c
		}
		if p.StrokeWidth > 0 {
			it.Stroke = p.Stroke.Hex()
		}
		if p.FillOpacity > 0 {
			it.Fill = p.Fill.Hex()
		}
		items[i] = it
	}
	return items
}

// TimelineSink collects frames and writes a JSON timeline on Close.
type TimelineSink struct {
	path   string
	opts   []JSONOption
	frames []scene.Frame
}

// NewTimelineSink writes the timeline to path.
func NewTimelineSink(path string, opts ...JSONOption) *TimelineSink {
	return &TimelineSink{path: path, opts: opts}
}

func (s *TimelineSink) WriteFrame(_ context.Context, f scene.Frame) error {
	f.Items = nil
	s.frames = append(s.frames, f)
	return nil
}

func (s *TimelineSink) Close() error {
	data, err := RenderJSON(s.frames, s.opts...)
	if err != nil {
		return err
	}
	return writeFile(s.path, data)
}

// Abort drops the collected frames without writing them.
func (s *TimelineSink) Abort() error {
	s.frames = nil
	return nil
}

// Path returns the output file.
func (s *TimelineSink) Path() string { return s.path }
