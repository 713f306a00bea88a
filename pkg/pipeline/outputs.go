package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/matzehuels/mathscene/pkg/cache"
	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/observability"
	"github.com/matzehuels/mathscene/pkg/render"
	"github.com/matzehuels/mathscene/pkg/render/sink"
	"github.com/matzehuels/mathscene/pkg/scene"
)

// output is a sink that knows which files it produced.
type output interface {
	sink.Abortable
	files() []string
}

type dirOutput struct{ *sink.DirSink }

func (o dirOutput) files() []string { return o.Paths() }

type fileOutput struct {
	sink.Abortable
	path string
}

func (o fileOutput) files() []string { return []string{o.path} }

// buildOutputs creates the output directory and one sink per requested
// format. On error every sink already created is aborted.
func (r *Runner) buildOutputs(ctx context.Context, opts Options, c cache.Cache) (map[string]output, error) {
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", opts.OutputDir)
	}
	cfg := opts.SceneConfig()
	vp := render.NewViewport(opts.Width, opts.Height)
	svgOpts := []sink.SVGOption{sink.WithViewport(vp), sink.WithBackground(cfg.Background)}
	pngOpts := []sink.PNGOption{sink.WithPNGViewport(vp), sink.WithPNGBackground(cfg.Background)}
	cached := func(enc sink.Encoder) sink.Encoder {
		return sink.Cached(enc, c, r.Keyer, opts.FrameKeyOpts(enc.Format))
	}
	base := filepath.Join(opts.OutputDir, opts.Scene)

	outs := make(map[string]output, len(opts.Formats))
	fail := func(err error) (map[string]output, error) {
		abortAll(outs)
		return nil, err
	}
	for _, format := range opts.Formats {
		var enc sink.Encoder
		switch format {
		case FormatSVG:
			enc = cached(sink.SVGEncoder(svgOpts...))
		case FormatPNG:
			enc = cached(sink.PNGEncoder(pngOpts...))
		case FormatPDF:
			enc = sink.PDFEncoder(svgOpts...)
		case FormatJSON:
			path := base + ".json"
			outs[format] = fileOutput{sink.NewTimelineSink(path, sink.WithJSONConfig(cfg)), path}
			continue
		case FormatMP4:
			path := base + ".mp4"
			v, err := sink.NewVideoSink(ctx, path, opts.FPS, cached(sink.PNGEncoder(pngOpts...)))
			if err != nil {
				return fail(err)
			}
			outs[format] = fileOutput{v, path}
			continue
		default:
			return fail(ValidateFormat(format))
		}

		if opts.Frames && format != FormatPDF {
			d, err := sink.NewDirSink(filepath.Join(base, format), opts.Scene, enc)
			if err != nil {
				return fail(err)
			}
			outs[format] = dirOutput{d}
			continue
		}
		path := base + "." + enc.Ext
		outs[format] = fileOutput{sink.NewStillSink(path, enc), path}
	}
	return outs, nil
}

// stepSink reports each finished play or wait step to the render hooks.
type stepSink struct {
	scene  string
	ctx    context.Context
	step   int
	frames int
	steps  int
}

func (s *stepSink) WriteFrame(_ context.Context, f scene.Frame) error {
	if f.Step != s.step && s.frames > 0 {
		s.flush()
	}
	s.step = f.Step
	s.frames++
	return nil
}

func (s *stepSink) flush() {
	observability.Render().OnStepComplete(s.ctx, s.scene, s.step, s.frames)
	s.steps++
	s.frames = 0
}

func (s *stepSink) Close() error {
	if s.frames > 0 {
		s.flush()
	}
	return nil
}

// progressSink forwards frames without taking ownership.
type progressSink struct{ scene.Sink }

func (progressSink) Close() error { return nil }

// countingCache tallies lookups for [CacheInfo].
type countingCache struct {
	cache.Cache
	hits, misses atomic.Int64
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil && hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return data, hit, err
}

// abortAll discards every output so a failed run leaves earlier files alone.
func abortAll(outs map[string]output) {
	for _, o := range outs {
		_ = o.Abort()
	}
}

func closeAll(outs map[string]output) error {
	var first error
	for format, o := range outs {
		if err := o.Close(); err != nil && first == nil {
			first = errors.Wrap(errors.ErrCodeRender, err, "finish %s", format)
		}
	}
	return first
}
