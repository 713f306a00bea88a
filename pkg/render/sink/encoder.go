package sink

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/matzehuels/mathscene/pkg/cache"
	"github.com/matzehuels/mathscene/pkg/observability"
	"github.com/matzehuels/mathscene/pkg/render"
	"github.com/matzehuels/mathscene/pkg/scene"
)

// Encoder draws one frame in a fixed format.
type Encoder struct {
	// Format names the output, such as "png".
	Format string
	// Ext is the file extension without the dot.
	Ext    string
	Encode func(ctx context.Context, f scene.Frame) ([]byte, error)
}

// SVGEncoder draws frames with [RenderSVG].
func SVGEncoder(opts ...SVGOption) Encoder {
	return Encoder{Format: "svg", Ext: "svg", Encode: func(_ context.Context, f scene.Frame) ([]byte, error) {
		return RenderSVG(f, opts...), nil
	}}
}

// PNGEncoder draws frames with [RenderPNG].
func PNGEncoder(opts ...PNGOption) Encoder {
	return Encoder{Format: "png", Ext: "png", Encode: func(_ context.Context, f scene.Frame) ([]byte, error) {
		return RenderPNG(f, opts...)
	}}
}

// PDFEncoder draws frames with [RenderPDF].
func PDFEncoder(opts ...SVGOption) Encoder {
	return Encoder{Format: "pdf", Ext: "pdf", Encode: func(_ context.Context, f scene.Frame) ([]byte, error) {
		return RenderPDF(f, opts...)
	}}
}

// RenderPDF renders the frame as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(f scene.Frame, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(f, opts...))
}

// ContentHash identifies what a frame draws. Frames that differ only in
// index, time or cell values but draw the same primitives share a hash.
func ContentHash(f scene.Frame) (string, error) {
	return cache.HashJSON(f.Items)
}

// Cached returns enc backed by c. Cache errors never fail a render; the
// frame is drawn and the error is dropped. Once c reports
// [cache.ErrUnavailable] the encoder stops consulting it, so a lost redis
// server costs one round of retries instead of one per frame.
func Cached(enc Encoder, c cache.Cache, keyer cache.Keyer, opts cache.FrameKeyOpts) Encoder {
	if c == nil {
		return enc
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	opts.Format = enc.Format
	draw := enc.Encode
	var down atomic.Bool
	latch := func(err error) {
		if errors.Is(err, cache.ErrUnavailable) {
			down.Store(true)
		}
	}
	enc.Encode = func(ctx context.Context, f scene.Frame) ([]byte, error) {
		if down.Load() {
			return draw(ctx, f)
		}
		hash, err := ContentHash(f)
		if err != nil {
			return draw(ctx, f)
		}
		key := keyer.FrameKey(hash, opts)
		data, hit, err := c.Get(ctx, key)
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "frame")
			return data, nil
		}
		latch(err)
		observability.Cache().OnCacheMiss(ctx, "frame")

		data, err = draw(ctx, f)
		if err != nil {
			return nil, err
		}
		if down.Load() {
			return data, nil
		}
		if err := c.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			latch(err)
		} else {
			observability.Cache().OnCacheSet(ctx, "frame", len(data))
		}
		return data, nil
	}
	return enc
}
