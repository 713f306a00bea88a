package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mathscene/pkg/cache"
	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/render"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/shape"
	"github.com/matzehuels/mathscene/pkg/value"
)

func testFrame(i int, x float64) scene.Frame {
	var items []shape.Primitive
	items = append(items, shape.NewDot(geom.V(x, 0)).WithColor(shape.Yellow).Primitives()...)
	items = append(items, shape.NewLine(geom.V(-2, -1), geom.V(2, 1)).Primitives()...)
	items = append(items, shape.MathTex("x_k < 1").Primitives()...)
	return scene.Frame{
		Scene: "test",
		Index: i,
		Time:  time.Duration(i) * time.Second / 30,
		Step:  1,
		Cells: []value.Snapshot{{Name: "x", Value: x}},
		Items: items,
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testFrame(1, 0), WithViewport(render.NewViewport(640, 360))))
	for _, want := range []string{
		`viewBox="0 0 640 360"`,
		`<circle cx="320.00" cy="180.00"`,
		`fill="#ffff00"`,
		`<path d="M`,
		"&lt;",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testFrame(1, 0), WithPNGViewport(render.NewViewport(320, 180)))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Errorf("size = %dx%d, want 320x180", b.Dx(), b.Dy())
	}
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	s, err := NewDirSink(dir, "test", SVGEncoder())
	if err != nil {
		t.Fatalf("NewDirSink: %v", err)
	}
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		if err := s.WriteFrame(ctx, testFrame(i, float64(i))); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if len(s.Paths()) != 3 {
		t.Fatalf("Paths() = %d, want 3", len(s.Paths()))
	}
	if want := filepath.Join(dir, "test_00002.svg"); s.Paths()[1] != want {
		t.Errorf("Paths()[1] = %s, want %s", s.Paths()[1], want)
	}
	for _, p := range s.Paths() {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("stat %s: %v", p, err)
		}
	}
}

func TestStillSinkWritesLastFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still.svg")
	s := NewStillSink(path, SVGEncoder())
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		_ = s.WriteFrame(ctx, testFrame(i, float64(i)))
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("still written before Close")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := RenderSVG(testFrame(3, 3)); !bytes.Equal(got, want) {
		t.Error("still does not match last frame")
	}
}

func TestStillSinkEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still.svg")
	if err := NewStillSink(path, SVGEncoder()).Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty still sink wrote a file")
	}
}

func TestTimelineSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.json")
	cfg := scene.DefaultConfig()
	s := NewTimelineSink(path, WithJSONConfig(cfg))
	ctx := context.Background()
	for i := 1; i <= 30; i++ {
		_ = s.WriteFrame(ctx, testFrame(i, float64(i)/10))
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got jsonTimeline
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Scene != "test" || got.Width != 1280 || got.FPS != 30 {
		t.Errorf("header = %+v", got)
	}
	if len(got.Frames) != 30 {
		t.Fatalf("frames = %d, want 30", len(got.Frames))
	}
	if got.Duration != 1 {
		t.Errorf("Duration = %v, want 1", got.Duration)
	}
	if v := got.Frames[29].Cells["x"]; v != 3 {
		t.Errorf("last x = %v, want 3", v)
	}
	if len(got.Frames[0].Items) != 0 {
		t.Error("timeline sink should drop items")
	}
}

func TestRenderJSONItems(t *testing.T) {
	data, err := RenderJSON([]scene.Frame{testFrame(1, 0)}, WithJSONItems())
	if err != nil {
		t.Fatal(err)
	}
	var got jsonTimeline
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	items := got.Frames[0].Items
	if len(items) == 0 || items[0].Kind != "circle" || items[0].Fill != "#ffff00" {
		t.Errorf("items[0] = %+v", items)
	}
}

type countingCache struct {
	cache.Cache
	gets, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets++
	return c.Cache.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestCachedEncoder(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cc := &countingCache{Cache: fc}
	calls := 0
	base := Encoder{Format: "svg", Ext: "svg", Encode: func(_ context.Context, f scene.Frame) ([]byte, error) {
		calls++
		return RenderSVG(f), nil
	}}
	enc := Cached(base, cc, nil, cache.FrameKeyOpts{Width: 1280, Height: 720})
	ctx := context.Background()

	a, _ := enc.Encode(ctx, testFrame(1, 0))
	// Same drawing, different index and time.
	b, _ := enc.Encode(ctx, testFrame(7, 0))
	if !bytes.Equal(a, b) {
		t.Error("cached output differs")
	}
	if calls != 1 {
		t.Errorf("draw calls = %d, want 1", calls)
	}
	if cc.sets != 1 || cc.gets != 2 {
		t.Errorf("gets/sets = %d/%d, want 2/1", cc.gets, cc.sets)
	}
	_, _ = enc.Encode(ctx, testFrame(1, 1))
	if calls != 2 {
		t.Errorf("changed frame should redraw, calls = %d", calls)
	}
}

func TestCachedNilCache(t *testing.T) {
	enc := SVGEncoder()
	if got := Cached(enc, nil, nil, cache.FrameKeyOpts{}); got.Format != "svg" {
		t.Errorf("Format = %s", got.Format)
	}
}

func TestSinkAbortKeepsPreviousOutput(t *testing.T) {
	tests := []struct {
		name string
		open func(path string) Abortable
	}{
		{"still", func(path string) Abortable { return NewStillSink(path, SVGEncoder()) }},
		{"timeline", func(path string) Abortable { return NewTimelineSink(path) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "out")
			if err := os.WriteFile(path, []byte("previous"), 0644); err != nil {
				t.Fatal(err)
			}
			s := tt.open(path)
			ctx := context.Background()
			for i := 1; i <= 3; i++ {
				_ = s.WriteFrame(ctx, testFrame(i, float64(i)))
			}
			if err := s.Abort(); err != nil {
				t.Fatalf("Abort: %v", err)
			}
			if got, _ := os.ReadFile(path); string(got) != "previous" {
				t.Errorf("output = %q, want previous contents", got)
			}
			if entries, _ := os.ReadDir(dir); len(entries) != 1 {
				t.Errorf("dir has %d entries, want 1", len(entries))
			}
		})
	}
}

func TestDirSinkAbort(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	s, err := NewDirSink(dir, "test", SVGEncoder())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := s.WriteFrame(ctx, testFrame(i, float64(i))); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("aborted dir sink left %d files", len(entries))
	}
	if len(s.Paths()) != 0 {
		t.Errorf("Paths() = %v, want none", s.Paths())
	}
}

func TestWriteFileReplacesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.svg")
	for _, data := range []string{"first", "second"} {
		if err := writeFile(path, []byte(data)); err != nil {
			t.Fatalf("writeFile: %v", err)
		}
	}
	if got, _ := os.ReadFile(path); string(got) != "second" {
		t.Errorf("contents = %q, want second", got)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the output", len(entries))
	}
	if info, err := os.Stat(path); err != nil || info.Mode().Perm() != 0644 {
		t.Errorf("mode = %v, %v, want 0644", info.Mode().Perm(), err)
	}

	if err := writeFile(filepath.Join(dir, "missing", "frame.svg"), []byte("x")); err == nil {
		t.Error("writeFile into a missing directory should fail")
	}
}

// failingCache fails every operation with err.
type failingCache struct {
	cache.NullCache
	err        error
	gets, sets int
}

func (c *failingCache) Get(context.Context, string) ([]byte, bool, error) {
	c.gets++
	return nil, false, c.err
}

func (c *failingCache) Set(context.Context, string, []byte, time.Duration) error {
	c.sets++
	return c.err
}

func TestCachedStopsAfterUnavailable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantGets  int
		wantSets  int
		wantDraws int
	}{
		{"unavailable", cache.Retryable(fmt.Errorf("%w: connection refused", cache.ErrUnavailable)), 1, 0, 3},
		{"other error", errors.New("corrupt entry"), 3, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &failingCache{err: tt.err}
			draws := 0
			base := Encoder{Format: "svg", Ext: "svg", Encode: func(_ context.Context, f scene.Frame) ([]byte, error) {
				draws++
				return RenderSVG(f), nil
			}}
			enc := Cached(base, fc, nil, cache.FrameKeyOpts{})
			for i := 0; i < 3; i++ {
				if _, err := enc.Encode(context.Background(), testFrame(i, float64(i))); err != nil {
					t.Fatalf("Encode: %v", err)
				}
			}
			if fc.gets != tt.wantGets || fc.sets != tt.wantSets {
				t.Errorf("gets/sets = %d/%d, want %d/%d", fc.gets, fc.sets, tt.wantGets, tt.wantSets)
			}
			if draws != tt.wantDraws {
				t.Errorf("draws = %d, want %d", draws, tt.wantDraws)
			}
		})
	}
}
