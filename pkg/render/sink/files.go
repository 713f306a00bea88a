package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/observability"
	"github.com/matzehuels/mathscene/pkg/render"
	"github.com/matzehuels/mathscene/pkg/scene"
)

// Abortable is a sink whose unfinished output can be discarded. Abort is
// called instead of Close when a scene fails, and leaves no partial files.
type Abortable interface {
	scene.Sink
	Abort() error
}

var (
	_ Abortable = (*DirSink)(nil)
	_ Abortable = (*StillSink)(nil)
	_ Abortable = (*VideoSink)(nil)
	_ Abortable = (*TimelineSink)(nil)
)

// writeFile replaces path in one rename, so readers never see a truncated
// file and a failed write keeps the previous one.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	return nil
}

// DirSink writes every frame to its own numbered file.
type DirSink struct {
	dir    string
	prefix string
	enc    Encoder
	paths  []string
}

// NewDirSink writes frames as dir/<prefix>_00000.<ext>, creating dir.
func NewDirSink(dir, prefix string, enc Encoder) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
	}
	return &DirSink{dir: dir, prefix: prefix, enc: enc}, nil
}

func (s *DirSink) WriteFrame(ctx context.Context, f scene.Frame) error {
	start := time.Now()
	data, err := s.enc.Encode(ctx, f)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%05d.%s", s.prefix, f.Index, s.enc.Ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	s.paths = append(s.paths, path)
	observability.Render().OnFrameWritten(ctx, f.Scene, s.enc.Format, len(data), time.Since(start))
	return nil
}

func (s *DirSink) Close() error { return nil }

// Abort removes the frames written so far.
func (s *DirSink) Abort() error {
	for _, p := range s.paths {
		_ = os.Remove(p)
	}
	s.paths = nil
	return nil
}

// Paths lists the files written so far.
func (s *DirSink) Paths() []string { return s.paths }

// StillSink keeps the latest frame and writes only that one on Close.
type StillSink struct {
	path string
	enc  Encoder
	last *scene.Frame
}

// NewStillSink writes the final frame to path.
func NewStillSink(path string, enc Encoder) *StillSink {
	return &StillSink{path: path, enc: enc}
}

func (s *StillSink) WriteFrame(_ context.Context, f scene.Frame) error {
	s.last = &f
	return nil
}

func (s *StillSink) Close() error {
	if s.last == nil {
		return nil
	}
	ctx := context.Background()
	start := time.Now()
	data, err := s.enc.Encode(ctx, *s.last)
	if err != nil {
		return err
	}
	if err := writeFile(s.path, data); err != nil {
		return err
	}
	observability.Render().OnFrameWritten(ctx, s.last.Scene, s.enc.Format, len(data), time.Since(start))
	return nil
}

// Abort drops the kept frame without writing it.
func (s *StillSink) Abort() error {
	s.last = nil
	return nil
}

// Path returns the output file.
func (s *StillSink) Path() string { return s.path }

// VideoSink streams PNG frames into ffmpeg. The video is encoded to a
// partial file next to path and renamed into place on Close.
type VideoSink struct {
	path    string
	partial string
	png     Encoder
	video   *render.Encoder
}

// NewVideoSink starts ffmpeg writing path. png should produce PNG images of
// a fixed size.
func NewVideoSink(ctx context.Context, path string, fps float64, png Encoder) (*VideoSink, error) {
	ext := filepath.Ext(path)
	partial := strings.TrimSuffix(path, ext) + ".partial" + ext
	v, err := render.EncodeVideo(ctx, partial, fps)
	if err != nil {
		return nil, err
	}
	return &VideoSink{path: path, partial: partial, png: png, video: v}, nil
}

func (s *VideoSink) WriteFrame(ctx context.Context, f scene.Frame) error {
	start := time.Now()
	data, err := s.png.Encode(ctx, f)
	if err != nil {
		return err
	}
	if err := s.video.Write(data); err != nil {
		return err
	}
	observability.Render().OnFrameWritten(ctx, f.Scene, "mp4", len(data), time.Since(start))
	return nil
}

func (s *VideoSink) Close() error {
	if err := s.video.Close(); err != nil {
		_ = os.Remove(s.partial)
		return err
	}
	if err := os.Rename(s.partial, s.path); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", s.path)
	}
	return nil
}

// Abort stops ffmpeg and deletes the partial video.
func (s *VideoSink) Abort() error {
	_ = s.video.Abort()
	_ = os.Remove(s.partial)
	return nil
}

// Path returns the output file.
func (s *VideoSink) Path() string { return s.path }
