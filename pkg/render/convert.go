package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/matzehuels/mathscene/pkg/errors"
)

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	cmd := exec.Command("rsvg-convert", "-f", format)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}

// Encoder feeds PNG frames to a running ffmpeg process.
type Encoder struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	done   bool
}

// EncodeVideo starts ffmpeg writing an H.264 MP4 to path at fps frames per
// second. Frames are written as PNG images, one per Write call.
// Requires ffmpeg: brew install ffmpeg (macOS), apt install ffmpeg (Linux).
func EncodeVideo(ctx context.Context, path string, fps float64) (*Encoder, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"mp4 export requires ffmpeg. Install with:\n  macOS:  brew install ffmpeg\n  Linux:  apt install ffmpeg")
	}
	return startEncoder(exec.CommandContext(ctx, "ffmpeg",
		"-y", "-loglevel", "error",
		"-f", "image2pipe", "-c:v", "png", "-framerate", fmt.Sprintf("%g", fps), "-i", "-",
		"-c:v", "libx264", "-pix_fmt", "yuv420p", "-movflags", "+faststart",
		"-f", "mp4", path,
	))
}

func startEncoder(cmd *exec.Cmd) (*Encoder, error) {
	e := &Encoder{cmd: cmd}
	e.cmd.Stderr = &e.stderr
	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "ffmpeg stdin")
	}
	e.stdin = stdin
	if err := e.cmd.Start(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "start ffmpeg")
	}
	return e, nil
}

// Write sends one PNG frame. A failed write stops ffmpeg; stderr is only
// read once the process has exited.
func (e *Encoder) Write(png []byte) error {
	if e.done {
		return errors.New(errors.ErrCodeRender, "ffmpeg has exited")
	}
	if _, err := e.stdin.Write(png); err != nil {
		_ = e.stdin.Close()
		_ = e.wait()
		return errors.Wrap(errors.ErrCodeRender, err, "ffmpeg: %s", e.stderr.String())
	}
	return nil
}

// Close finishes the video and waits for ffmpeg to exit.
func (e *Encoder) Close() error {
	if e.done {
		return nil
	}
	if err := e.stdin.Close(); err != nil {
		_ = e.wait()
		return errors.Wrap(errors.ErrCodeRender, err, "close ffmpeg stdin")
	}
	if err := e.wait(); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "ffmpeg: %s", e.stderr.String())
	}
	return nil
}

// Abort kills ffmpeg without finishing the video.
func (e *Encoder) Abort() error {
	if e.done {
		return nil
	}
	_ = e.cmd.Process.Kill()
	_ = e.stdin.Close()
	_ = e.wait()
	return nil
}

func (e *Encoder) wait() error {
	e.done = true
	return e.cmd.Wait()
}
