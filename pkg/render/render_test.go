package render

import (
	"context"
	"math"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/geom"
)

func TestViewport(t *testing.T) {
	v := NewViewport(1280, 720)
	if v.Scale != 90 {
		t.Fatalf("Scale = %v, want 90", v.Scale)
	}
	tests := []struct {
		p      geom.Vec2
		wx, wy float64
	}{
		{geom.Origin, 640, 360},
		{geom.V(0, 4), 640, 0},
		{geom.V(-geom.FrameWidth/2, -4), 0, 720},
		{geom.V(1, 1), 730, 270},
	}
	for _, tt := range tests {
		x, y := v.Point(tt.p)
		if math.Abs(x-tt.wx) > 1e-9 || math.Abs(y-tt.wy) > 1e-9 {
			t.Errorf("Point(%v) = (%v, %v), want (%v, %v)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
	vis := v.Visible()
	if math.Abs(vis.Width()-geom.FrameWidth) > 1e-9 || vis.Height() != geom.FrameHeight {
		t.Errorf("Visible() = %vx%v", vis.Width(), vis.Height())
	}
}

func TestConvertMissingTools(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if _, err := ToPDF([]byte("<svg/>")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
	out := filepath.Join(t.TempDir(), "out.mp4")
	if _, err := EncodeVideo(context.Background(), out, 30); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("EncodeVideo() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}

func TestEncoderWriteAfterExit(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	e, err := startEncoder(exec.Command("sh", "-c", "echo broken pipeline >&2; exit 1"))
	if err != nil {
		t.Fatalf("startEncoder: %v", err)
	}

	frame := make([]byte, 1<<20)
	for i := 0; i < 16 && err == nil; i++ {
		err = e.Write(frame)
	}
	if !errors.Is(err, errors.ErrCodeRender) {
		t.Fatalf("Write() error = %v, want %s", err, errors.ErrCodeRender)
	}
	if !strings.Contains(err.Error(), "broken pipeline") {
		t.Errorf("Write() error = %q, want process stderr", err)
	}
	if err := e.Write(frame); !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("Write() after exit = %v, want %s", err, errors.ErrCodeRender)
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close() after failed write = %v, want nil", err)
	}
}

func TestEncoderAbort(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	e, err := startEncoder(exec.Command("sh", "-c", "cat >/dev/null"))
	if err != nil {
		t.Fatalf("startEncoder: %v", err)
	}
	if err := e.Write([]byte("frame")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := e.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}
	if e.cmd.ProcessState == nil {
		t.Error("Abort returned before the process exited")
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close() after Abort = %v, want nil", err)
	}
}
