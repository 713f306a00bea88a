package latex

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/scenes"
	"github.com/matzehuels/mathscene/pkg/shape"
)

func TestConstruct(t *testing.T) {
	script, err := Definition.New(scenes.Defaults)
	if err != nil {
		t.Fatal(err)
	}
	rec := &scene.Recorder{}
	cfg := scene.DefaultConfig()
	if err := script.Construct(context.Background(), scene.New(Name, cfg, rec, nil)); err != nil {
		t.Fatal(err)
	}
	if len(rec.Frames) != 60 {
		t.Errorf("%d frames, want 60", len(rec.Frames))
	}

	first := rec.Frames[0].Items[0]
	last, _ := rec.Last()
	full := last.Items[0]
	if full.Kind != shape.KindText || !strings.HasPrefix(full.Text, "∫") {
		t.Errorf("last frame text = %q", full.Text)
	}
	if len([]rune(first.Text)) >= len([]rune(full.Text)) {
		t.Errorf("Write did not reveal progressively: %q", first.Text)
	}
}

func TestCheck(t *testing.T) {
	for _, c := range Definition.Check(context.Background(), scenes.Defaults) {
		if !c.OK() {
			t.Errorf("%s: %v", c.Property, c.Err)
		}
	}
}
