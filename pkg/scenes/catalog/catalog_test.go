package catalog

import (
	"testing"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/scenes"
)

func TestNamesAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range Names() {
		if err := errors.ValidateSceneName(name); err != nil {
			t.Errorf("%q: %v", name, err)
		}
		if seen[name] {
			t.Errorf("duplicate scene %q", name)
		}
		seen[name] = true
	}
	if len(seen) != 3 {
		t.Errorf("got %d scenes, want 3", len(seen))
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"gd-quadratic-bound", "matrix-vector", "latex-test"} {
		def, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		script, err := def.New(scenes.Defaults)
		if err != nil {
			t.Fatalf("%s: New: %v", name, err)
		}
		if script.Name() != name {
			t.Errorf("script name = %q, want %q", script.Name(), name)
		}
	}
	if _, err := Lookup("nope"); !errors.Is(err, errors.ErrCodeSceneNotFound) {
		t.Errorf("err = %v, want SCENE_NOT_FOUND", err)
	}
}
