package fonts

import "testing"

func TestFace(t *testing.T) {
	face, err := Face(24)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	defer face.Close()
	if h := face.Metrics().Height.Ceil(); h < 24 {
		t.Errorf("line height %d for a 24px face", h)
	}
	if _, ok := face.GlyphAdvance('x'); !ok {
		t.Error("no glyph for 'x'")
	}
}
