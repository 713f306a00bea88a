package pipeline

import (
	"testing"

	"github.com/matzehuels/mathscene/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"mp4", false},
		{"gif", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "mp4"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" svg, PNG ,,svg,json")
	want := []string{"svg", "png", "json"}
	if len(got) != len(want) {
		t.Fatalf("ParseFormats = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseFormats[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQualityPresets(t *testing.T) {
	tests := []struct {
		quality string
		width   int
		height  int
		fps     float64
	}{
		{"low", 854, 480, 15},
		{"medium", 1280, 720, 30},
		{"high", 1920, 1080, 60},
	}
	for _, tt := range tests {
		opts := Options{Scene: "latex-test", Quality: tt.quality}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("%s: %v", tt.quality, err)
		}
		if opts.Width != tt.width || opts.Height != tt.height || opts.FPS != tt.fps {
			t.Errorf("%s = %dx%d@%v, want %dx%d@%v", tt.quality, opts.Width, opts.Height, opts.FPS, tt.width, tt.height, tt.fps)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Scene: "latex-test"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.Quality != DefaultQuality {
		t.Errorf("Quality = %s, want %s", opts.Quality, DefaultQuality)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %s, want %s", opts.OutputDir, DefaultOutputDir)
	}
	if opts.Params == nil || opts.Logger == nil {
		t.Error("Params and Logger should be set")
	}
	cfg := opts.SceneConfig()
	if cfg.Width != 1280 || cfg.FPS != 30 || cfg.Background.Hex() != "#000000" {
		t.Errorf("SceneConfig = %+v", cfg)
	}
}

func TestOptionsOverridePreset(t *testing.T) {
	opts := Options{Scene: "latex-test", Quality: "high", FPS: 24}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Width != 1920 || opts.FPS != 24 {
		t.Errorf("got %dx%d@%v", opts.Width, opts.Height, opts.FPS)
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing scene", Options{}, errors.ErrCodeInvalidInput},
		{"bad scene name", Options{Scene: "Bad Name"}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Scene: "latex-test", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad quality", Options{Scene: "latex-test", Quality: "ultra"}, errors.ErrCodeInvalidConfig},
		{"odd width", Options{Scene: "latex-test", Width: 853}, errors.ErrCodeInvalidConfig},
		{"bad background", Options{Scene: "latex-test", Background: "blue"}, errors.ErrCodeInvalidConfig},
		{"escaping dir", Options{Scene: "latex-test", OutputDir: "../out"}, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Scene: "latex-test", Quality: "low"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	opts.Width = 0
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Width != 0 {
		t.Error("second call should not reapply defaults")
	}
}

func TestFrameKeyOpts(t *testing.T) {
	opts := Options{Scene: "latex-test", Background: "#FFFFFF"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	k := opts.FrameKeyOpts("png")
	if k.Format != "png" || k.Width != 1280 || k.Background != "#ffffff" {
		t.Errorf("FrameKeyOpts = %+v", k)
	}
}
