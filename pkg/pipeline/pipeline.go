// Package pipeline turns a scene name and render options into files.
//
// This package implements the lookup → construct → encode pipeline shared by
// the CLI and the preview server. By centralizing it, every entry point
// applies the same defaults, quality presets and frame cache.
//
// # Architecture
//
//  1. Lookup: find the script in the catalog and decode its parameters
//  2. Construct: run the script against a scene at the requested frame rate
//  3. Encode: fan every frame out to one sink per output format
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:   "gd-quadratic-bound",
//	    Formats: []string{"mp4", "json"},
//	    Quality: "high",
//	})
//	fmt.Println(result.Outputs["mp4"])
//
// [Runner.Record] keeps frames in memory instead, and [Runner.Bindings]
// returns the binding graph without encoding anything.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mathscene/pkg/cache"
	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/scenes"
	"github.com/matzehuels/mathscene/pkg/shape"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultQuality is the preset used when no size or rate is given.
	DefaultQuality = QualityMedium

	// DefaultOutputDir is where outputs go when no directory is given.
	DefaultOutputDir = "media"

	// DefaultBackground is the scene background colour.
	DefaultBackground = "#000000"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatMP4  = "mp4"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatMP4:  true,
}

// Quality preset names.
const (
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
)

// Preset is a frame size and rate.
type Preset struct {
	Width  int
	Height int
	FPS    float64
}

// Presets maps quality names to their frame size and rate.
var Presets = map[string]Preset{
	QualityLow:    {Width: 854, Height: 480, FPS: 15},
	QualityMedium: {Width: 1280, Height: 720, FPS: 30},
	QualityHigh:   {Width: 1920, Height: 1080, FPS: 60},
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render.
// This struct supports JSON serialization for server requests.
type Options struct {
	Scene   string   `json:"scene"`
	Formats []string `json:"formats,omitempty"`

	// Quality picks a preset; Width, Height and FPS override it.
	Quality    string  `json:"quality,omitempty"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	FPS        float64 `json:"fps,omitempty"`
	Background string  `json:"background,omitempty"`

	OutputDir string `json:"output_dir,omitempty"`
	// Frames writes every SVG and PNG frame to a numbered file. Otherwise
	// only the final frame is written.
	Frames bool `json:"frames,omitempty"`

	// Runtime options (not serialized)
	Params scenes.Decode `json:"-"`
	Logger *log.Logger   `json:"-"`
	// Progress sees every frame after the outputs do. It is not closed.
	Progress scene.Sink `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and server responses.
	RunID uuid.UUID

	Scene string

	// Outputs lists written files keyed by format.
	Outputs map[string][]string

	// Frames is the number of frames the scene emitted.
	Frames int

	// Duration is the scene time covered, not wall time.
	Duration time.Duration

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Steps      int
	Bindings   int
	RenderTime time.Duration
}

// CacheInfo counts frame cache lookups across all formats.
type CacheInfo struct {
	Hits   int
	Misses int
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, mp4)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateQuality checks that a quality preset exists.
func ValidateQuality(q string) error {
	if _, ok := Presets[q]; !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid quality: %q (must be one of: low, medium, high)", q)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateSceneName(o.Scene); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Quality == "" {
		o.Quality = DefaultQuality
	}
	if err := ValidateQuality(o.Quality); err != nil {
		return err
	}
	p := Presets[o.Quality]
	if o.Width == 0 {
		o.Width = p.Width
	}
	if o.Height == 0 {
		o.Height = p.Height
	}
	if o.FPS == 0 {
		o.FPS = p.FPS
	}
	if err := errors.ValidateDimensions(o.Width, o.Height, o.FPS); err != nil {
		return err
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if _, err := shape.ParseColor(o.Background); err != nil {
		return err
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if err := errors.ValidateOutputDir(o.OutputDir); err != nil {
		return err
	}
	if o.Params == nil {
		o.Params = scenes.Defaults
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SceneConfig returns the scene settings. Call after ValidateAndSetDefaults.
func (o *Options) SceneConfig() scene.Config {
	bg, err := shape.ParseColor(o.Background)
	if err != nil {
		bg = shape.Background
	}
	return scene.Config{Width: o.Width, Height: o.Height, FPS: o.FPS, Background: bg}
}

// FrameKeyOpts returns cache key options for one output format.
func (o *Options) FrameKeyOpts(format string) cache.FrameKeyOpts {
	return cache.FrameKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		Background: strings.ToLower(o.Background),
	}
}
