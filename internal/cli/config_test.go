package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/pipeline"
	"github.com/matzehuels/mathscene/pkg/scenes/gradient"
)

const testConfig = `
[render]
quality = "high"
formats = ["mp4", "json"]
fps = 24

[cache]
backend = "redis"
redis.addr = "localhost:6379"
redis.prefix = "ci:"

[serve]
addr = ":9090"

[scenes.gd-quadratic-bound]
l = 8
x0 = 3.0
`

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig(testConfig)
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.Render.Quality != "high" {
		t.Errorf("Render.Quality = %q, want %q", cfg.Render.Quality, "high")
	}
	if len(cfg.Render.Formats) != 2 || cfg.Render.Formats[1] != "json" {
		t.Errorf("Render.Formats = %v, want [mp4 json]", cfg.Render.Formats)
	}
	if cfg.Render.FPS != 24 {
		t.Errorf("Render.FPS = %v, want 24", cfg.Render.FPS)
	}
	if cfg.Cache.Backend != cacheBackendRedis || cfg.Cache.Redis.Addr != "localhost:6379" {
		t.Errorf("Cache = %+v, want redis at localhost:6379", cfg.Cache)
	}
	if cfg.Cache.Redis.Prefix != "ci:" {
		t.Errorf("Cache.Redis.Prefix = %q, want %q", cfg.Cache.Redis.Prefix, "ci:")
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, ":9090")
	}
	if _, ok := cfg.Scenes[gradient.Name]; !ok {
		t.Errorf("Scenes missing %s", gradient.Name)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "[render\nquality = 1"},
		{"unknown section", "[output]\ndir = \"x\""},
		{"unknown key", "[render]\nqualty = \"high\""},
		{"wrong type", "[render]\nwidth = \"wide\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.doc)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("parseConfig() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestConfigParams(t *testing.T) {
	cfg, err := parseConfig(testConfig)
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}

	p := gradient.DefaultParams()
	if err := cfg.Params(gradient.Name)(&p); err != nil {
		t.Fatalf("Params decode: %v", err)
	}
	if p.L != 8 || p.X0 != 3 {
		t.Errorf("params L, X0 = %v, %v, want 8, 3", p.L, p.X0)
	}
	if want := gradient.DefaultParams().A; p.A != want {
		t.Errorf("params A = %v, want default %v", p.A, want)
	}

	other := gradient.DefaultParams()
	if err := cfg.Params("latex-test")(&other); err != nil {
		t.Fatalf("Params for unconfigured scene: %v", err)
	}
	if other != gradient.DefaultParams() {
		t.Errorf("unconfigured scene params = %+v, want defaults", other)
	}
}

func TestConfigParamsUnknownKey(t *testing.T) {
	cfg, err := parseConfig("[scenes.gd-quadratic-bound]\nlipschitz = 8\n")
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	p := gradient.DefaultParams()
	if err := cfg.Params(gradient.Name)(&p); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Params decode error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestRenderConfigApply(t *testing.T) {
	rc := RenderConfig{
		Formats:    []string{"json"},
		Quality:    "high",
		Width:      640,
		FPS:        12,
		Background: "#101010",
		OutputDir:  "out",
		Frames:     true,
	}

	opts := pipeline.Options{Quality: "low", Width: 320}
	rc.apply(&opts)

	if opts.Quality != "low" {
		t.Errorf("Quality = %q, want flag value %q", opts.Quality, "low")
	}
	if opts.Width != 320 {
		t.Errorf("Width = %d, want flag value 320", opts.Width)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "json" {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.FPS != 12 || opts.Background != "#101010" || opts.OutputDir != "out" {
		t.Errorf("opts = %+v, want config fps, background and output dir", opts)
	}
	if !opts.Frames {
		t.Error("Frames = false, want true from config")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte(testConfig), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}

	if _, err := loadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("loadConfig(missing) error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestLoadConfigNone(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
}

func TestConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := configDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}
