package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/pipeline"
	"github.com/matzehuels/mathscene/pkg/scenes"
)

const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
)

// Config is the contents of mathscene.toml.
//
//	[render]
//	quality = "high"
//	formats = ["mp4", "json"]
//	output_dir = "media"
//
//	[cache]
//	backend = "redis"
//	redis.addr = "localhost:6379"
//
//	[scenes.gd-quadratic-bound]
//	l = 8
//	x0 = 3.0
type Config struct {
	Render RenderConfig              `toml:"render"`
	Cache  CacheConfig               `toml:"cache"`
	Serve  ServeConfig               `toml:"serve"`
	Scenes map[string]toml.Primitive `toml:"scenes"`

	md   toml.MetaData
	path string
}

// RenderConfig holds defaults for the render command.
type RenderConfig struct {
	Formats    []string `toml:"formats"`
	Quality    string   `toml:"quality"`
	Width      int      `toml:"width"`
	Height     int      `toml:"height"`
	FPS        float64  `toml:"fps"`
	Background string   `toml:"background"`
	OutputDir  string   `toml:"output_dir"`
	Frames     bool     `toml:"frames"`
}

// CacheConfig selects the frame cache backend.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// loadConfig reads the config file. An explicit path must exist; otherwise
// the first of ./mathscene.toml and the user config file that exists is
// used, and no file at all yields an empty config.
func loadConfig(explicit string) (*Config, error) {
	path := explicit
	if path == "" {
		path = findConfig()
	}
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	cfg, err := parseConfig(string(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	cfg.path = path
	return cfg, nil
}

func findConfig() string {
	candidates := []string{configName}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// parseConfig decodes a config document. Unknown keys outside the scene
// tables are rejected; scene tables are checked when a scene decodes them.
func parseConfig(doc string) (*Config, error) {
	cfg := &Config{}
	md, err := toml.Decode(doc, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse")
	}
	var unknown []string
	for _, key := range md.Undecoded() {
		if len(key) > 0 && key[0] == "scenes" {
			continue
		}
		unknown = append(unknown, key.String())
	}
	if len(unknown) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(unknown, ", "))
	}
	cfg.md = md
	return cfg, nil
}

// Path returns the file the config was read from, if any.
func (c *Config) Path() string { return c.path }

// Params returns the parameter decoder for a scene's table.
func (c *Config) Params(scene string) scenes.Decode {
	prim, ok := c.Scenes[scene]
	if !ok {
		return scenes.Defaults
	}
	return scenes.FromTOML(c.md, prim, "scenes", scene)
}

// apply fills render options the flags left empty.
func (r RenderConfig) apply(opts *pipeline.Options) {
	if len(opts.Formats) == 0 {
		opts.Formats = r.Formats
	}
	if opts.Quality == "" {
		opts.Quality = r.Quality
	}
	if opts.Width == 0 {
		opts.Width = r.Width
	}
	if opts.Height == 0 {
		opts.Height = r.Height
	}
	if opts.FPS == 0 {
		opts.FPS = r.FPS
	}
	if opts.Background == "" {
		opts.Background = r.Background
	}
	if opts.OutputDir == "" {
		opts.OutputDir = r.OutputDir
	}
	opts.Frames = opts.Frames || r.Frames
}
