package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mathscene/pkg/cache"
	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/live"
	"github.com/matzehuels/mathscene/pkg/observability"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/scenes/catalog"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute constructs the scene and writes every requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:   uuid.New(),
		Scene:   opts.Scene,
		Outputs: make(map[string][]string),
	}
	logger := opts.Logger.With("run", result.RunID.String()[:8])

	counting := &countingCache{Cache: r.Cache}
	outs, err := r.buildOutputs(ctx, opts, counting)
	if err != nil {
		return nil, err
	}
	steps := &stepSink{scene: opts.Scene, ctx: ctx}
	sinks := scene.MultiSink{steps}
	for _, format := range opts.Formats {
		sinks = append(sinks, outs[format])
	}
	if opts.Progress != nil {
		sinks = append(sinks, progressSink{opts.Progress})
	}

	start := time.Now()
	observability.Render().OnSceneStart(ctx, opts.Scene, opts.Formats)
	sc, err := r.construct(ctx, opts, opts.SceneConfig(), sinks, logger)
	if err == nil {
		err = closeAll(outs)
	} else {
		abortAll(outs)
	}
	_ = steps.Close()
	frames := 0
	if sc != nil {
		frames = sc.FrameCount()
	}
	observability.Render().OnSceneComplete(ctx, opts.Scene, frames, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	for _, format := range opts.Formats {
		result.Outputs[format] = outs[format].files()
	}
	result.Frames = sc.FrameCount()
	result.Duration = sc.Time()
	result.Stats = Stats{Steps: sc.Steps(), Bindings: len(sc.Bindings()), RenderTime: time.Since(start)}
	result.CacheInfo = CacheInfo{Hits: int(counting.hits.Load()), Misses: int(counting.misses.Load())}

	logger.Info("rendered scene",
		"scene", opts.Scene,
		"frames", result.Frames,
		"duration", result.Duration,
		"formats", opts.Formats,
		"cache_hits", result.CacheInfo.Hits,
		"elapsed", result.Stats.RenderTime)
	return result, nil
}

// Record constructs the scene and keeps every frame in memory.
func (r *Runner) Record(ctx context.Context, opts Options) ([]scene.Frame, *scene.Scene, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	rec := &scene.Recorder{}
	sc, err := r.construct(ctx, opts, opts.SceneConfig(), rec, opts.Logger)
	if err != nil {
		return nil, nil, err
	}
	return rec.Frames, sc, nil
}

// Bindings constructs the scene at one frame per second without writing
// anything and returns every source it staged.
func (r *Runner) Bindings(ctx context.Context, opts Options) ([]live.Source, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	cfg := opts.SceneConfig()
	cfg.FPS = 1
	sc, err := r.construct(ctx, opts, cfg, scene.Discard, opts.Logger)
	if err != nil {
		return nil, err
	}
	return slices.Clone(sc.Bindings()), nil
}

// construct looks the script up, builds it from its parameters and runs it.
// The returned scene is non-nil whenever construction started.
func (r *Runner) construct(ctx context.Context, opts Options, cfg scene.Config, sink scene.Sink, logger *log.Logger) (*scene.Scene, error) {
	def, err := catalog.Lookup(opts.Scene)
	if err != nil {
		return nil, err
	}
	script, err := def.New(opts.Params)
	if err != nil {
		return nil, err
	}

	sc := scene.New(def.Name, cfg, sink, logger)
	logger.Debug("constructing scene", "scene", def.Name, "size", []int{cfg.Width, cfg.Height}, "fps", cfg.FPS)
	if err := script.Construct(ctx, sc); err != nil {
		if ctx.Err() != nil {
			return sc, ctx.Err()
		}
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		return sc, errors.Wrap(code, err, "construct %s", def.Name)
	}
	return sc, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
