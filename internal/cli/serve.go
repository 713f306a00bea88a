package cli

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mathscene/pkg/cache"
	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/live"
	"github.com/matzehuels/mathscene/pkg/observability"
	"github.com/matzehuels/mathscene/pkg/pipeline"
	"github.com/matzehuels/mathscene/pkg/render"
	"github.com/matzehuels/mathscene/pkg/render/bindgraph"
	"github.com/matzehuels/mathscene/pkg/render/sink"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/scenes/catalog"
)

const defaultServeAddr = "localhost:8080"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scene frames, timelines and metrics over HTTP",
		Long: `Start a preview server.

  GET /api/scenes                           scene catalog
  GET /api/scenes/{name}/timeline           JSON timeline of every animated value
  GET /api/scenes/{name}/frames/{index}     one frame as SVG (index or "last")
  GET /api/scenes/{name}/graph              binding graph as SVG
  GET /metrics                              Prometheus metrics

Every scene endpoint accepts ?quality=low|medium|high (default low).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			if addr == "" {
				addr = defaultServeAddr
			}
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			hooks := observability.NewPromHooks(reg)
			observability.SetRenderHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			srv := newServer(runner, c.Config, c.Logger)
			return srv.listen(ctx, addr, srv.routes(reg))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+defaultServeAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frame cache")
	return cmd
}

// =============================================================================
// server - Preview HTTP server
// =============================================================================

type server struct {
	runner *pipeline.Runner
	config *Config
	logger *log.Logger

	mu         sync.Mutex
	recordings map[string]*recording
}

// recording is a scene played once in memory. Scenes are deterministic for
// fixed parameters, so recordings are kept for the server's lifetime.
type recording struct {
	frames   []scene.Frame
	cfg      scene.Config
	bindings []live.Source
}

func newServer(runner *pipeline.Runner, cfg *Config, logger *log.Logger) *server {
	return &server{
		runner:     runner,
		config:     cfg,
		logger:     logger,
		recordings: make(map[string]*recording),
	}
}

func (s *server) routes(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Route("/api/scenes", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{name}/timeline", s.handleTimeline)
		r.Get("/{name}/frames/{index}", s.handleFrame)
		r.Get("/{name}/graph", s.handleGraph)
	})
	return r
}

func (s *server) listen(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "listen on %s", addr)
	}
	hs := &http.Server{Handler: h, ReadHeaderTimeout: 10 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()

	printSuccess("Serving on %s", StyleHighlight.Render("http://"+ln.Addr().String()))
	printDetail("Press Ctrl+C to stop")
	if err := hs.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	<-done
	s.logger.Info("server stopped")
	return nil
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument tags each request with an ID and reports it to the HTTP hooks
// under its route pattern, so metrics do not grow with frame indices.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, rec.status, elapsed)
		s.logger.Debug("request", "id", id, "method", r.Method, "route", route, "status", rec.status, "elapsed", elapsed)
	})
}

// =============================================================================
// Handlers
// =============================================================================

type sceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Timeline    string `json:"timeline"`
	Graph       string `json:"graph"`
}

func (s *server) handleList(w http.ResponseWriter, _ *http.Request) {
	out := make([]sceneInfo, 0, len(catalog.All))
	for _, d := range catalog.All {
		base := "/api/scenes/" + d.Name
		out = append(out, sceneInfo{
			Name:        d.Name,
			Description: d.Description,
			Timeline:    base + "/timeline",
			Graph:       base + "/graph",
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r.Context(), chi.URLParam(r, "name"), r.URL.Query().Get("quality"))
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := sink.RenderJSON(rec.frames, sink.WithJSONConfig(rec.cfg))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *server) handleFrame(w http.ResponseWriter, r *http.Request) {
	quality := r.URL.Query().Get("quality")
	rec, err := s.record(r.Context(), chi.URLParam(r, "name"), quality)
	if err != nil {
		writeError(w, err)
		return
	}
	idx := len(rec.frames) - 1
	if p := chi.URLParam(r, "index"); p != "last" {
		idx, err = strconv.Atoi(p)
		if err != nil || idx < 0 || idx >= len(rec.frames) {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "frame index %q out of range [0, %d]", p, len(rec.frames)-1))
			return
		}
	}

	enc := sink.SVGEncoder(
		sink.WithViewport(render.NewViewport(rec.cfg.Width, rec.cfg.Height)),
		sink.WithBackground(rec.cfg.Background),
	)
	enc = sink.Cached(enc, s.runner.Cache, s.runner.Keyer, cache.FrameKeyOpts{
		Width:      rec.cfg.Width,
		Height:     rec.cfg.Height,
		Background: rec.cfg.Background.Hex(),
	})
	data, err := enc.Encode(r.Context(), rec.frames[idx])
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(data)
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r.Context(), chi.URLParam(r, "name"), r.URL.Query().Get("quality"))
	if err != nil {
		writeError(w, err)
		return
	}
	dot := bindgraph.ToDOT(rec.bindings, bindgraph.Options{})
	if r.URL.Query().Get("format") == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.Write([]byte(dot))
		return
	}
	data, err := bindgraph.RenderSVG(r.Context(), dot)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(data)
}

// record plays the scene once per quality and keeps the frames.
func (s *server) record(ctx context.Context, name, quality string) (*recording, error) {
	if quality == "" {
		quality = pipeline.QualityLow
	}
	key := name + "@" + quality

	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.recordings[key]; ok {
		return rec, nil
	}

	opts := pipeline.Options{
		Scene:   name,
		Quality: quality,
		Params:  s.config.Params(name),
		Logger:  s.logger,
	}
	frames, sc, err := s.runner.Record(ctx, opts)
	if err != nil {
		return nil, err
	}
	rec := &recording{frames: frames, cfg: sc.Config(), bindings: sc.Bindings()}
	s.recordings[key] = rec
	s.logger.Info("recorded scene", "scene", name, "quality", quality, "frames", len(frames))
	return rec, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeSceneNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": errors.UserMessage(err), "code": string(code)})
}
