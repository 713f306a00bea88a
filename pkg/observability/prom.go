package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromHooks exports every hook event as a Prometheus metric.
type PromHooks struct {
	scenes       *prometheus.CounterVec
	sceneSeconds *prometheus.HistogramVec
	frames       *prometheus.CounterVec
	frameBytes   *prometheus.CounterVec
	frameSeconds *prometheus.HistogramVec
	steps        *prometheus.CounterVec
	cache        *prometheus.CounterVec
	requests     *prometheus.CounterVec
	reqSeconds   *prometheus.HistogramVec
}

// NewPromHooks creates the metrics and registers them with reg.
func NewPromHooks(reg prometheus.Registerer) *PromHooks {
	h := &PromHooks{
		scenes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mathscene_scenes_total",
			Help: "Scenes rendered, by outcome",
		}, []string{"scene", "status"}),
		sceneSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mathscene_scene_duration_seconds",
			Help:    "Wall time spent rendering a scene",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"scene"}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mathscene_frames_total",
			Help: "Frames written, by format",
		}, []string{"scene", "format"}),
		frameBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mathscene_frame_bytes_total",
			Help: "Bytes of frame output written",
		}, []string{"format"}),
		frameSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mathscene_frame_duration_seconds",
			Help:    "Time spent drawing and writing one frame",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"format"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mathscene_steps_total",
			Help: "Play and wait steps completed",
		}, []string{"scene"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mathscene_cache_operations_total",
			Help: "Frame cache operations, by result",
		}, []string{"key_type", "result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mathscene_http_requests_total",
			Help: "Preview server requests",
		}, []string{"method", "route", "code"}),
		reqSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "mathscene_http_request_duration_seconds",
			Help: "Preview server latency",
		}, []string{"route"}),
	}
	reg.MustRegister(h.scenes, h.sceneSeconds, h.frames, h.frameBytes, h.frameSeconds,
		h.steps, h.cache, h.requests, h.reqSeconds)
	return h
}

func (h *PromHooks) OnSceneStart(context.Context, string, []string) {}

func (h *PromHooks) OnSceneComplete(_ context.Context, scene string, _ int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	h.scenes.WithLabelValues(scene, status).Inc()
	h.sceneSeconds.WithLabelValues(scene).Observe(d.Seconds())
}

func (h *PromHooks) OnStepComplete(_ context.Context, scene string, _, _ int) {
	h.steps.WithLabelValues(scene).Inc()
}

func (h *PromHooks) OnFrameWritten(_ context.Context, scene, format string, size int, d time.Duration) {
	h.frames.WithLabelValues(scene, format).Inc()
	h.frameBytes.WithLabelValues(format).Add(float64(size))
	h.frameSeconds.WithLabelValues(format).Observe(d.Seconds())
}

func (h *PromHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cache.WithLabelValues(keyType, "hit").Inc()
}

func (h *PromHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cache.WithLabelValues(keyType, "miss").Inc()
}

func (h *PromHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.cache.WithLabelValues(keyType, "set").Inc()
}

func (h *PromHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.reqSeconds.WithLabelValues(route).Observe(d.Seconds())
}

var (
	_ RenderHooks = (*PromHooks)(nil)
	_ CacheHooks  = (*PromHooks)(nil)
	_ HTTPHooks   = (*PromHooks)(nil)
)
