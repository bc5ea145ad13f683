package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chromepdf"

// PrometheusHooks records render, cache and upstream HTTP events as
// Prometheus metrics. One value implements all three hook interfaces.
type PrometheusHooks struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderBytes    *prometheus.HistogramVec
	inflight       *prometheus.GaugeVec

	cacheLookups *prometheus.CounterVec
	cacheWrites  *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.SummaryVec
	httpErrors   *prometheus.CounterVec
}

// NewPrometheusHooks creates the collectors and registers them on reg.
// Registering twice on the same registerer panics, as with promauto.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		renders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Total number of PDF renders by target mode and outcome",
		}, []string{"mode", "outcome"}),
		renderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "PDF render duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"mode"}),
		renderBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_size_bytes",
			Help:      "Size of rendered PDF documents",
			Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 7),
		}, []string{"mode"}),
		inflight: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "renders_inflight",
			Help:      "Renders currently waiting on the PDF service",
		}, []string{"mode"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by backend and result",
		}, []string{"backend", "result"}),
		cacheWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_writes_total",
			Help:      "Cache writes by backend",
		}, []string{"backend"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the PDF service by status code",
		}, []string{"method", "host", "status_code"}),
		httpDuration: f.NewSummaryVec(prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.99: 0.001,
			},
		}, []string{"method", "host"}),
		httpErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Upstream requests that failed without a response",
		}, []string{"method", "host"}),
	}
}

func (p *PrometheusHooks) OnRenderStart(_ context.Context, mode string) {
	p.inflight.WithLabelValues(mode).Inc()
}

func (p *PrometheusHooks) OnRenderComplete(_ context.Context, mode string, size int, d time.Duration, err error) {
	p.inflight.WithLabelValues(mode).Dec()
	if err != nil {
		p.renders.WithLabelValues(mode, "error").Inc()
		return
	}
	p.renders.WithLabelValues(mode, "ok").Inc()
	p.renderDuration.WithLabelValues(mode).Observe(d.Seconds())
	p.renderBytes.WithLabelValues(mode).Observe(float64(size))
}

func (p *PrometheusHooks) OnCacheHit(_ context.Context, backend string) {
	p.cacheLookups.WithLabelValues(backend, "hit").Inc()
}

func (p *PrometheusHooks) OnCacheMiss(_ context.Context, backend string) {
	p.cacheLookups.WithLabelValues(backend, "miss").Inc()
}

func (p *PrometheusHooks) OnCacheSet(_ context.Context, backend string, _ int) {
	p.cacheWrites.WithLabelValues(backend).Inc()
}

// OnRequest is a no-op; requests are counted when their response arrives.
func (p *PrometheusHooks) OnRequest(context.Context, string, string, string) {}

func (p *PrometheusHooks) OnResponse(_ context.Context, method, host, _ string, status int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, host, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, host).Observe(d.Seconds())
}

func (p *PrometheusHooks) OnError(_ context.Context, method, host, _ string, _ error) {
	p.httpErrors.WithLabelValues(method, host).Inc()
}

var (
	_ RenderHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
	_ HTTPHooks   = (*PrometheusHooks)(nil)
)
