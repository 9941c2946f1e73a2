package http

import (
	"context"
	"net/http"

	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects compile and share counters on a private registry,
// so several handlers (and tests) never collide on the global one.
type Metrics struct {
	Registry *prometheus.Registry

	compiles  *prometheus.CounterVec
	duration  prometheus.Histogram
	rules     prometheus.Histogram
	shareHits *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		compiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cssmachine_compiles_total",
				Help: "Total number of compilations by result",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cssmachine_compile_duration_seconds",
				Help:    "Duration of successful compilations",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
		),
		rules: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cssmachine_compile_rules",
				Help:    "Number of rules generated per compilation",
				Buckets: prometheus.ExponentialBuckets(8, 4, 7),
			},
		),
		shareHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cssmachine_share_requests_total",
				Help: "Share requests by whether the document was already stored",
			},
			[]string{"cache"},
		),
	}
	m.Registry.MustRegister(m.compiles, m.duration, m.rules, m.shareHits)
	return m
}

// Hooks returns lifecycle hooks feeding the compile collectors.
// Pass them to the compiler the handler serves.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
			m.compiles.WithLabelValues(string(e.Type)).Inc()
			if e.Type == domain.EventCompiled {
				m.duration.Observe(e.Duration.Seconds())
				m.rules.Observe(float64(e.Rules))
			}
		},
	}
}

func (m *Metrics) shared(hit bool) {
	label := "miss"
	if hit {
		label = "hit"
	}
	m.shareHits.WithLabelValues(label).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
