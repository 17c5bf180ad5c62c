// ABOUTME: Prometheus metrics for script reruns and uploads
// ABOUTME: Each Metrics owns its registry so hosts and tests do not collide

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "widgetdash"

// Metrics records rerun activity.
type Metrics struct {
	registry *prometheus.Registry

	reruns      *prometheus.CounterVec
	rerunErrors *prometheus.CounterVec
	rerunTime   *prometheus.HistogramVec
	uploads     prometheus.Counter
	sessions    prometheus.Counter
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		reruns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reruns_total",
			Help:      "Script reruns by script name.",
		}, []string{"script"}),
		rerunErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rerun_errors_total",
			Help:      "Script reruns that ended in an error.",
		}, []string{"script"}),
		rerunTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rerun_duration_seconds",
			Help:      "Time spent executing a script rerun.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"script"}),
		uploads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Files received through upload widgets.",
		}),
		sessions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Browser sessions created.",
		}),
	}
}

// ObserveRerun records one rerun of script.
func (m *Metrics) ObserveRerun(script string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.reruns.WithLabelValues(script).Inc()
	m.rerunTime.WithLabelValues(script).Observe(d.Seconds())
	if err != nil {
		m.rerunErrors.WithLabelValues(script).Inc()
	}
}

// UploadReceived counts an upload.
func (m *Metrics) UploadReceived() {
	if m == nil {
		return
	}
	m.uploads.Inc()
}

// SessionCreated counts a new session.
func (m *Metrics) SessionCreated() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
