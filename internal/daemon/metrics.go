package daemon

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics uses its own registry so several daemons (and tests) can coexist in
// one process. All methods are safe on a nil receiver.
type Metrics struct {
	registry    *prometheus.Registry
	writes      prometheus.Counter
	deletes     prometheus.Counter
	failures    *prometheus.CounterVec
	snapshots   prometheus.Counter
	subscribers prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notepad",
			Name:      "note_writes_total",
			Help:      "Notes created or replaced.",
		}),
		deletes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notepad",
			Name:      "note_deletes_total",
			Help:      "Notes deleted.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notepad",
			Name:      "note_operation_failures_total",
			Help:      "Failed note operations by operation.",
		}, []string{"op"}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notepad",
			Name:      "snapshots_published_total",
			Help:      "Collection snapshots fanned out to subscribers.",
		}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "notepad",
			Name:      "live_subscribers",
			Help:      "Open live collection subscriptions.",
		}),
	}
	m.registry.MustRegister(m.writes, m.deletes, m.failures, m.snapshots, m.subscribers)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) NoteWritten() {
	if m != nil {
		m.writes.Inc()
	}
}

func (m *Metrics) NoteDeleted() {
	if m != nil {
		m.deletes.Inc()
	}
}

func (m *Metrics) OperationFailed(op string) {
	if m != nil {
		m.failures.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) SnapshotPublished() {
	if m != nil {
		m.snapshots.Inc()
	}
}

func (m *Metrics) SetSubscribers(count int) {
	if m != nil {
		m.subscribers.Set(float64(count))
	}
}
