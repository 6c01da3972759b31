package metrics

import "github.com/prometheus/client_golang/prometheus"

// PersistenceMetrics counts local storage writes, reads and the failures that get swallowed.
type PersistenceMetrics struct {
	writes   *prometheus.CounterVec
	failures *prometheus.CounterVec
	discards *prometheus.CounterVec
}

// NewPersistenceMetrics registers the persistence metrics on the provided registerer.
func NewPersistenceMetrics(reg prometheus.Registerer) *PersistenceMetrics {
	if reg == nil {
		return &PersistenceMetrics{}
	}
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "persistence_writes_total",
		Help: "Successful local storage writes by key.",
	}, []string{"key"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "persistence_failures_total",
		Help: "Local storage failures by key and operation.",
	}, []string{"key", "op"})
	discards := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "persistence_corrupt_loads_total",
		Help: "Persisted values discarded because they could not be decoded.",
	}, []string{"key"})
	reg.MustRegister(writes, failures, discards)
	return &PersistenceMetrics{
		writes:   writes,
		failures: failures,
		discards: discards,
	}
}

// IncWrite counts a successful write for key.
func (p *PersistenceMetrics) IncWrite(key string) {
	if p == nil || p.writes == nil {
		return
	}
	p.writes.WithLabelValues(normalizeLabel(key)).Inc()
}

// IncFailure counts a swallowed failure for key during op (save, load, remove).
func (p *PersistenceMetrics) IncFailure(key, op string) {
	if p == nil || p.failures == nil {
		return
	}
	p.failures.WithLabelValues(normalizeLabel(key), normalizeLabel(op)).Inc()
}

// IncCorrupt counts a persisted value that was replaced by its default on load.
func (p *PersistenceMetrics) IncCorrupt(key string) {
	if p == nil || p.discards == nil {
		return
	}
	p.discards.WithLabelValues(normalizeLabel(key)).Inc()
}
