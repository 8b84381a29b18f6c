package audit

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/psaab/vyconf/pkg/configtree"
)

// Metrics implements prometheus.Collector, counting mutations by
// operation.
type Metrics struct {
	mu     sync.Mutex
	counts map[string]uint64

	mutationsTotal *prometheus.Desc
}

// NewMetrics creates a Metrics collector. Callers register it with a
// prometheus.Registerer.
func NewMetrics() *Metrics {
	return &Metrics{
		counts: make(map[string]uint64),
		mutationsTotal: prometheus.NewDesc(
			"config_mutations_total",
			"Total configuration tree mutations by operation.",
			[]string{"op"}, nil,
		),
	}
}

// Hook returns the mutation hook feeding this collector.
func (m *Metrics) Hook() configtree.MutationFunc {
	return func(op string, path []string, args ...string) {
		m.mu.Lock()
		m.counts[op]++
		m.mu.Unlock()
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.mutationsTotal
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for op, count := range m.counts {
		ch <- prometheus.MustNewConstMetric(m.mutationsTotal, prometheus.CounterValue,
			float64(count), op)
	}
}
