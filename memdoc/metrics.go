package memdoc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	ops     *prometheus.CounterVec
	commits prometheus.Counter
	events  *prometheus.CounterVec
}

// newMetrics creates the document metrics.  With a nil registerer the
// metrics are kept but not exported.
func newMetrics(reg prometheus.Registerer, guid string) *metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"doc": guid}
	return &metrics{
		ops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "ydoc",
			Subsystem:   "memdoc",
			Name:        "ops_total",
			Help:        "Primitive document operations applied, by operation.",
			ConstLabels: labels,
		}, []string{"op"}),
		commits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "ydoc",
			Subsystem:   "memdoc",
			Name:        "commits_total",
			Help:        "Transactions committed.",
			ConstLabels: labels,
		}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "ydoc",
			Subsystem:   "memdoc",
			Name:        "events_total",
			Help:        "Change events produced at commit, by container kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
	}
}
