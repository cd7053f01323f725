package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the search path.
// A nil *Metrics records nothing.
type Metrics struct {
	cacheHits    prometheus.Counter
	refreshes    *prometheus.CounterVec
	topics       prometheus.Gauge
	invalidation prometheus.Counter
	searches     *prometheus.CounterVec
	memoHits     prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// Passing nil leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kawnhub",
			Subsystem: "corpus",
			Name:      "cache_hits_total",
			Help:      "Corpus reads served from a fresh snapshot.",
		}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kawnhub",
			Subsystem: "corpus",
			Name:      "refreshes_total",
			Help:      "Corpus fetches by outcome.",
		}, []string{"outcome"}),
		topics: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kawnhub",
			Subsystem: "corpus",
			Name:      "topics",
			Help:      "Topics in the current snapshot.",
		}),
		invalidation: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kawnhub",
			Subsystem: "corpus",
			Name:      "invalidations_total",
			Help:      "Explicit corpus invalidations.",
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kawnhub",
			Subsystem: "search",
			Name:      "queries_total",
			Help:      "Search queries by result class.",
		}, []string{"result"}),
		memoHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kawnhub",
			Subsystem: "search",
			Name:      "memo_hits_total",
			Help:      "Search queries answered from the result memo.",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{
			m.cacheHits, m.refreshes, m.topics, m.invalidation, m.searches, m.memoHits,
		} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) cacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

func (m *Metrics) refreshed(ok bool, topics int) {
	if m == nil {
		return
	}
	if !ok {
		m.refreshes.WithLabelValues("error").Inc()
		return
	}
	m.refreshes.WithLabelValues("ok").Inc()
	m.topics.Set(float64(topics))
}

func (m *Metrics) invalidated() {
	if m != nil {
		m.invalidation.Inc()
	}
}

func (m *Metrics) searched(results int, short bool) {
	if m == nil {
		return
	}
	switch {
	case short:
		m.searches.WithLabelValues("short").Inc()
	case results == 0:
		m.searches.WithLabelValues("empty").Inc()
	default:
		m.searches.WithLabelValues("hit").Inc()
	}
}

func (m *Metrics) memoHit() {
	if m != nil {
		m.memoHits.Inc()
	}
}
