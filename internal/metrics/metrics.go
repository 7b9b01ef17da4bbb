// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SearchesTotal  *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	CacheHits      prometheus.Counter
}

// New registers the service metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flightsearch_searches_total",
			Help: "Flight searches by provider and outcome.",
		}, []string{"provider", "outcome"}),
		SearchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flightsearch_search_duration_seconds",
			Help:    "End-to-end search latency by provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "flightsearch_cache_hits_total",
			Help: "Searches served from the result cache.",
		}),
	}
}
