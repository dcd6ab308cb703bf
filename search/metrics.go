package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchTotal counts searches by algorithm and outcome.
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathmap_search_total",
		Help: "Total path searches by mode and result",
	}, []string{"mode", "result"}) // result: "found", "no_path", "flood", "error"

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pathmap_search_duration_seconds",
		Help:    "Path search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	}, []string{"mode"})

	searchSettled = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathmap_search_settled_tiles",
		Help:    "Number of tiles settled per search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})

	edgesBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathmap_search_edge_lists_total",
		Help: "Tile edge lists requested by searches",
	})
)

func observe(r *Result) {
	outcome := "flood"
	if r.End != NoTarget {
		outcome = "no_path"
		if r.Found {
			outcome = "found"
		}
	}
	mode := r.Mode.String()
	searchTotal.WithLabelValues(mode, outcome).Inc()
	searchDuration.WithLabelValues(mode).Observe(r.Duration.Seconds())
	searchSettled.Observe(float64(r.Settled))
	edgesBuilt.Add(float64(r.EdgesBuilt))
}
