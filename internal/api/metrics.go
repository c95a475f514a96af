package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scoresComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "havenmatch_scores_computed_total",
		Help: "Number of single profile-candidate scores computed via the API.",
	})

	rankingsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "havenmatch_rankings_served_total",
		Help: "Number of ranked match requests served.",
	})

	rankingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "havenmatch_ranking_duration_seconds",
		Help:    "Wall time spent ranking a candidate pool for one profile.",
		Buckets: prometheus.DefBuckets,
	})
)
