package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes.
const (
	outcomeMatched  = "matched"
	outcomeFallback = "fallback"
	outcomeEmpty    = "empty"
)

var (
	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basket_recommendations_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"},
	)

	recommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "basket_recommendation_duration_seconds",
			Help:    "Duration of recommendation queries in seconds, including rule table fetch",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 20},
		},
	)
)

func outcomeOf(resp *Response) string {
	switch {
	case len(resp.Recommendations) == 0:
		return outcomeEmpty
	case resp.Fallback:
		return outcomeFallback
	default:
		return outcomeMatched
	}
}
