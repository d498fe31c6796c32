package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricegrid",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	suggestions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricegrid",
			Name:      "suggestions_total",
			Help:      "Count of slot suggestions by outcome.",
		},
		[]string{"outcome"},
	)

	estimates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pricegrid",
			Name:      "estimates_total",
			Help:      "Count of cost estimates produced.",
		},
	)

	conflictChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricegrid",
			Name:      "conflict_checks_total",
			Help:      "Count of conflict checks by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, suggestions, estimates, conflictChecks)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncSuggestion(outcome string) {
	suggestions.WithLabelValues(outcome).Inc()
}

func IncEstimate() {
	estimates.Inc()
}

func IncConflictCheck(result string) {
	conflictChecks.WithLabelValues(result).Inc()
}
