// Package metrics holds the Prometheus collectors of the careers service.
//
// Collectors register with the default registry and are exposed by the
// web server on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	importTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "careers",
		Subsystem: "import",
		Name:      "transitions_total",
		Help:      "Import state machine transitions, by target state.",
	}, []string{"state"})

	importOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "careers",
		Subsystem: "import",
		Name:      "outcomes_total",
		Help:      "Finished import attempts, by outcome (confirmed, discarded or failure kind).",
	}, []string{"outcome"})

	jobsImported = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "careers",
		Subsystem: "import",
		Name:      "jobs_total",
		Help:      "Jobs inserted through CSV imports.",
	})

	previewTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "careers",
		Subsystem: "preview",
		Name:      "tokens_total",
		Help:      "Preview tokens issued and checked, by result.",
	}, []string{"result"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "careers",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern and status class.",
	}, []string{"route", "result"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "careers",
		Subsystem: "http",
		Name:      "latency_seconds",
		Help:      "HTTP request latency by route pattern and status class.",
		Buckets: []float64{
			0.005, 0.01, 0.025, 0.05,
			0.1, 0.25, 0.5,
			1, 2.5, 5, 10,
		},
	}, []string{"route", "result"})
)

// ImportState counts a transition into state.
func ImportState(state string) {
	importTransitions.WithLabelValues(state).Inc()
}

// ImportOutcome counts a finished import attempt.
func ImportOutcome(outcome string) {
	importOutcomes.WithLabelValues(outcome).Inc()
}

// JobsImported adds n inserted jobs.
func JobsImported(n int) {
	jobsImported.Add(float64(n))
}

// PreviewToken counts a token event: "issued", "accepted" or "rejected".
func PreviewToken(result string) {
	previewTokens.WithLabelValues(result).Inc()
}

// ObserveRequest records one HTTP request.
func ObserveRequest(route string, status int, elapsed time.Duration) {
	result := StatusClass(status)
	httpRequests.WithLabelValues(route, result).Inc()
	httpLatency.WithLabelValues(route, result).Observe(elapsed.Seconds())
}

// StatusClass buckets an HTTP status as 2xx, 3xx, 4xx or 5xx.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	}
	return "2xx"
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
