// internal/app/system/metrics/metrics.go
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Matching flow counters. "degraded" distinguishes runs where the
	// advice service contributed nothing from fully served runs.
	MatchRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "match_runs_total", Help: "Matching orchestrator runs"},
		[]string{"degraded"},
	)
	MatchPrefSaveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "match_pref_save_failures_total", Help: "Swallowed seeking-tag persistence failures"},
	)
	AdviceDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "advice_degraded_total", Help: "Advice service calls that degraded to no suggestions"},
	)
	AccountOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "account_ops_total", Help: "Account lifecycle operations"},
		[]string{"op", "outcome"},
	)
)

// MustRegister registers all collectors with the default registry.
// Call once during startup.
func MustRegister() {
	prometheus.MustRegister(
		RequestsTotal, ReqDuration,
		MatchRunsTotal, MatchPrefSaveFailures, AdviceDegradedTotal,
		AccountOpsTotal,
	)
}
