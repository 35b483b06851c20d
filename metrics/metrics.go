// Package metrics provides Prometheus metrics for the interactions API:
// HTTP request counters, latency histograms and in-flight gauges, plus
// domain metrics for analysis outcomes and formulary size.
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safety_analyses_total",
			Help: "Completed medication analyses by overall risk level",
		},
		[]string{"risk_level"},
	)

	InteractionsFoundTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "safety_interactions_found_total",
			Help: "Interactions reported across all analyses",
		},
	)

	FormularyDrugs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "formulary_drugs",
			Help: "Drug records in the loaded formulary",
		},
	)

	FormularyInteractions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "formulary_interactions",
			Help: "Interaction records in the loaded formulary",
		},
	)

	DatasetDriftDetected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "formulary_dataset_drift",
			Help: "1 when the dataset file changed on disk after load (restart required)",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(AnalysesTotal)
	prometheus.MustRegister(InteractionsFoundTotal)
	prometheus.MustRegister(FormularyDrugs)
	prometheus.MustRegister(FormularyInteractions)
	prometheus.MustRegister(DatasetDriftDetected)
}
