// Package observability owns the Prometheus collectors shared across the service.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "registry",
		Name:      "signups_total",
		Help:      "Number of participants added to an activity roster.",
	}, []string{"activity"})

	unregisterCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "registry",
		Name:      "unregistrations_total",
		Help:      "Number of participants removed from an activity roster.",
	}, []string{"activity"})

	notFoundCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "registry",
		Name:      "not_found_total",
		Help:      "Rejected roster mutations, labeled by what was missing (activity or participant).",
	}, []string{"reason"})

	rosterGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "signup_service",
		Subsystem: "registry",
		Name:      "participants",
		Help:      "Current roster length per activity, duplicates included.",
	}, []string{"activity"})

	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, labeled by method, route pattern and status code.",
	}, []string{"method", "route", "code"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "signup_service",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving HTTP requests.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(signupCounter, unregisterCounter, notFoundCounter, rosterGauge, requestCounter, requestDuration)
}

// RecordSignup counts a signup and refreshes the roster gauge.
func RecordSignup(activity string, participants int) {
	signupCounter.WithLabelValues(activity).Inc()
	rosterGauge.WithLabelValues(activity).Set(float64(participants))
}

// RecordUnregister counts a removal and refreshes the roster gauge.
func RecordUnregister(activity string, participants int) {
	unregisterCounter.WithLabelValues(activity).Inc()
	rosterGauge.WithLabelValues(activity).Set(float64(participants))
}

// RecordRosterSize sets the roster gauge without touching the counters.
func RecordRosterSize(activity string, participants int) {
	rosterGauge.WithLabelValues(activity).Set(float64(participants))
}

// RecordNotFound counts a rejected mutation.
func RecordNotFound(reason string) {
	notFoundCounter.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest tracks a served request. Unmatched requests share the "unmatched" route label.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	requestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
