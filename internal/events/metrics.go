package events

import "github.com/prometheus/client_golang/prometheus"

var (
	publishedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Number of roster events written to Kafka.",
	}, []string{"event_type"})

	publishFailedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "publish_failed_total",
		Help:      "Number of roster events that could not be written to Kafka.",
	}, []string{"event_type"})

	droppedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "dropped_total",
		Help:      "Number of roster events discarded because the dispatch queue was full.",
	}, []string{"event_type"})
)

func init() {
	prometheus.MustRegister(publishedCounter, publishFailedCounter, droppedCounter)
}
