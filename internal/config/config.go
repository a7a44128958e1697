// Package config centralises configuration parsing for the signup service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration values for the signup service.
type Config struct {
	HTTPAddress       string
	CORSOrigin        string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	KafkaBrokers      []string // Empty disables roster events.
	RosterTopic       string
	EventBuffer       int
	PublishTimeout    time.Duration
	ConsumerGroupID   string
	MetricsAddress    string // Consumer-only Prometheus listener.
}

// Load reads environment variables into Config, applying sensible defaults for local dev.
func Load() Config {
	cfg := Config{
		HTTPAddress:       getEnv("HTTP_ADDRESS", ":8080"),
		CORSOrigin:        getEnv("CORS_ORIGIN", "http://localhost:5173"),
		ReadHeaderTimeout: getDurationEnv("HTTP_READ_HEADER_TIMEOUT", 2*time.Second),
		ReadTimeout:       getDurationEnv("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:      getDurationEnv("HTTP_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:       getDurationEnv("HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
		RosterTopic:       getEnv("ROSTER_TOPIC", "roster_events"),
		EventBuffer:       getIntEnv("EVENT_BUFFER", 1024),
		PublishTimeout:    getDurationEnv("PUBLISH_TIMEOUT", 5*time.Second),
		ConsumerGroupID:   getEnv("CONSUMER_GROUP_ID", "roster-audit"),
		MetricsAddress:    getEnv("METRICS_ADDRESS", ":9091"),
	}

	cfg.KafkaBrokers = splitAndTrim(getEnv("KAFKA_BROKERS", ""))
	return cfg
}

// EventsEnabled reports whether roster events should be published to Kafka.
func (c Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
