// Package metrics collects and exposes Prometheus metrics for the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts the engine's domain events.
type Collector struct {
	progressEvents   *prometheus.CounterVec
	coachingMessages *prometheus.CounterVec
	versionConflicts prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		progressEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goalcoach_progress_events_total",
			Help: "Accepted progress events by log type",
		}, []string{"log_type"}),
		coachingMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goalcoach_coaching_messages_total",
			Help: "Coaching messages served by category",
		}, []string{"category"}),
		versionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goalcoach_version_conflicts_total",
			Help: "Progress recordings surfaced as version conflicts after retries",
		}),
	}

	reg.MustRegister(
		c.progressEvents,
		c.coachingMessages,
		c.versionConflicts,
	)

	return c
}

// RecordProgressEvent counts one accepted progress event.
func (c *Collector) RecordProgressEvent(logType string) {
	c.progressEvents.WithLabelValues(logType).Inc()
}

// RecordCoachingMessage counts one served coaching message.
func (c *Collector) RecordCoachingMessage(category string) {
	c.coachingMessages.WithLabelValues(category).Inc()
}

// RecordVersionConflict counts one recording lost to contention.
func (c *Collector) RecordVersionConflict() {
	c.versionConflicts.Inc()
}
