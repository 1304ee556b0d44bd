package observability

import (
	"fmt"
	"time"
)

// Metrics holds assistant usage aggregates derived from the event log.
type Metrics struct {
	QueriesReceived  int            `json:"queries_received"`
	QueriesAnswered  int            `json:"queries_answered"`
	QueriesFailed    int            `json:"queries_failed"`
	QueriesByIntent  map[string]int `json:"queries_by_intent"`
	AvgLatencyMillis float64        `json:"avg_latency_ms"`
	EventCount       int            `json:"event_count"`
	OldestEvent      *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent      *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator over the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{QueriesByIntent: make(map[string]int)}
	m.EventCount = len(events)

	var latencySum float64
	var latencyCount int
	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case EventQueryReceived:
			m.QueriesReceived++
		case EventQueryAnswered:
			m.QueriesAnswered++
			if intent, ok := event.Data["intent"].(string); ok {
				m.QueriesByIntent[intent]++
			}
			// JSON numbers decode as float64.
			if ms, ok := event.Data["elapsed_ms"].(float64); ok {
				latencySum += ms
				latencyCount++
			}
		case EventQueryFailed:
			m.QueriesFailed++
		}
	}
	if latencyCount > 0 {
		m.AvgLatencyMillis = latencySum / float64(latencyCount)
	}

	return m, nil
}
