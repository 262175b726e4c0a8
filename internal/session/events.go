package session

import "time"

// EventType identifies the kind of journal event.
type EventType string

const (
	EventSessionStart        EventType = "session_start"
	EventMetricsConfirmed    EventType = "metrics_confirmed"
	EventStrategyCompleted   EventType = "strategy_completed"
	EventBenchmarksCompleted EventType = "benchmarks_completed"
	EventMomentSaved         EventType = "moment_saved"
	EventDeckExported        EventType = "deck_exported"
	EventSessionReset        EventType = "session_reset"
	EventError               EventType = "error"
)

// Event is a single timestamped entry in a session journal.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]any) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Type:      t,
		Data:      data,
	}
}

// SessionStartData returns event data for a wizard run starting at step.
func SessionStartData(statePath string, step Step) map[string]any {
	return map[string]any{
		"state_path": statePath,
		"step":       step.String(),
	}
}

// MetricsConfirmedData returns event data for a confirmed metric selection.
func MetricsConfirmedData(metrics []string, uncategorized int) map[string]any {
	return map[string]any{
		"metric_count":  len(metrics),
		"uncategorized": uncategorized,
	}
}

// StrategyCompletedData returns event data for a completed strategy step.
func StrategyCompletedData(objective, investment string, considerations int) map[string]any {
	return map[string]any{
		"objective":      objective,
		"investment":     investment,
		"considerations": considerations,
	}
}

// BenchmarksCompletedData returns event data for the benchmark step.
func BenchmarksCompletedData(calculated bool, proposed int) map[string]any {
	return map[string]any{
		"calculated": calculated,
		"proposed":   proposed,
	}
}

// MomentSavedData returns event data for a saved moment.
func MomentSavedData(name string, rows int) map[string]any {
	return map[string]any{
		"moment": name,
		"rows":   rows,
	}
}

// DeckExportedData returns event data for an exported deck bundle.
func DeckExportedData(bundleID string, moments int, destinations []string) map[string]any {
	return map[string]any{
		"bundle_id":    bundleID,
		"moments":      moments,
		"destinations": destinations,
	}
}

// ErrorData returns event data for an error.
func ErrorData(message string, details map[string]any) map[string]any {
	d := map[string]any{
		"message": message,
	}
	for k, v := range details {
		d[k] = v
	}
	return d
}
