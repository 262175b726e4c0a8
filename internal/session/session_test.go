package session

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewEvent(t *testing.T) {
	data := map[string]any{"key": "value"}
	ev := NewEvent(EventSessionStart, data)

	if ev.Type != EventSessionStart {
		t.Errorf("Type = %q, want %q", ev.Type, EventSessionStart)
	}
	if ev.Data["key"] != "value" {
		t.Errorf("Data[key] = %v, want %q", ev.Data["key"], "value")
	}
	if ev.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
}

func TestEventJSON(t *testing.T) {
	ts := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	ev := Event{
		Timestamp: ts,
		Type:      EventMomentSaved,
		Data:      MomentSavedData("Launch Week", 3),
	}

	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Event
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Type != EventMomentSaved {
		t.Errorf("decoded.Type = %q, want %q", decoded.Type, EventMomentSaved)
	}
	if !decoded.Timestamp.Equal(ts) {
		t.Errorf("decoded.Timestamp = %v, want %v", decoded.Timestamp, ts)
	}
	if decoded.Data["moment"] != "Launch Week" {
		t.Errorf("moment = %v, want %q", decoded.Data["moment"], "Launch Week")
	}
}

func TestSessionStartData(t *testing.T) {
	d := SessionStartData(".scorecard/session.yaml", StepBenchmarks)
	if d["state_path"] != ".scorecard/session.yaml" {
		t.Errorf("state_path = %v", d["state_path"])
	}
	if d["step"] != "benchmarks" {
		t.Errorf("step = %v", d["step"])
	}
}

func TestErrorData(t *testing.T) {
	d := ErrorData("categorizer failed", map[string]any{"step": "metrics"})
	if d["message"] != "categorizer failed" {
		t.Errorf("message = %v", d["message"])
	}
	if d["step"] != "metrics" {
		t.Errorf("step = %v", d["step"])
	}
}

func TestJSONLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.jsonl")

	logger, err := NewJSONLogger(path)
	if err != nil {
		t.Fatalf("NewJSONLogger: %v", err)
	}

	events := []Event{
		NewEvent(EventSessionStart, SessionStartData("s.yaml", StepMetrics)),
		NewEvent(EventMetricsConfirmed, MetricsConfirmedData([]string{"DAU", "Sessions"}, 0)),
		NewEvent(EventStrategyCompleted, StrategyCompletedData("Conversion / Action", "Low (<$50k)", 1)),
		NewEvent(EventBenchmarksCompleted, BenchmarksCompletedData(true, 2)),
	}

	for _, ev := range events {
		if err := logger.Log(ev); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	var first Event
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatalf("Unmarshal line 0: %v", err)
	}
	if first.Type != EventSessionStart {
		t.Errorf("first event type = %q, want %q", first.Type, EventSessionStart)
	}
}

func TestJSONLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "journal.jsonl")

	for i := 0; i < 2; i++ {
		logger, err := NewJSONLogger(path)
		if err != nil {
			t.Fatalf("NewJSONLogger with subdirectory: %v", err)
		}
		if logger.Path() != path {
			t.Errorf("Path() = %q, want %q", logger.Path(), path)
		}
		logger.Log(NewEvent(EventSessionStart, nil)) //nolint:errcheck
		logger.Close()                               //nolint:errcheck
	}

	events, err := ReadEvents(path)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}

func TestNopLogger(t *testing.T) {
	var logger Logger = NopLogger{}
	if err := logger.Log(NewEvent(EventSessionStart, nil)); err != nil {
		t.Errorf("NopLogger.Log should not error: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("NopLogger.Close should not error: %v", err)
	}
}

func TestReadEventsMissingFile(t *testing.T) {
	events, err := ReadEvents(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestReadEventsSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")

	content := `{"timestamp":"2026-01-15T10:00:00Z","type":"session_start","data":{}}
not valid json
{"timestamp":"2026-01-15T10:00:01Z","type":"moment_saved","data":{}}
`
	os.WriteFile(path, []byte(content), 0644) //nolint:errcheck

	events, err := ReadEvents(path)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (malformed line skipped)", len(events))
	}
}

func TestRenderTimeline(t *testing.T) {
	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, Type: EventSessionStart, Data: SessionStartData("s.yaml", StepMetrics)},
		{Timestamp: base.Add(100 * time.Millisecond), Type: EventMetricsConfirmed, Data: MetricsConfirmedData([]string{"DAU"}, 1)},
		{Timestamp: base.Add(2 * time.Second), Type: EventStrategyCompleted, Data: StrategyCompletedData("Brand Awareness / Reach", "Medium ($50k - $250k)", 0)},
		{Timestamp: base.Add(3 * time.Second), Type: EventBenchmarksCompleted, Data: BenchmarksCompletedData(false, 0)},
		{Timestamp: base.Add(4 * time.Second), Type: EventMomentSaved, Data: MomentSavedData("Pre-Reveal", 1)},
		{Timestamp: base.Add(5 * time.Second), Type: EventError, Data: ErrorData("something broke", nil)},
		{Timestamp: base.Add(2 * time.Hour), Type: EventDeckExported, Data: DeckExportedData("abc-123", 1, []string{"file"})},
	}

	var buf bytes.Buffer
	RenderTimeline(&buf, events)

	output := buf.String()
	for _, want := range []string{
		"SESSION TIMELINE",
		"Wizard started at metrics",
		"uncategorized=1",
		"Brand Awareness / Reach",
		"Benchmarks skipped",
		"Moment saved: Pre-Reveal",
		"something broke",
		"abc-123",
		"2.0h",
	} {
		if !bytes.Contains([]byte(output), []byte(want)) {
			t.Errorf("output should contain %q\n%s", want, output)
		}
	}
}

func TestRenderTimelineEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderTimeline(&buf, nil)
	if !bytes.Contains(buf.Bytes(), []byte("No events found.")) {
		t.Error("empty events should print 'No events found.'")
	}
}
