package session

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// ReadEvents parses all events from a journal file. A missing journal has
// no events. Malformed lines are skipped.
func ReadEvents(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	return events, nil
}

// RenderTimeline writes a human-readable journal timeline to w.
//
//nolint:errcheck // display-only writes; errors are not actionable
func RenderTimeline(w io.Writer, events []Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}

	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w, " SESSION TIMELINE")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	start := events[0].Timestamp
	for _, ev := range events {
		ts := formatDuration(ev.Timestamp.Sub(start))

		switch ev.Type {
		case EventSessionStart:
			step, _ := ev.Data["step"].(string) //nolint:errcheck
			fmt.Fprintf(w, "[%s] 🚀 Wizard started at %s\n", ts, step)

		case EventMetricsConfirmed:
			n := jsonNumber(ev.Data["metric_count"])
			u := jsonNumber(ev.Data["uncategorized"])
			fmt.Fprintf(w, "[%s] ✓  Metrics confirmed  count=%d  uncategorized=%d\n", ts, n, u)

		case EventStrategyCompleted:
			obj, _ := ev.Data["objective"].(string)  //nolint:errcheck
			inv, _ := ev.Data["investment"].(string) //nolint:errcheck
			c := jsonNumber(ev.Data["considerations"])
			fmt.Fprintf(w, "[%s] ✓  Strategy  %s  %s  considerations=%d\n", ts, obj, inv, c)

		case EventBenchmarksCompleted:
			calc, _ := ev.Data["calculated"].(bool) //nolint:errcheck
			if calc {
				fmt.Fprintf(w, "[%s] ✓  Benchmarks calculated  proposed=%d\n", ts, jsonNumber(ev.Data["proposed"]))
			} else {
				fmt.Fprintf(w, "[%s] ✓  Benchmarks skipped\n", ts)
			}

		case EventMomentSaved:
			name, _ := ev.Data["moment"].(string) //nolint:errcheck
			fmt.Fprintf(w, "[%s] 💾 Moment saved: %s (%d rows)\n", ts, name, jsonNumber(ev.Data["rows"]))

		case EventDeckExported:
			id, _ := ev.Data["bundle_id"].(string) //nolint:errcheck
			fmt.Fprintf(w, "[%s] 📦 Deck exported %s  moments=%d\n", ts, id, jsonNumber(ev.Data["moments"]))

		case EventSessionReset:
			fmt.Fprintf(w, "[%s] ↺  Session reset\n", ts)

		case EventError:
			msg, _ := ev.Data["message"].(string) //nolint:errcheck
			fmt.Fprintf(w, "[%s] ❌ Error: %s\n", ts, msg)

		default:
			fmt.Fprintf(w, "[%s] %s %v\n", ts, ev.Type, ev.Data)
		}
	}
	fmt.Fprintln(w)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%6dms", d.Milliseconds())
	case d < time.Hour:
		return fmt.Sprintf("%6.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%6.1fh", d.Hours())
	}
}

// jsonNumber extracts a number from a JSON-decoded value.
func jsonNumber(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		i, _ := n.Int64() //nolint:errcheck
		return int(i)
	}
	return 0
}
