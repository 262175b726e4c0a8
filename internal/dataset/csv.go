// Package dataset loads tabular campaign inputs (event history, influencer
// rosters) from CSV files.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row represents a single CSV row with column name to value mapping.
type Row map[string]string

// LoadCSV reads a CSV file and returns rows as maps of column to value.
// The first row is treated as headers (column names).
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("csv: %s: %w", path, err)
	}
	return rows, nil
}

// ReadCSV parses CSV from r. Header names are normalized with NormalizeHeader
// so "Baseline (7-day)" and "baseline" address the same column.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty input (no header row)")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = NormalizeHeader(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = strings.TrimSpace(record[j])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

var headerAliases = map[string]string{
	"metric_name": "metric",
	"event":       "event_name",
	"past_event":  "event_name",
	"3_month_avg": "three_month_average",
	"followers":   "follower_count",
	"engagement":  "engagement_rate",
	"avg_views":   "average_views",
	"views":       "average_views",
	"cost_video":  "cost_per_video",
	"cost":        "cost_per_video",
	"name_handle": "name",
	"handle":      "name",
}

// NormalizeHeader lower-cases a column name, drops parenthesised and percent
// suffixes, joins words with underscores and resolves known aliases.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if i := strings.Index(h, "("); i >= 0 {
		h = h[:i]
	}
	h = strings.NewReplacer("%", " ", "/", " ", "-", " ", ".", " ").Replace(h)
	h = strings.Join(strings.Fields(h), "_")
	if alias, ok := headerAliases[h]; ok {
		return alias
	}
	return h
}
