package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/spboyer/scorecard/internal/models"
)

// historyRow is one line of a history CSV: metric, event_name, baseline,
// actual and an optional three_month_average.
type historyRow struct {
	Metric            string   `mapstructure:"metric"`
	EventName         string   `mapstructure:"event_name"`
	Baseline          *float64 `mapstructure:"baseline"`
	Actual            *float64 `mapstructure:"actual"`
	ThreeMonthAverage *float64 `mapstructure:"three_month_average"`
}

var historyNumeric = []string{"baseline", "actual", "three_month_average"}

var influencerNumeric = []string{"follower_count", "engagement_rate", "average_views", "cost_per_video"}

// HistoryFromRows groups history rows by metric in first-seen order. A
// metric's three-month average is the last non-blank value in its rows.
// Blank cells stay nil; they are never read as zero.
func HistoryFromRows(rows []Row) ([]models.MetricBenchmarkInput, error) {
	var out []models.MetricBenchmarkInput
	index := map[string]int{}

	for i, row := range rows {
		var hr historyRow
		if err := decodeRow(row, historyNumeric, &hr); err != nil {
			return nil, fmt.Errorf("history row %d: %w", i+1, err)
		}
		name := strings.TrimSpace(hr.Metric)
		if name == "" {
			return nil, fmt.Errorf("history row %d: metric is required", i+1)
		}

		pos, ok := index[name]
		if !ok {
			pos = len(out)
			index[name] = pos
			out = append(out, models.MetricBenchmarkInput{MetricName: name})
		}
		if hr.ThreeMonthAverage != nil {
			out[pos].ThreeMonthAverage = *hr.ThreeMonthAverage
		}
		if hr.EventName == "" && hr.Baseline == nil && hr.Actual == nil {
			continue
		}
		out[pos].History = append(out[pos].History, models.MetricHistoryRecord{
			EventName: hr.EventName,
			Baseline:  hr.Baseline,
			Actual:    hr.Actual,
		})
	}
	return out, nil
}

// LoadHistoryCSV reads a history CSV file.
func LoadHistoryCSV(path string) ([]models.MetricBenchmarkInput, error) {
	rows, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return HistoryFromRows(rows)
}

// InfluencersFromRows decodes roster rows.
func InfluencersFromRows(rows []Row) ([]models.InfluencerProfile, error) {
	out := make([]models.InfluencerProfile, 0, len(rows))
	for i, row := range rows {
		var p models.InfluencerProfile
		if err := decodeRow(row, influencerNumeric, &p); err != nil {
			return nil, fmt.Errorf("influencer row %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// LoadInfluencersCSV reads an influencer roster CSV file.
func LoadInfluencersCSV(path string) ([]models.InfluencerProfile, error) {
	rows, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return InfluencersFromRows(rows)
}

// MergeHistory appends extra history onto base. Metrics only in extra are
// added at the end; a non-zero average in extra replaces the base average.
func MergeHistory(base, extra []models.MetricBenchmarkInput) []models.MetricBenchmarkInput {
	out := make([]models.MetricBenchmarkInput, len(base))
	index := make(map[string]int, len(base))
	for i, m := range base {
		out[i] = m
		out[i].History = append([]models.MetricHistoryRecord(nil), m.History...)
		index[m.MetricName] = i
	}
	for _, m := range extra {
		pos, ok := index[m.MetricName]
		if !ok {
			index[m.MetricName] = len(out)
			m.History = append([]models.MetricHistoryRecord(nil), m.History...)
			out = append(out, m)
			continue
		}
		if m.ThreeMonthAverage != 0 {
			out[pos].ThreeMonthAverage = m.ThreeMonthAverage
		}
		out[pos].History = append(out[pos].History, m.History...)
	}
	return out
}

// decodeRow drops blank cells so they decode as absent, strips thousands
// separators from numeric columns and weakly decodes the rest into out.
// NaN and infinities are rejected.
func decodeRow(row Row, numeric []string, out any) error {
	input := make(map[string]any, len(row))
	for k, v := range row {
		if v == "" {
			continue
		}
		input[k] = v
	}
	for _, k := range numeric {
		if v, ok := input[k].(string); ok {
			v = strings.ReplaceAll(strings.TrimSuffix(strings.TrimPrefix(v, "$"), "%"), ",", "")
			if f, err := strconv.ParseFloat(v, 64); err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
				return fmt.Errorf("%s: %q is not a finite number", k, v)
			}
			input[k] = v
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
