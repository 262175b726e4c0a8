// Package scorecard builds the per-metric scorecard rows and the named
// snapshots ("moments") saved from them.
package scorecard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spboyer/scorecard/internal/format"
	"github.com/spboyer/scorecard/internal/models"
)

// ErrEmptyMomentName is returned when saving a moment without a name.
var ErrEmptyMomentName = errors.New("moment name is required")

// Row is one metric line of a scorecard.
type Row struct {
	Metric           string          `json:"metric" yaml:"metric"`
	Category         models.Category `json:"category" yaml:"category"`
	Benchmark        *float64        `json:"benchmark" yaml:"benchmark"`
	HistoricalActual *float64        `json:"historical_actual" yaml:"historical_actual"`
	Actual           *float64        `json:"actual" yaml:"actual"`
}

// PercentDifference returns (Actual - Benchmark) / Benchmark, or nil when
// either side is missing or the benchmark is zero.
func (r Row) PercentDifference() *float64 {
	if r.Actual == nil || r.Benchmark == nil || *r.Benchmark == 0 {
		return nil
	}
	d := (*r.Actual - *r.Benchmark) / *r.Benchmark
	return &d
}

// FormatPercent renders the percent difference as "12.5%" or "N/A".
func (r Row) FormatPercent() string {
	return format.Ratio(r.PercentDifference())
}

// Build creates one row per metric in order. Benchmarks are prefilled from
// the summary's proposed benchmarks and historical actuals from its average
// actuals. A nil summary leaves both blank.
func Build(metrics []string, categories map[string]models.Category, summary *models.BenchmarkSummary) []Row {
	rows := make([]Row, 0, len(metrics))
	for _, m := range metrics {
		row := Row{Metric: m, Category: models.CategoryUncategorized}
		if c, ok := categories[m]; ok && c != "" {
			row.Category = c
		}
		if summary != nil {
			if v, ok := summary.ProposedBenchmarks[m]; ok {
				row.Benchmark = &v
			}
			if v, ok := summary.AverageActuals[m]; ok {
				row.HistoricalActual = &v
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Moment is a saved, named copy of scorecard rows.
type Moment struct {
	Name    string    `json:"name" yaml:"name"`
	SavedAt time.Time `json:"saved_at" yaml:"saved_at"`
	Rows    []Row     `json:"rows" yaml:"rows"`
}

// Moments is an ordered collection of moments with unique names.
type Moments []Moment

// Save stores rows under name. An existing moment with the same name is
// replaced in place; otherwise the moment is appended.
func (ms Moments) Save(name string, rows []Row, at time.Time) (Moments, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ms, ErrEmptyMomentName
	}
	m := Moment{Name: name, SavedAt: at, Rows: cloneRows(rows)}
	if i := ms.Index(name); i >= 0 {
		out := append(Moments(nil), ms...)
		out[i] = m
		return out, nil
	}
	return append(append(Moments(nil), ms...), m), nil
}

// Index returns the position of name, or -1.
func (ms Moments) Index(name string) int {
	for i, m := range ms {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the moment called name.
func (ms Moments) Get(name string) (Moment, bool) {
	if i := ms.Index(name); i >= 0 {
		return ms[i], true
	}
	return Moment{}, false
}

// Names lists moment names in save order.
func (ms Moments) Names() []string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}
	return names
}

// Select returns the named moments in the order given. Unknown names are an
// error.
func (ms Moments) Select(names []string) (Moments, error) {
	out := make(Moments, 0, len(names))
	for _, n := range names {
		m, ok := ms.Get(n)
		if !ok {
			return nil, fmt.Errorf("unknown moment %q", n)
		}
		out = append(out, m)
	}
	return out, nil
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{
			Metric:           r.Metric,
			Category:         r.Category,
			Benchmark:        clonePtr(r.Benchmark),
			HistoricalActual: clonePtr(r.HistoricalActual),
			Actual:           clonePtr(r.Actual),
		}
	}
	return out
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
