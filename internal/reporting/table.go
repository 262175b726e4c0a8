package reporting

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/spboyer/scorecard/internal/benchmark"
	"github.com/spboyer/scorecard/internal/format"
	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/internal/scorecard"
)

// WriteBenchmarkTable prints the benchmark summary, one row per metric.
func WriteBenchmarkTable(w io.Writer, s *models.BenchmarkSummary) error {
	rows := [][]string{}
	for _, r := range benchmark.SummaryRows(s) {
		rows = append(rows, []string{r.Metric, r.ThreeMonthAverage, r.AverageUplift, r.ProposedBenchmark, strconv.Itoa(r.ValidEvents)})
	}
	return writeTable(w, []string{"Metric", "3-Month Avg", "Avg Uplift", "Proposed Benchmark", "Events"}, rows)
}

// WriteStrategyTable prints the calculated outputs, the prioritized metrics
// and any strategic considerations.
func WriteStrategyTable(w io.Writer, p *models.StrategyProfile) error {
	if p == nil {
		_, err := fmt.Fprintln(w, "No strategy profile.")
		return err
	}

	var figures [][]string
	for _, lv := range p.CalculatedOutputs {
		figures = append(figures, []string{lv.Label, lv.Value})
	}
	if err := writeTable(w, []string{"Figure", "Value"}, figures); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	var metrics [][]string
	for _, pm := range p.PrioritizedMetrics {
		metrics = append(metrics, []string{pm.Metric, string(pm.Category), string(pm.Priority)})
	}
	if err := writeTable(w, []string{"Metric", "Category", "Priority"}, metrics); err != nil {
		return err
	}

	if len(p.StrategicConsiderations) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nStrategic considerations:"); err != nil {
		return err
	}
	for _, c := range p.StrategicConsiderations {
		icon := "ℹ"
		if c.Kind == models.ConsiderationWarning {
			icon = "⚠"
		}
		if _, err := fmt.Fprintf(w, "  %s %s: %s\n", icon, c.Kind, c.Text); err != nil {
			return err
		}
	}
	return nil
}

// WriteScorecardTable prints scorecard rows with their percent difference.
func WriteScorecardTable(w io.Writer, rows []scorecard.Row) error {
	var out [][]string
	for _, r := range rows {
		out = append(out, []string{
			r.Metric,
			string(r.Category),
			format.Optional(r.Benchmark, 2),
			format.Optional(r.HistoricalActual, 2),
			format.Optional(r.Actual, 2),
			r.FormatPercent(),
			InterpretDifference(r.PercentDifference()),
		})
	}
	return writeTable(w, []string{"Metric", "Category", "Benchmark", "Historical Actual", "Actual", "% Difference", "Status"}, out)
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	rules := make([]string, len(headers))
	for i, wd := range widths {
		rules[i] = strings.Repeat("─", wd)
	}

	lines := append([][]string{headers, rules}, rows...)
	for _, row := range lines {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = padRight(cell, widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "  ")); err != nil {
			return err
		}
	}
	return nil
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
