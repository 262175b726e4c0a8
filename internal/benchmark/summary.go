package benchmark

import (
	"github.com/spboyer/scorecard/internal/format"
	"github.com/spboyer/scorecard/internal/models"
)

// SummaryRow is the display form of one result. Undefined values read "N/A".
type SummaryRow struct {
	Metric            string `json:"metric"`
	ThreeMonthAverage string `json:"three_month_average"`
	AverageUplift     string `json:"average_uplift"`
	ProposedBenchmark string `json:"proposed_benchmark"`
	ValidEvents       int    `json:"valid_events"`
}

// SummaryRows formats the summary table in result order.
func SummaryRows(s *models.BenchmarkSummary) []SummaryRow {
	if s == nil {
		return nil
	}
	rows := make([]SummaryRow, 0, len(s.Results))
	for _, r := range s.Results {
		avg := r.ThreeMonthAverage
		uplift := format.NotAvailable
		if r.AverageUpliftRatio != nil {
			uplift = format.Optional(r.AverageUpliftRatio, 2) + "x"
		}
		rows = append(rows, SummaryRow{
			Metric:            r.MetricName,
			ThreeMonthAverage: format.Optional(&avg, 2),
			AverageUplift:     uplift,
			ProposedBenchmark: format.Optional(r.ProposedBenchmark, 2),
			ValidEvents:       r.ValidEvents,
		})
	}
	return rows
}
