// Package benchmark turns historical baseline/actual pairs and a rolling
// three-month average into a proposed benchmark per metric.
package benchmark

import (
	"math"

	"github.com/spboyer/scorecard/internal/metrics"
	"github.com/spboyer/scorecard/internal/models"
)

// Calculate computes a BenchmarkResult for every input metric. Results keep
// the input order; metrics never influence each other.
func Calculate(inputs []models.MetricBenchmarkInput) *models.BenchmarkSummary {
	summary := &models.BenchmarkSummary{
		Results:            make([]models.BenchmarkResult, 0, len(inputs)),
		ProposedBenchmarks: make(map[string]float64, len(inputs)),
		AverageActuals:     make(map[string]float64, len(inputs)),
	}

	for _, in := range inputs {
		res := CalculateMetric(in)
		summary.Results = append(summary.Results, res)
		if res.ProposedBenchmark != nil {
			summary.ProposedBenchmarks[res.MetricName] = *res.ProposedBenchmark
		}
		if res.AverageActual != nil {
			summary.AverageActuals[res.MetricName] = *res.AverageActual
		}
	}
	return summary
}

// CalculateMetric computes the benchmark for a single metric.
func CalculateMetric(in models.MetricBenchmarkInput) models.BenchmarkResult {
	var uplifts, actuals []float64
	for _, row := range in.History {
		baseline, actual, ok := validPair(row)
		if !ok {
			continue
		}
		uplifts = append(uplifts, actual/baseline)
		actuals = append(actuals, actual)
	}

	avg := in.ThreeMonthAverage
	if !finite(avg) || avg < 0 {
		avg = 0
	}

	res := models.BenchmarkResult{
		MetricName:         in.MetricName,
		ThreeMonthAverage:  avg,
		AverageUpliftRatio: metrics.MeanOf(uplifts),
		UpliftStdDev:       metrics.StdDevOf(uplifts),
		AverageActual:      metrics.MeanOf(actuals),
		ValidEvents:        len(uplifts),
	}
	res.ProposedBenchmark = propose(avg, res.AverageUpliftRatio)
	return res
}

// validPair reports whether a history row can contribute an uplift ratio.
// Missing, negative or non-finite values are absent, and baseline must be
// positive.
func validPair(row models.MetricHistoryRecord) (baseline, actual float64, ok bool) {
	if row.Baseline == nil || row.Actual == nil {
		return 0, 0, false
	}
	baseline, actual = *row.Baseline, *row.Actual
	if !finite(baseline) || !finite(actual) || baseline <= 0 || actual < 0 {
		return 0, 0, false
	}
	return baseline, actual, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// propose applies the uplift to the rolling average. With no uplift data the
// average is carried forward; with no usable average there is no benchmark.
func propose(threeMonthAverage float64, uplift *float64) *float64 {
	if threeMonthAverage <= 0 {
		return nil
	}
	v := threeMonthAverage
	if uplift != nil {
		v = threeMonthAverage * *uplift
	}
	return &v
}
