package models

// MetricHistoryRecord is one past event for a metric. Baseline and Actual are
// nil when the value was not entered.
type MetricHistoryRecord struct {
	EventName string   `json:"event_name" yaml:"event_name"`
	Baseline  *float64 `json:"baseline" yaml:"baseline"`
	Actual    *float64 `json:"actual" yaml:"actual"`
}

// MetricBenchmarkInput is everything the calculator needs for one metric.
type MetricBenchmarkInput struct {
	MetricName        string                `json:"metric_name" yaml:"metric_name"`
	ThreeMonthAverage float64               `json:"three_month_average" yaml:"three_month_average"`
	History           []MetricHistoryRecord `json:"history,omitempty" yaml:"history,omitempty"`
}

// BenchmarkResult is the calculated outcome for one metric. Optional values
// are nil when there was not enough data to derive them.
type BenchmarkResult struct {
	MetricName         string   `json:"metric_name" yaml:"metric_name"`
	ThreeMonthAverage  float64  `json:"three_month_average" yaml:"three_month_average"`
	AverageUpliftRatio *float64 `json:"average_uplift_ratio" yaml:"average_uplift_ratio"`
	UpliftStdDev       *float64 `json:"uplift_stddev,omitempty" yaml:"uplift_stddev,omitempty"`
	ProposedBenchmark  *float64 `json:"proposed_benchmark" yaml:"proposed_benchmark"`
	AverageActual      *float64 `json:"average_actual" yaml:"average_actual"`
	ValidEvents        int      `json:"valid_events" yaml:"valid_events"`
}

// BenchmarkSummary holds the per-metric results in input order, plus lookups
// of the defined proposed benchmarks and average actuals.
type BenchmarkSummary struct {
	Results            []BenchmarkResult  `json:"results" yaml:"results"`
	ProposedBenchmarks map[string]float64 `json:"proposed_benchmarks" yaml:"proposed_benchmarks"`
	AverageActuals     map[string]float64 `json:"average_actuals" yaml:"average_actuals"`
}

// BenchmarkDocument is the file and request body form of the calculator input.
type BenchmarkDocument struct {
	Metrics []MetricBenchmarkInput `json:"metrics" yaml:"metrics"`
}
