package webapi

import (
	"github.com/spboyer/scorecard/internal/benchmark"
	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/internal/strategy"
)

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// CatalogResponse lists the predefined metrics and the default selection.
type CatalogResponse struct {
	Metrics  []string `json:"metrics"`
	Defaults []string `json:"defaults"`
}

// CategorizeRequest is the body of POST /api/categorize.
type CategorizeRequest struct {
	Metrics []string `json:"metrics"`
}

// CategorizeResponse maps every requested metric to a category.
type CategorizeResponse struct {
	Categories map[string]models.Category `json:"categories"`
}

// BenchmarkResponse is the calculator output plus its display rows.
type BenchmarkResponse struct {
	Summary *models.BenchmarkSummary `json:"summary"`
	Rows    []benchmark.SummaryRow   `json:"rows"`
}

// StrategyResponse echoes the normalized input next to the profile.
type StrategyResponse struct {
	Input   strategy.Input          `json:"input"`
	Profile *models.StrategyProfile `json:"profile"`
}

// ReportRequest is the body of POST /api/report. Format is "markdown" (the
// default) or "html".
type ReportRequest struct {
	Title      string                        `json:"title,omitempty"`
	Format     string                        `json:"format,omitempty"`
	Strategy   *strategy.Input               `json:"strategy,omitempty"`
	Benchmarks []models.MetricBenchmarkInput `json:"benchmarks,omitempty"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   int      `json:"code"`
	Issues []string `json:"issues,omitempty"`
}
