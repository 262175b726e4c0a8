// Package webapi exposes the scorecard calculators as JSON endpoints.
package webapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spboyer/scorecard/internal/benchmark"
	"github.com/spboyer/scorecard/internal/categorize"
	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/internal/reporting"
	"github.com/spboyer/scorecard/internal/session"
	"github.com/spboyer/scorecard/internal/strategy"
	"github.com/spboyer/scorecard/internal/validation"
)

// Version is the API version reported by the health endpoint.
var Version = "0.1.0"

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ErrBadRequest marks request errors that map to 400.
var ErrBadRequest = errors.New("bad request")

// Handlers holds dependencies for the API handlers.
type Handlers struct {
	categorizer categorize.Categorizer
	catalog     []string
	defaults    []string
	logger      *slog.Logger
	now         func() time.Time
}

// NewHandlers creates handlers backed by the given categorizer and metric
// catalog. A nil categorizer uses the keyword rules.
func NewHandlers(c categorize.Categorizer, catalog, defaults []string, logger *slog.Logger) *Handlers {
	if c == nil {
		c = categorize.NewStatic(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		categorizer: c,
		catalog:     catalog,
		defaults:    defaults,
		logger:      logger,
		now:         time.Now,
	}
}

// Routes registers all web API routes under /api.
func (h *Handlers) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Get("/catalog", h.HandleCatalog)
		r.Post("/categorize", h.HandleCategorize)
		r.Post("/benchmarks", h.HandleBenchmarks)
		r.Post("/strategy", h.HandleStrategy)
		r.Post("/report", h.HandleReport)
	})
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: Version})
}

// HandleCatalog returns the configured metric catalog.
func (h *Handlers) HandleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CatalogResponse{
		Metrics:  nonNil(h.catalog),
		Defaults: nonNil(h.defaults),
	})
}

// HandleCategorize assigns each metric in the request to a category.
func (h *Handlers) HandleCategorize(w http.ResponseWriter, r *http.Request) {
	var req CategorizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	metrics := session.DedupeMetrics(req.Metrics)
	if len(metrics) == 0 {
		writeError(w, http.StatusBadRequest, "metrics must not be empty")
		return
	}

	cats, err := h.categorize(r, metrics)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CategorizeResponse{Categories: cats})
}

// HandleBenchmarks validates a benchmark document and runs the calculator.
func (h *Handlers) HandleBenchmarks(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if issues := validation.ValidateBenchmarkBytes(body); len(issues) > 0 {
		writeIssues(w, "invalid benchmark document", issues)
		return
	}

	var doc models.BenchmarkDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding benchmark document: %v", err))
		return
	}
	summary := benchmark.Calculate(doc.Metrics)
	writeJSON(w, http.StatusOK, BenchmarkResponse{Summary: summary, Rows: benchmark.SummaryRows(summary)})
}

// HandleStrategy validates a strategy document and returns its profile.
// Metrics without a category are sent to the categorizer first.
func (h *Handlers) HandleStrategy(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if issues := validation.ValidateStrategyBytes(body); len(issues) > 0 {
		writeIssues(w, "invalid strategy document", issues)
		return
	}

	var in strategy.Input
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding strategy document: %v", err))
		return
	}
	in = strategy.Normalize(in)

	if missing := uncategorized(in); len(missing) > 0 {
		cats, err := h.categorize(r, missing)
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		merged := make(map[string]models.Category, len(in.Metrics))
		for m, c := range in.Categories {
			merged[m] = c
		}
		for m, c := range cats {
			merged[m] = c
		}
		in.Categories = merged
	}

	writeJSON(w, http.StatusOK, StrategyResponse{Input: in, Profile: strategy.Profile(in)})
}

// HandleReport renders a Markdown or HTML report from a strategy and
// benchmark inputs.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = "markdown"
	}
	if format != "markdown" && format != "html" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown report format %q: must be markdown or html", req.Format))
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = reporting.DefaultTitle
	}
	rep := &reporting.Report{Title: title, GeneratedAt: h.now()}
	if req.Strategy != nil {
		in := strategy.Normalize(*req.Strategy)
		in.Categories = categorize.Complete(in.Metrics, in.Categories)
		rep.Strategy = &in
		rep.Profile = strategy.Profile(in)
	}
	if len(req.Benchmarks) > 0 {
		rep.Summary = benchmark.Calculate(req.Benchmarks)
	}

	var out string
	var err error
	contentType := "text/markdown; charset=utf-8"
	if format == "html" {
		out, err = reporting.RenderHTML(rep)
		contentType = "text/html; charset=utf-8"
	} else {
		out, err = reporting.RenderMarkdown(rep)
	}
	if err != nil {
		h.logger.Error("rendering report", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, out) //nolint:errcheck
}

func (h *Handlers) categorize(r *http.Request, metrics []string) (map[string]models.Category, error) {
	cats, err := h.categorizer.Categorize(r.Context(), metrics)
	if err != nil {
		h.logger.Warn("categorizer failed", "metrics", len(metrics), "error", err)
		return nil, fmt.Errorf("categorizing metrics: %w", err)
	}
	return categorize.Complete(metrics, cats), nil
}

// uncategorized returns the metrics with no canonical category.
func uncategorized(in strategy.Input) []string {
	var out []string
	for _, m := range in.Metrics {
		if !in.Categories[m].IsCanonical() {
			out = append(out, m)
		}
	}
	return out
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(allowedOrigins ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrBadRequest, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrBadRequest)
	}
	// The validators parse YAML, which rejects tab indentation that is
	// legal in JSON.
	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrBadRequest, err)
	}
	return compact.Bytes(), nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrBadRequest, err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}

func writeIssues(w http.ResponseWriter, msg string, issues []string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, Code: http.StatusBadRequest, Issues: issues})
}
