package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/spboyer/scorecard/internal/benchmark"
	"github.com/spboyer/scorecard/internal/format"
	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/internal/scorecard"
	"github.com/spboyer/scorecard/internal/session"
	"github.com/spboyer/scorecard/internal/strategy"
)

// DefaultTitle is used when a report has no title.
const DefaultTitle = "Campaign Scorecard"

// Report gathers everything a rendered report can show. Any section may be
// empty.
type Report struct {
	Title       string                   `json:"title"`
	GeneratedAt time.Time                `json:"generated_at"`
	Strategy    *strategy.Input          `json:"strategy,omitempty"`
	Profile     *models.StrategyProfile  `json:"profile,omitempty"`
	Summary     *models.BenchmarkSummary `json:"benchmarks,omitempty"`
	Moments     scorecard.Moments        `json:"moments,omitempty"`
}

// FromState builds a report from a wizard session.
func FromState(title string, st *session.State, now time.Time) *Report {
	return &Report{
		Title:       title,
		GeneratedAt: now,
		Strategy:    st.Strategy,
		Profile:     st.Profile,
		Summary:     st.Summary,
		Moments:     st.Moments,
	}
}

const reportTemplate = `# {{ .Title }}

_Generated {{ .GeneratedAt.Format "2006-01-02 15:04 MST" }}_
{{- with .Profile }}

## Strategy
{{- with $.Strategy }}

**Objective:** {{ .Objective }}  
**Investment:** {{ .Investment }}
{{- end }}

| Figure | Value |
|---|---|
{{- range .CalculatedOutputs }}
| {{ cell .Label }} | {{ cell .Value }} |
{{- end }}

### Prioritized metrics

| Metric | Category | Priority |
|---|---|---|
{{- range .PrioritizedMetrics }}
| {{ cell .Metric }} | {{ .Category }} | {{ .Priority }} |
{{- end }}
{{- if .StrategicConsiderations }}

### Strategic considerations
{{ range .StrategicConsiderations }}
- **{{ .Kind }}:** {{ .Text }}
{{- end }}
{{- end }}
{{- end }}
{{- with summaryRows .Summary }}

## Benchmarks

| Metric | 3-Month Avg | Avg Uplift | Proposed Benchmark |
|---|---:|---:|---:|
{{- range . }}
| {{ cell .Metric }} | {{ .ThreeMonthAverage }} | {{ .AverageUplift }} | {{ .ProposedBenchmark }} |
{{- end }}
{{- end }}
{{- range .Moments }}

## Moment: {{ .Name }}

| Metric | Category | Benchmark | Actual | % Difference | Status |
|---|---|---:|---:|---:|---|
{{- range .Rows }}
| {{ cell .Metric }} | {{ .Category }} | {{ optional .Benchmark }} | {{ optional .Actual }} | {{ .FormatPercent }} | {{ status . }} |
{{- end }}
{{- end }}
`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"cell":        escapeCell,
	"summaryRows": benchmark.SummaryRows,
	"optional":    func(v *float64) string { return format.Optional(v, 2) },
	"status":      func(r scorecard.Row) string { return InterpretDifference(r.PercentDifference()) },
}).Parse(reportTemplate))

// RenderMarkdown renders the report as GitHub-flavored markdown.
func RenderMarkdown(r *Report) (string, error) {
	data := *r
	if strings.TrimSpace(data.Title) == "" {
		data.Title = DefaultTitle
	}
	var buf strings.Builder
	if err := reportTmpl.Execute(&buf, &data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// RenderHTML renders the markdown report to a standalone HTML page.
func RenderHTML(r *Report) (string, error) {
	md, err := RenderMarkdown(r)
	if err != nil {
		return "", err
	}

	conv := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	var body bytes.Buffer
	if err := conv.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("converting report to HTML: %w", err)
	}

	title := r.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	var page bytes.Buffer
	if err := pageTmpl.Execute(&page, struct {
		Title string
		Body  htmltemplate.HTML
	}{title, htmltemplate.HTML(body.String())}); err != nil { //nolint:gosec // goldmark output, raw HTML disabled
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return page.String(), nil
}

var pageTmpl = htmltemplate.Must(htmltemplate.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: .3rem .6rem; }
</style>
</head>
<body>
{{ .Body }}</body>
</html>
`))

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func escapeCell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
