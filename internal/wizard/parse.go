package wizard

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/internal/scorecard"
	"github.com/spboyer/scorecard/internal/session"
	"github.com/spboyer/scorecard/internal/strategy"
)

// MetricAnswers is what the metric step collects.
type MetricAnswers struct {
	Selected []string
	Custom   string
}

// Metrics merges the selection with comma-separated custom metrics, keeping
// the first occurrence of each name.
func (a MetricAnswers) Metrics() []string {
	return session.DedupeMetrics(append(append([]string(nil), a.Selected...), splitAndTrim(a.Custom)...))
}

// MetricOptions is the sorted union of the catalog and already chosen metrics.
func MetricOptions(catalog, current []string) []string {
	all := session.DedupeMetrics(append(append([]string(nil), catalog...), current...))
	sort.Strings(all)
	return all
}

// StrategyAnswers is what the strategy step collects. Numbers are raw text.
type StrategyAnswers struct {
	Objective       models.Objective
	Investment      models.Investment
	Influencers     string
	OwnedReach      string
	OwnedEngagement string
}

// BuildStrategyInput turns answers into profiler input for the confirmed
// metrics and categories.
func BuildStrategyInput(metrics []string, categories map[string]models.Category, a StrategyAnswers) (strategy.Input, error) {
	influencers, err := ParseInfluencerLines(a.Influencers)
	if err != nil {
		return strategy.Input{}, err
	}
	reach, err := ParseNumber(a.OwnedReach)
	if err != nil {
		return strategy.Input{}, fmt.Errorf("owned channel reach: %w", err)
	}
	engagement, err := ParseNumber(a.OwnedEngagement)
	if err != nil {
		return strategy.Input{}, fmt.Errorf("owned channel engagement: %w", err)
	}
	if engagement < 0 || engagement > 100 {
		return strategy.Input{}, fmt.Errorf("owned channel engagement: %v is outside 0-100", engagement)
	}
	return strategy.Input{
		Objective:    a.Objective,
		Investment:   a.Investment,
		Metrics:      append([]string(nil), metrics...),
		Categories:   categories,
		Influencers:  influencers,
		OwnedChannel: models.OwnedChannelProfile{AverageReach: reach, AverageEngagementPercent: engagement},
	}, nil
}

// BenchmarkAnswer is the text entered for one metric in the benchmark step.
type BenchmarkAnswer struct {
	Metric  string
	Average string
	History string
}

// BuildBenchmarkInputs parses every answer into calculator input.
func BuildBenchmarkInputs(answers []BenchmarkAnswer) ([]models.MetricBenchmarkInput, error) {
	out := make([]models.MetricBenchmarkInput, 0, len(answers))
	for _, a := range answers {
		avg, err := ParseNumber(a.Average)
		if err != nil {
			return nil, fmt.Errorf("%s: 3-month average: %w", a.Metric, err)
		}
		if avg < 0 {
			return nil, fmt.Errorf("%s: 3-month average must not be negative", a.Metric)
		}
		history, err := ParseHistoryLines(a.History)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.Metric, err)
		}
		out = append(out, models.MetricBenchmarkInput{MetricName: a.Metric, ThreeMonthAverage: avg, History: history})
	}
	return out, nil
}

// RowAnswer is the text entered for one scorecard row.
type RowAnswer struct {
	Benchmark string
	Actual    string
}

// ApplyRowAnswers copies rows and overwrites benchmark and actual with the
// parsed answers. Blank answers leave the value missing.
func ApplyRowAnswers(rows []scorecard.Row, answers []RowAnswer) ([]scorecard.Row, error) {
	if len(answers) != len(rows) {
		return nil, fmt.Errorf("got %d answers for %d rows", len(answers), len(rows))
	}
	out := make([]scorecard.Row, len(rows))
	for i, r := range rows {
		b, err := ParseOptionalNumber(answers[i].Benchmark)
		if err != nil {
			return nil, fmt.Errorf("%s: benchmark: %w", r.Metric, err)
		}
		a, err := ParseOptionalNumber(answers[i].Actual)
		if err != nil {
			return nil, fmt.Errorf("%s: actual: %w", r.Metric, err)
		}
		r.Benchmark, r.Actual = b, a
		out[i] = r
	}
	return out, nil
}

// ParseInfluencerLines reads one influencer per line as
// "name, followers, engagement%, views, cost". Blank numbers are zero.
func ParseInfluencerLines(text string) ([]models.InfluencerProfile, error) {
	var out []models.InfluencerProfile
	for n, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, 5)
		if len(fields) > 5 {
			return nil, fmt.Errorf("influencer line %d: expected name, followers, engagement%%, views, cost", n+1)
		}
		if fields[0] == "" {
			return nil, fmt.Errorf("influencer line %d: name is required", n+1)
		}
		nums := make([]float64, 4)
		for i := range nums {
			if i+1 >= len(fields) {
				break
			}
			v, err := ParseNumber(fields[i+1])
			if err != nil {
				return nil, fmt.Errorf("influencer line %d: %w", n+1, err)
			}
			if v < 0 {
				return nil, fmt.Errorf("influencer line %d: %q must not be negative", n+1, fields[i+1])
			}
			if countField(i) && (v != math.Trunc(v) || v >= math.MaxInt64) {
				return nil, fmt.Errorf("influencer line %d: %q must be a whole number", n+1, fields[i+1])
			}
			nums[i] = v
		}
		if nums[1] > 100 {
			return nil, fmt.Errorf("influencer line %d: engagement %v is outside 0-100", n+1, nums[1])
		}
		out = append(out, models.InfluencerProfile{
			Name:                  fields[0],
			FollowerCount:         int64(nums[0]),
			EngagementRatePercent: nums[1],
			AverageViews:          int64(nums[2]),
			CostPerVideo:          nums[3],
		})
	}
	return out, nil
}

// countField reports whether the i-th number of an influencer line is a
// follower or view count.
func countField(i int) bool { return i == 0 || i == 2 }

// FormatInfluencerLines is the inverse of ParseInfluencerLines.
func FormatInfluencerLines(ps []models.InfluencerProfile) string {
	lines := make([]string, len(ps))
	for i, p := range ps {
		lines[i] = fmt.Sprintf("%s, %d, %s, %d, %s", p.Name, p.FollowerCount,
			strconv.FormatFloat(p.EngagementRatePercent, 'f', -1, 64), p.AverageViews,
			strconv.FormatFloat(p.CostPerVideo, 'f', -1, 64))
	}
	return strings.Join(lines, "\n")
}

// ParseHistoryLines reads one past event per line as
// "event, baseline, actual". Blank baseline or actual means missing.
func ParseHistoryLines(text string) ([]models.MetricHistoryRecord, error) {
	var out []models.MetricHistoryRecord
	for n, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, 3)
		if len(fields) > 3 {
			return nil, fmt.Errorf("history line %d: expected event, baseline, actual", n+1)
		}
		rec := models.MetricHistoryRecord{EventName: fields[0]}
		var err error
		if len(fields) > 1 {
			if rec.Baseline, err = ParseOptionalNumber(fields[1]); err != nil {
				return nil, fmt.Errorf("history line %d: baseline: %w", n+1, err)
			}
		}
		if len(fields) > 2 {
			if rec.Actual, err = ParseOptionalNumber(fields[2]); err != nil {
				return nil, fmt.Errorf("history line %d: actual: %w", n+1, err)
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// FormatHistoryLines is the inverse of ParseHistoryLines.
func FormatHistoryLines(rs []models.MetricHistoryRecord) string {
	lines := make([]string, len(rs))
	for i, r := range rs {
		lines[i] = fmt.Sprintf("%s, %s, %s", r.EventName, FormatOptional(r.Baseline), FormatOptional(r.Actual))
	}
	return strings.Join(lines, "\n")
}

// ParseNumber parses a plain number. "$", "%" and "_" are ignored and blank
// text is zero.
func ParseNumber(s string) (float64, error) {
	v, err := ParseOptionalNumber(s)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

// ParseOptionalNumber is ParseNumber with blank text reported as nil. NaN and
// infinities are rejected.
func ParseOptionalNumber(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("$", "", "%", "", "_", "").Replace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%q is not a finite number", s)
	}
	return &v, nil
}

// FormatOptional renders v for editing; nil is blank.
func FormatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// splitFields splits a comma-separated line and trims every field. At most
// limit+1 fields are returned so callers can detect extras.
func splitFields(line string, limit int) []string {
	parts := strings.SplitN(line, ",", limit+1)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
