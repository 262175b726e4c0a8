package reporting

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spboyer/scorecard/internal/benchmark"
	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/internal/scorecard"
	"github.com/spboyer/scorecard/internal/session"
	"github.com/spboyer/scorecard/internal/strategy"
)

func f(v float64) *float64 { return &v }

func sampleState(t *testing.T) *session.State {
	t.Helper()
	st := &session.State{}
	cats := map[string]models.Category{"DAU": models.CategoryAction, "Press UMV (unique monthly views)": models.CategoryReach}
	require.NoError(t, st.ConfirmMetrics([]string{"DAU", "Press UMV (unique monthly views)"}, cats))

	in := strategy.Input{
		Objective:  models.ObjectiveReach,
		Investment: models.InvestmentLow,
		Metrics:    st.Metrics,
		Categories: st.Categories,
		Influencers: []models.InfluencerProfile{
			{Name: "alpha", FollowerCount: 1000, EngagementRatePercent: 10, AverageViews: 500, CostPerVideo: 50},
		},
		OwnedChannel: models.OwnedChannelProfile{AverageReach: 12500, AverageEngagementPercent: 3.5},
	}
	require.NoError(t, st.CompleteStrategy(in, strategy.Profile(in)))

	inputs := []models.MetricBenchmarkInput{{
		MetricName:        "DAU",
		ThreeMonthAverage: 100,
		History:           []models.MetricHistoryRecord{{EventName: "Launch", Baseline: f(50), Actual: f(75)}},
	}}
	require.NoError(t, st.CompleteBenchmarks(inputs, benchmark.Calculate(inputs)))

	rows := st.ScorecardRows()
	rows[0].Actual = f(165)
	require.NoError(t, st.SaveMoment("Launch Week", rows, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
	return st
}

func TestWriteBenchmarkTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBenchmarkTable(&buf, sampleState(t).Summary))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Metric  3-Month Avg"))
	assert.Contains(t, lines[2], "1.50x")
	assert.Contains(t, lines[2], "150.00")
}

func TestWriteStrategyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStrategyTable(&buf, sampleState(t).Profile))

	out := buf.String()
	assert.Contains(t, out, "Investment Weighting Factor")
	assert.Contains(t, out, "1.0x")
	assert.Contains(t, out, "Total Potential Influencer Reach")
	assert.Contains(t, out, "1,000")
	assert.Contains(t, out, "$0.1000")
	assert.Contains(t, out, "⚠ Warning:")
	assert.Contains(t, out, "Press UMV (unique monthly views)")
}

func TestWriteStrategyTable_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStrategyTable(&buf, nil))
	assert.Equal(t, "No strategy profile.\n", buf.String())
}

func TestWriteScorecardTable_AlignsWideRunes(t *testing.T) {
	rows := []scorecard.Row{
		{Metric: "視聴回数", Category: models.CategoryReach, Benchmark: f(100), Actual: f(120)},
		{Metric: "DAU", Category: models.CategoryAction},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteScorecardTable(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	// "視聴回数" is 8 cells wide, so the category column starts at the same
	// display offset on every line.
	assert.True(t, strings.HasPrefix(lines[2], "視聴回数  Reach"))
	assert.True(t, strings.HasPrefix(lines[3], "DAU       Action"))
	assert.Contains(t, lines[2], "20.0%")
	assert.Contains(t, lines[2], "Ahead of benchmark")
	assert.Contains(t, lines[3], "N/A")
}

func TestRenderMarkdown(t *testing.T) {
	r := FromState("Q4 Launch", sampleState(t), time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))

	md, err := RenderMarkdown(r)
	require.NoError(t, err)

	for _, want := range []string{
		"# Q4 Launch",
		"_Generated 2026-10-19 12:00 UTC_",
		"**Objective:** Brand Awareness / Reach",
		"| Investment Weighting Factor | 1.0x |",
		"| Press UMV (unique monthly views) | Reach | High |",
		"- **Warning:**",
		"## Benchmarks",
		"| DAU | 100.00 | 1.50x | 150.00 |",
		"## Moment: Launch Week",
		"| DAU | Action | 150.00 | 165.00 | 10.0% | On track |",
	} {
		assert.Contains(t, md, want)
	}
}

func TestRenderMarkdown_EmptyReport(t *testing.T) {
	md, err := RenderMarkdown(&Report{GeneratedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, "# Campaign Scorecard\n\n_Generated 2026-01-01 00:00 UTC_\n", md)
}

func TestRenderMarkdown_EscapesPipes(t *testing.T) {
	r := &Report{Moments: scorecard.Moments{{Name: "m", Rows: []scorecard.Row{{Metric: "A|B"}}}}}
	md, err := RenderMarkdown(r)
	require.NoError(t, err)
	assert.Contains(t, md, `| A\|B |`)
}

func TestRenderHTML(t *testing.T) {
	r := FromState("<Launch>", sampleState(t), time.Now())

	page, err := RenderHTML(r)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>&lt;Launch&gt;</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<td>Investment Weighting Factor</td>")
	assert.Contains(t, page, "<h2>Benchmarks</h2>")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleState(t).Summary))

	var decoded models.BenchmarkSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.InDelta(t, 150, decoded.ProposedBenchmarks["DAU"], 1e-9)
	assert.Contains(t, buf.String(), "\n  \"results\"")
}
