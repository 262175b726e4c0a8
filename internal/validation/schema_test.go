package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBenchmarkYAML = `metrics:
  - metric_name: Social Impressions
    three_month_average: 100
    history:
      - event_name: Reveal
        baseline: 50
        actual: 75
      - event_name: Launch
        baseline: null
  - metric_name: DAU
    three_month_average: 0
`

const validStrategyYAML = `objective: Brand Awareness / Reach
investment: low
metrics: [Social Impressions, DAU]
categories:
  Social Impressions: Reach
influencers:
  - name: alpha
    follower_count: 1000
    engagement_rate: 10
    average_views: 500
    cost_per_video: 50
owned_channel:
  average_reach: 12500
  average_engagement: 3.5
`

func TestValidateBenchmarkBytes_Valid(t *testing.T) {
	errs := ValidateBenchmarkBytes([]byte(validBenchmarkYAML))
	require.Empty(t, errs)
}

func TestValidateBenchmarkBytes_JSON(t *testing.T) {
	errs := ValidateBenchmarkBytes([]byte(`{"metrics":[{"metric_name":"DAU","three_month_average":10,"history":[{"baseline":1,"actual":2}]}]}`))
	require.Empty(t, errs)
}

func TestValidateBenchmarkBytes_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantLoc string
	}{
		{"missing metrics", "other: 1\n", "/"},
		{"empty metric name", "metrics:\n  - metric_name: \"\"\n", "/metrics/0/metric_name"},
		{"negative average", "metrics:\n  - metric_name: A\n    three_month_average: -5\n", "/metrics/0/three_month_average"},
		{"negative baseline", "metrics:\n  - metric_name: A\n    history:\n      - baseline: -1\n", "/metrics/0/history/0/baseline"},
		{"string actual", "metrics:\n  - metric_name: A\n    history:\n      - actual: lots\n", "/metrics/0/history/0/actual"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateBenchmarkBytes([]byte(tt.doc))
			require.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if strings.HasPrefix(e, tt.wantLoc+":") {
					found = true
				}
			}
			assert.True(t, found, "expected an error at %s, got %v", tt.wantLoc, errs)
		})
	}
}

func TestValidateBenchmarkBytes_DuplicateMetric(t *testing.T) {
	errs := ValidateBenchmarkBytes([]byte("metrics:\n  - metric_name: DAU\n  - metric_name: Sessions\n  - metric_name: DAU\n"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "/metrics/2/metric_name")
	assert.Contains(t, errs[0], `duplicate metric "DAU"`)
}

func TestValidateBytes_NonFiniteNumbers(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		doc  string
		want []string
	}{
		{"NaN average", KindBenchmark, "metrics:\n  - metric_name: a\n    three_month_average: .nan\n",
			[]string{"/metrics/0/three_month_average: non-finite number"}},
		{"infinite history", KindBenchmark, "metrics:\n  - metric_name: a\n    history:\n      - baseline: .inf\n        actual: -.Inf\n",
			[]string{"/metrics/0/history/0/actual: non-finite number", "/metrics/0/history/0/baseline: non-finite number"}},
		{"NaN engagement", KindStrategy, "objective: reach\ninvestment: low\nmetrics: [DAU]\ninfluencers:\n  - name: a\n    engagement_rate: .NaN\n",
			[]string{"/influencers/0/engagement_rate: non-finite number"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateBytes(tt.kind, []byte(tt.doc)))
		})
	}
}

func TestValidateBenchmarkBytes_BadYAML(t *testing.T) {
	errs := ValidateBenchmarkBytes([]byte("metrics: [\n"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "YAML parse error")
}

func TestValidateBenchmarkBytes_Empty(t *testing.T) {
	assert.Equal(t, []string{"/: document is empty"}, ValidateBenchmarkBytes(nil))
}

func TestValidateStrategyBytes_Valid(t *testing.T) {
	require.Empty(t, ValidateStrategyBytes([]byte(validStrategyYAML)))
}

func TestValidateStrategyBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown objective", "objective: retention\ninvestment: low\nmetrics: [DAU]\n", "/objective: unknown objective"},
		{"unknown investment", "objective: reach\ninvestment: huge\nmetrics: [DAU]\n", "/investment: unknown investment tier"},
		{"duplicate metric", "objective: reach\ninvestment: low\nmetrics: [DAU, DAU]\n", "/metrics/1: duplicate metric"},
		{"engagement over 100", "objective: reach\ninvestment: low\nmetrics: [DAU]\ninfluencers:\n  - name: a\n    engagement_rate: 120\n", "/influencers/0/engagement_rate"},
		{"fractional followers", "objective: reach\ninvestment: low\nmetrics: [DAU]\ninfluencers:\n  - name: a\n    follower_count: 1.5\n", "/influencers/0/follower_count"},
		{"no metrics", "objective: reach\ninvestment: low\nmetrics: []\n", "/metrics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStrategyBytes([]byte(tt.doc))
			require.NotEmpty(t, errs)
			assert.Contains(t, strings.Join(errs, "\n"), tt.want)
		})
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "strategy.yaml")
	require.NoError(t, os.WriteFile(p, []byte(validStrategyYAML), 0o644))

	errs, err := ValidateFile(KindStrategy, p)
	require.NoError(t, err)
	assert.Empty(t, errs)

	errs, err = ValidateFile(KindBenchmark, p)
	require.NoError(t, err)
	assert.NotEmpty(t, errs)

	_, err = ValidateFile(KindBenchmark, filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Benchmark ")
	require.NoError(t, err)
	assert.Equal(t, KindBenchmark, k)

	_, err = ParseKind("deck")
	assert.ErrorContains(t, err, "unknown document kind")
}
