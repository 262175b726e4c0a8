package categorize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/spboyer/scorecard/internal/cache"
	"github.com/spboyer/scorecard/internal/models"
)

func TestStatic_Catalog(t *testing.T) {
	tests := []struct {
		metric string
		want   models.Category
	}{
		{"Video views (Franchise)", models.CategoryReach},
		{"Social Impressions", models.CategoryReach},
		{"Press UMV (unique monthly views)", models.CategoryReach},
		{"Nb. press articles", models.CategoryReach},
		{"Social Conversation Volume", models.CategoryDepth},
		{"Social Sentiment (Franchise)", models.CategoryDepth},
		{"Trailer avg % viewed (Youtube)", models.CategoryDepth},
		{"Email Open Rate (OR)", models.CategoryDepth},
		{"Hours Watched (Streams)", models.CategoryDepth},
		{"DAU", models.CategoryDepth},
		{"Email Click Through Rate (CTR)", models.CategoryAction},
		{"Labs program sign-ups", models.CategoryAction},
		{"Labs sign up click-through Web", models.CategoryAction},
		{"Net promoter score", models.CategoryUncategorized},
	}
	s := NewStatic(nil)
	got, err := s.Categorize(context.Background(), metricsOf(tests))
	require.NoError(t, err)
	for _, tt := range tests {
		assert.Equal(t, tt.want, got[tt.metric], tt.metric)
	}
}

func metricsOf(tests []struct {
	metric string
	want   models.Category
}) []string {
	out := make([]string, len(tests))
	for i, tt := range tests {
		out[i] = tt.metric
	}
	return out
}

func TestStatic_Overrides(t *testing.T) {
	s := NewStatic(map[string]string{
		"net promoter score": "depth",
		"DAU":                "Action",
		"Ignored":            "Awareness",
	})

	got, err := s.Categorize(context.Background(), []string{"Net Promoter Score", "DAU", "Ignored"})
	require.NoError(t, err)

	assert.Equal(t, models.CategoryDepth, got["Net Promoter Score"])
	assert.Equal(t, models.CategoryAction, got["DAU"])
	assert.Equal(t, models.CategoryUncategorized, got["Ignored"])
}

func TestComplete(t *testing.T) {
	got := Complete([]string{"a", "b", "c"}, map[string]models.Category{
		"a": "reach",
		"b": "Awareness",
	})
	assert.Equal(t, map[string]models.Category{
		"a": models.CategoryReach,
		"b": models.CategoryUncategorized,
		"c": models.CategoryUncategorized,
	}, got)
}

func TestFallback_UsesPrimary(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := NewMockCategorizer(ctrl)
	secondary := NewMockCategorizer(ctrl)

	want := map[string]models.Category{"DAU": models.CategoryDepth}
	primary.EXPECT().Categorize(gomock.Any(), []string{"DAU"}).Return(want, nil)

	f := &Fallback{Primary: primary, Secondary: secondary}
	got, err := f.Categorize(context.Background(), []string{"DAU"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFallback_UsesSecondaryOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := NewMockCategorizer(ctrl)
	secondary := NewMockCategorizer(ctrl)

	want := map[string]models.Category{"DAU": models.CategoryReach}
	primary.EXPECT().Categorize(gomock.Any(), gomock.Any()).Return(nil, errors.New("offline"))
	secondary.EXPECT().Categorize(gomock.Any(), []string{"DAU"}).Return(want, nil)

	f := &Fallback{Primary: primary, Secondary: secondary}
	got, err := f.Categorize(context.Background(), []string{"DAU"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNew(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &Static{}, c)

	c, err = New(Options{Engine: EngineCopilot, Model: "gpt-5"})
	require.NoError(t, err)
	require.IsType(t, &Fallback{}, c)
	assert.IsType(t, &Static{}, c.(*Fallback).Secondary)

	_, err = New(Options{Engine: "openai"})
	assert.ErrorContains(t, err, `unknown categorizer engine "openai"`)
}

func TestNew_CopilotWithCache(t *testing.T) {
	c, err := New(Options{Engine: EngineCopilot, Model: "gpt-5", CacheDir: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &Fallback{}, c)
	cached, ok := c.(*Fallback).Primary.(*Cached)
	require.True(t, ok)
	assert.Equal(t, "copilot:gpt-5", cached.Namespace)
}

func TestCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockCategorizer(ctrl)
	c := &Cached{Inner: inner, Cache: cache.New(t.TempDir()), Namespace: "test"}

	inner.EXPECT().Categorize(gomock.Any(), []string{"DAU", "Mystery"}).Return(map[string]models.Category{
		"DAU":     models.CategoryDepth,
		"Mystery": models.CategoryUncategorized,
	}, nil)
	got, err := c.Categorize(context.Background(), []string{"DAU", "Mystery"})
	require.NoError(t, err)
	assert.Equal(t, map[string]models.Category{"DAU": models.CategoryDepth}, got)

	// DAU now comes from the cache, matched case-insensitively; only the
	// uncategorized metric is asked again.
	inner.EXPECT().Categorize(gomock.Any(), []string{"Mystery"}).Return(map[string]models.Category{}, nil)
	got, err = c.Categorize(context.Background(), []string{" dau ", "Mystery"})
	require.NoError(t, err)
	assert.Equal(t, map[string]models.Category{" dau ": models.CategoryDepth}, got)

	// Fully cached requests never reach the model.
	got, err = c.Categorize(context.Background(), []string{"DAU"})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryDepth, got["DAU"])
}

func TestCached_InnerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockCategorizer(ctrl)
	c := &Cached{Inner: inner, Cache: cache.New(t.TempDir()), Namespace: "test"}

	inner.EXPECT().Categorize(gomock.Any(), gomock.Any()).Return(nil, errors.New("offline"))
	_, err := c.Categorize(context.Background(), []string{"DAU"})
	assert.ErrorContains(t, err, "offline")
}

func TestClose_ClosesThroughChain(t *testing.T) {
	client := &fakeClient{session: &fakeSession{reply: `{"DAU": "Action"}`}}
	ai := newTestCopilot(client)
	chain := &Fallback{
		Primary:   &Cached{Inner: ai, Cache: cache.New(t.TempDir()), Namespace: "test"},
		Secondary: NewStatic(nil),
	}

	got, err := chain.Categorize(context.Background(), []string{"DAU"})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryAction, got["DAU"])

	require.NoError(t, Close(chain))
	assert.Equal(t, 1, client.stops)

	// The model is gone, so the keyword rules answer.
	got, err = chain.Categorize(context.Background(), []string{"Daily active users"})
	require.NoError(t, err)
	assert.Contains(t, got, "Daily active users")
	assert.Equal(t, 1, client.starts)
}

func TestClose_StaticIsNoop(t *testing.T) {
	assert.NoError(t, Close(NewStatic(nil)))
}
