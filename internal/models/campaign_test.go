package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseObjective(t *testing.T) {
	tests := []struct {
		input  string
		want   Objective
		wantOK bool
	}{
		{"Brand Awareness / Reach", ObjectiveReach, true},
		{"brand awareness / reach", ObjectiveReach, true},
		{"engagement", ObjectiveEngagement, true},
		{" Conversion ", ObjectiveConversion, true},
		{"action", ObjectiveConversion, true},
		{"retention", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseObjective(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvestment(t *testing.T) {
	got, ok := ParseInvestment("major")
	assert.True(t, ok)
	assert.Equal(t, InvestmentMajor, got)

	got, ok = ParseInvestment("Low (<$50k)")
	assert.True(t, ok)
	assert.Equal(t, InvestmentLow, got)

	_, ok = ParseInvestment("huge")
	assert.False(t, ok)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("depth")
	assert.True(t, ok)
	assert.Equal(t, CategoryDepth, c)

	c, ok = ParseCategory("Awareness")
	assert.False(t, ok)
	assert.Equal(t, CategoryUncategorized, c)
}

func TestCategoryIsCanonical(t *testing.T) {
	assert.True(t, CategoryAction.IsCanonical())
	assert.False(t, CategoryUncategorized.IsCanonical())
	assert.False(t, Category("").IsCanonical())
}
