package strategy

import (
	"fmt"
	"strings"

	"github.com/spboyer/scorecard/internal/models"
)

// Advisor evaluates one advisory rule against a computed profile and returns
// at most one consideration.
type Advisor interface {
	Name() string
	Advise(in Input, prioritized []models.PrioritizedMetric, totals InfluencerTotals) *models.Consideration
}

// DefaultAdvisors are evaluated in order for every profile.
var DefaultAdvisors = []Advisor{
	&LowInvestmentCostlyMetrics{},
	&ConversionWithoutAction{},
	&UncategorizedMetrics{},
	&InfluencersWithoutViews{},
}

// LowInvestmentCostlyMetrics warns when a low budget is paired with metrics
// that are expensive to move.
type LowInvestmentCostlyMetrics struct{}

var _ Advisor = (*LowInvestmentCostlyMetrics)(nil)

func (*LowInvestmentCostlyMetrics) Name() string { return "low-investment-costly-metrics" }

func (a *LowInvestmentCostlyMetrics) Advise(in Input, _ []models.PrioritizedMetric, _ InfluencerTotals) *models.Consideration {
	if in.Investment != models.InvestmentLow {
		return nil
	}
	var costly []string
	for _, m := range in.Metrics {
		if isHighCost(m) {
			costly = append(costly, m)
		}
	}
	if len(costly) == 0 {
		return nil
	}
	return &models.Consideration{
		Rule: a.Name(),
		Kind: models.ConsiderationWarning,
		Text: fmt.Sprintf("With a 'Low' investment, achieving high performance for costly metrics like %s can be challenging. Focus on organic growth and efficiency.",
			strings.Join(costly, ", ")),
	}
}

// ConversionWithoutAction warns when a conversion campaign tracks no Action metric.
type ConversionWithoutAction struct{}

var _ Advisor = (*ConversionWithoutAction)(nil)

func (*ConversionWithoutAction) Name() string { return "conversion-without-action" }

func (a *ConversionWithoutAction) Advise(in Input, prioritized []models.PrioritizedMetric, _ InfluencerTotals) *models.Consideration {
	if in.Objective != models.ObjectiveConversion {
		return nil
	}
	for _, p := range prioritized {
		if p.Category == models.CategoryAction {
			return nil
		}
	}
	return &models.Consideration{
		Rule: a.Name(),
		Kind: models.ConsiderationWarning,
		Text: "Your objective is 'Conversion / Action', but no 'Action' metrics are selected. Ensure you add metrics that directly measure your conversion goals (e.g., sign-ups, downloads).",
	}
}

// UncategorizedMetrics notes metrics that fell back to Medium priority
// because they have no canonical category.
type UncategorizedMetrics struct{}

var _ Advisor = (*UncategorizedMetrics)(nil)

func (*UncategorizedMetrics) Name() string { return "uncategorized-metrics" }

func (a *UncategorizedMetrics) Advise(_ Input, prioritized []models.PrioritizedMetric, _ InfluencerTotals) *models.Consideration {
	var names []string
	for _, p := range prioritized {
		if !p.Category.IsCanonical() {
			names = append(names, p.Metric)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &models.Consideration{
		Rule: a.Name(),
		Kind: models.ConsiderationInfo,
		Text: fmt.Sprintf("Could not categorize %s; these metrics default to Medium priority.", strings.Join(names, ", ")),
	}
}

// InfluencersWithoutViews notes roster entries left out of the CPV average.
type InfluencersWithoutViews struct{}

var _ Advisor = (*InfluencersWithoutViews)(nil)

func (*InfluencersWithoutViews) Name() string { return "influencers-without-views" }

func (a *InfluencersWithoutViews) Advise(_ Input, _ []models.PrioritizedMetric, totals InfluencerTotals) *models.Consideration {
	n := len(totals.ExcludedFromCPV)
	if n == 0 {
		return nil
	}
	text := fmt.Sprintf("%d influencers have no recorded average views and are excluded from the CPV average.", n)
	if n == 1 {
		text = "1 influencer has no recorded average views and is excluded from the CPV average."
	}
	return &models.Consideration{
		Rule: a.Name(),
		Kind: models.ConsiderationInfo,
		Text: text,
	}
}
