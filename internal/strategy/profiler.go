// Package strategy derives a campaign strategy profile from the objective,
// budget tier, metric selection, influencer roster and owned-channel stats.
package strategy

import (
	"github.com/spboyer/scorecard/internal/format"
	"github.com/spboyer/scorecard/internal/models"
)

// Input is everything the profiler reads. Categories may omit metrics; those
// are reported as Uncategorized.
type Input struct {
	Objective    models.Objective           `json:"objective" yaml:"objective"`
	Investment   models.Investment          `json:"investment" yaml:"investment"`
	Metrics      []string                   `json:"metrics" yaml:"metrics"`
	Categories   map[string]models.Category `json:"categories,omitempty" yaml:"categories,omitempty"`
	Influencers  []models.InfluencerProfile `json:"influencers,omitempty" yaml:"influencers,omitempty"`
	OwnedChannel models.OwnedChannelProfile `json:"owned_channel" yaml:"owned_channel"`
}

// Output labels, in display order.
const (
	LabelWeightingFactor = "Investment Weighting Factor"
	LabelInfluencerReach = "Total Potential Influencer Reach"
	LabelEngagedAudience = "Total Projected Engaged Audience"
	LabelAverageCPV      = "Average CPV (Cost Per Views)"
	LabelOwnedReach      = "Owned Channel Avg. Reach"
	LabelOwnedEngagement = "Owned Channel Avg. Engagement"
)

// Profiler builds strategy profiles with a fixed set of advisors.
type Profiler struct {
	advisors []Advisor
}

// NewProfiler returns a Profiler that evaluates the given advisors in order.
// With no advisors it uses DefaultAdvisors.
func NewProfiler(advisors ...Advisor) *Profiler {
	if len(advisors) == 0 {
		advisors = DefaultAdvisors
	}
	return &Profiler{advisors: advisors}
}

// Profile runs the default profiler.
func Profile(in Input) *models.StrategyProfile {
	return NewProfiler().Profile(in)
}

// Profile computes the strategy profile. It reads its input and returns a
// new value; nothing in the input is modified.
func (p *Profiler) Profile(in Input) *models.StrategyProfile {
	totals := AggregateInfluencers(in.Influencers)

	figures := models.StrategyFigures{
		InvestmentWeightingFactor:     WeightingFactor(in.Investment),
		TotalPotentialReach:           totals.PotentialReach,
		TotalProjectedEngagedAudience: totals.ProjectedEngaged,
		AverageCPV:                    totals.AverageCPV,
		CPVInfluencers:                totals.CPVInfluencers,
		OwnedChannelAverageReach:      max(finiteOrZero(in.OwnedChannel.AverageReach), 0),
		OwnedChannelEngagementPercent: finiteOrZero(in.OwnedChannel.AverageEngagementPercent),
	}

	prioritized := Prioritize(in.Objective, in.Metrics, in.Categories)

	considerations := []models.Consideration{}
	for _, a := range p.advisors {
		if c := a.Advise(in, prioritized, totals); c != nil {
			considerations = append(considerations, *c)
		}
	}

	return &models.StrategyProfile{
		Figures:                 figures,
		CalculatedOutputs:       CalculatedOutputs(figures),
		PrioritizedMetrics:      prioritized,
		StrategicConsiderations: considerations,
	}
}

// Prioritize annotates each metric with its category and priority, in input order.
func Prioritize(objective models.Objective, metrics []string, categories map[string]models.Category) []models.PrioritizedMetric {
	out := make([]models.PrioritizedMetric, 0, len(metrics))
	for _, m := range metrics {
		category, ok := categories[m]
		if !ok || category == "" {
			category = models.CategoryUncategorized
		}
		out = append(out, models.PrioritizedMetric{
			Metric:   m,
			Category: category,
			Priority: PriorityFor(objective, category),
		})
	}
	return out
}

// CalculatedOutputs formats the figures as labeled display strings.
func CalculatedOutputs(f models.StrategyFigures) []models.LabeledValue {
	return []models.LabeledValue{
		{Label: LabelWeightingFactor, Value: format.Multiplier(f.InvestmentWeightingFactor)},
		{Label: LabelInfluencerReach, Value: format.Count(f.TotalPotentialReach)},
		{Label: LabelEngagedAudience, Value: format.Integer(f.TotalProjectedEngagedAudience)},
		{Label: LabelAverageCPV, Value: format.Currency(f.AverageCPV, 4)},
		{Label: LabelOwnedReach, Value: format.Integer(f.OwnedChannelAverageReach)},
		{Label: LabelOwnedEngagement, Value: format.Percent(f.OwnedChannelEngagementPercent)},
	}
}

// Normalize resolves short objective and investment keys such as "reach" or
// "low" to their canonical labels and category labels to canonical
// categories. Unknown values are left as they are.
func Normalize(in Input) Input {
	if o, ok := models.ParseObjective(string(in.Objective)); ok {
		in.Objective = o
	}
	if i, ok := models.ParseInvestment(string(in.Investment)); ok {
		in.Investment = i
	}
	if in.Categories != nil {
		cats := make(map[string]models.Category, len(in.Categories))
		for m, c := range in.Categories {
			cats[m], _ = models.ParseCategory(string(c))
		}
		in.Categories = cats
	}
	return in
}
