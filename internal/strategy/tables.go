package strategy

import "github.com/spboyer/scorecard/internal/models"

// DefaultWeightingFactor applies to investment tiers outside the known set.
const DefaultWeightingFactor = 1.0

var investmentWeights = map[models.Investment]float64{
	models.InvestmentLow:    1.0,
	models.InvestmentMedium: 1.25,
	models.InvestmentHigh:   1.6,
	models.InvestmentMajor:  2.0,
}

// WeightingFactor returns the multiplier for an investment tier.
func WeightingFactor(tier models.Investment) float64 {
	if w, ok := investmentWeights[tier]; ok {
		return w
	}
	return DefaultWeightingFactor
}

var priorityTable = map[models.Objective]map[models.Category]models.Priority{
	models.ObjectiveReach: {
		models.CategoryReach:  models.PriorityHigh,
		models.CategoryDepth:  models.PriorityMedium,
		models.CategoryAction: models.PriorityLow,
	},
	models.ObjectiveEngagement: {
		models.CategoryDepth:  models.PriorityHigh,
		models.CategoryReach:  models.PriorityMedium,
		models.CategoryAction: models.PriorityLow,
	},
	models.ObjectiveConversion: {
		models.CategoryAction: models.PriorityHigh,
		models.CategoryDepth:  models.PriorityMedium,
		models.CategoryReach:  models.PriorityLow,
	},
}

// PriorityFor looks up the priority of a category under an objective.
// Unknown objectives and non-canonical categories are Medium.
func PriorityFor(objective models.Objective, category models.Category) models.Priority {
	if p, ok := priorityTable[objective][category]; ok {
		return p
	}
	return models.PriorityMedium
}

// HighCostMetrics are expensive to move on a small budget.
var HighCostMetrics = []string{
	"Press UMV (unique monthly views)",
	"Social Impressions",
}

func isHighCost(metric string) bool {
	for _, m := range HighCostMetrics {
		if m == metric {
			return true
		}
	}
	return false
}
