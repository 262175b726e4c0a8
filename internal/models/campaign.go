package models

import "strings"

// Objective is the primary campaign goal selected in the strategy step.
type Objective string

const (
	ObjectiveReach      Objective = "Brand Awareness / Reach"
	ObjectiveEngagement Objective = "Audience Engagement / Depth"
	ObjectiveConversion Objective = "Conversion / Action"
)

// Objectives lists every objective in display order.
var Objectives = []Objective{ObjectiveReach, ObjectiveEngagement, ObjectiveConversion}

// Investment is the campaign budget tier.
type Investment string

const (
	InvestmentLow    Investment = "Low (<$50k)"
	InvestmentMedium Investment = "Medium ($50k - $250k)"
	InvestmentHigh   Investment = "High ($250k - $1M)"
	InvestmentMajor  Investment = "Major (>$1M)"
)

// Investments lists every tier from lowest to highest.
var Investments = []Investment{InvestmentLow, InvestmentMedium, InvestmentHigh, InvestmentMajor}

// Category is the funnel stage a metric measures.
type Category string

const (
	CategoryReach  Category = "Reach"
	CategoryDepth  Category = "Depth"
	CategoryAction Category = "Action"

	// CategoryUncategorized is assigned when a metric could not be placed
	// in one of the canonical categories.
	CategoryUncategorized Category = "Uncategorized"
)

// Categories lists the canonical categories.
var Categories = []Category{CategoryReach, CategoryDepth, CategoryAction}

// IsCanonical reports whether c is Reach, Depth or Action.
func (c Category) IsCanonical() bool {
	switch c {
	case CategoryReach, CategoryDepth, CategoryAction:
		return true
	}
	return false
}

// Priority is the derived importance of a metric for the chosen objective.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var objectiveKeys = map[string]Objective{
	"reach":      ObjectiveReach,
	"awareness":  ObjectiveReach,
	"depth":      ObjectiveEngagement,
	"engagement": ObjectiveEngagement,
	"action":     ObjectiveConversion,
	"conversion": ObjectiveConversion,
}

// ParseObjective accepts a canonical label or a short key such as "reach"
// or "conversion". Matching is case-insensitive.
func ParseObjective(s string) (Objective, bool) {
	s = strings.TrimSpace(s)
	for _, o := range Objectives {
		if strings.EqualFold(s, string(o)) {
			return o, true
		}
	}
	o, ok := objectiveKeys[strings.ToLower(s)]
	return o, ok
}

var investmentKeys = map[string]Investment{
	"low":    InvestmentLow,
	"medium": InvestmentMedium,
	"high":   InvestmentHigh,
	"major":  InvestmentMajor,
}

// ParseInvestment accepts a canonical label or one of low, medium, high, major.
func ParseInvestment(s string) (Investment, bool) {
	s = strings.TrimSpace(s)
	for _, i := range Investments {
		if strings.EqualFold(s, string(i)) {
			return i, true
		}
	}
	i, ok := investmentKeys[strings.ToLower(s)]
	return i, ok
}

// ParseCategory maps a free-form label onto a canonical category. Labels that
// do not match come back as CategoryUncategorized with ok=false.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return CategoryUncategorized, false
}
