package strategy

import (
	"math"

	"github.com/spboyer/scorecard/internal/metrics"
	"github.com/spboyer/scorecard/internal/models"
)

// InfluencerTotals aggregates a roster.
type InfluencerTotals struct {
	PotentialReach   int64
	ProjectedEngaged float64
	AverageCPV       *float64
	CPVInfluencers   int
	ExcludedFromCPV  []string
}

// AggregateInfluencers sums reach and engaged audience across the roster and
// averages cost per view over influencers with recorded views. Negative
// counts are treated as zero and engagement is clamped to [0, 100]. NaN or
// infinite engagement and cost count as zero.
func AggregateInfluencers(roster []models.InfluencerProfile) InfluencerTotals {
	var totals InfluencerTotals
	var cpvs []float64

	for _, inf := range roster {
		followers := max(inf.FollowerCount, 0)
		rate := min(max(finiteOrZero(inf.EngagementRatePercent), 0), 100) / 100.0

		totals.PotentialReach += followers
		totals.ProjectedEngaged += float64(followers) * rate

		if inf.AverageViews > 0 {
			cost := max(finiteOrZero(inf.CostPerVideo), 0)
			cpvs = append(cpvs, cost/float64(inf.AverageViews))
		} else {
			totals.ExcludedFromCPV = append(totals.ExcludedFromCPV, inf.Name)
		}
	}

	totals.AverageCPV = metrics.MeanOf(cpvs)
	totals.CPVInfluencers = len(cpvs)
	return totals
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
