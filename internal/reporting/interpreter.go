package reporting

import (
	"fmt"

	"github.com/spboyer/scorecard/internal/models"
)

// OnTrackBand is the distance from the benchmark, as a fraction, that still
// counts as on track.
const OnTrackBand = 0.10

// InterpretDifference returns a plain-language label for a percent
// difference against the benchmark.
func InterpretDifference(diff *float64) string {
	if diff == nil {
		return "No comparison"
	}
	switch d := *diff; {
	case d > OnTrackBand:
		return "Ahead of benchmark"
	case d >= -OnTrackBand:
		return "On track"
	default:
		return "Behind benchmark"
	}
}

// InterpretPriority explains what a priority means for the chosen objective.
func InterpretPriority(p models.Priority, objective models.Objective) string {
	switch p {
	case models.PriorityHigh:
		return fmt.Sprintf("Primary signal for %s", objective)
	case models.PriorityLow:
		return "Track for context only"
	default:
		return "Supporting signal"
	}
}
