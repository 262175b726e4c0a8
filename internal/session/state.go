// Package session holds the wizard's progress as an explicit, caller-owned
// State, persists it as YAML and journals each completed step.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/internal/scorecard"
	"github.com/spboyer/scorecard/internal/strategy"
)

var (
	// ErrStepOutOfOrder is returned when a transition is called before its
	// prerequisites are met or after its step was already completed.
	ErrStepOutOfOrder = errors.New("wizard step out of order")

	// ErrNoMetrics is returned when confirming an empty metric selection.
	ErrNoMetrics = errors.New("at least one metric is required")
)

// Step is a stage of the wizard.
type Step int

const (
	StepMetrics Step = iota
	StepStrategy
	StepBenchmarks
	StepScorecard
	StepPresentation
)

var stepNames = [...]string{"metrics", "strategy", "benchmarks", "scorecard", "presentation"}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// State is everything entered so far. The zero value is a fresh session.
type State struct {
	Metrics          []string                      `yaml:"metrics,omitempty"`
	MetricsConfirmed bool                          `yaml:"metrics_confirmed,omitempty"`
	Categories       map[string]models.Category    `yaml:"categories,omitempty"`
	Strategy         *strategy.Input               `yaml:"strategy,omitempty"`
	Profile          *models.StrategyProfile       `yaml:"profile,omitempty"`
	BenchmarksDone   bool                          `yaml:"benchmarks_done,omitempty"`
	UseBenchmarks    bool                          `yaml:"use_benchmarks,omitempty"`
	BenchmarkInputs  []models.MetricBenchmarkInput `yaml:"benchmark_inputs,omitempty"`
	Summary          *models.BenchmarkSummary      `yaml:"summary,omitempty"`
	Moments          scorecard.Moments             `yaml:"moments,omitempty"`
	UpdatedAt        time.Time                     `yaml:"updated_at,omitempty"`
}

// Step derives the current wizard step from what has been completed.
func (s *State) Step() Step {
	switch {
	case !s.MetricsConfirmed:
		return StepMetrics
	case s.Profile == nil:
		return StepStrategy
	case !s.BenchmarksDone:
		return StepBenchmarks
	case len(s.Moments) == 0:
		return StepScorecard
	default:
		return StepPresentation
	}
}

func (s *State) expect(steps ...Step) error {
	cur := s.Step()
	for _, st := range steps {
		if cur == st {
			return nil
		}
	}
	return fmt.Errorf("%w: at %s", ErrStepOutOfOrder, cur)
}

// ConfirmMetrics fixes the metric selection. Names are trimmed and
// de-duplicated keeping the first occurrence.
func (s *State) ConfirmMetrics(metrics []string, categories map[string]models.Category) error {
	if err := s.expect(StepMetrics); err != nil {
		return err
	}
	clean := DedupeMetrics(metrics)
	if len(clean) == 0 {
		return ErrNoMetrics
	}
	s.Metrics = clean
	s.Categories = make(map[string]models.Category, len(clean))
	for _, m := range clean {
		if c, ok := categories[m]; ok {
			s.Categories[m] = c
		}
	}
	s.MetricsConfirmed = true
	return nil
}

// CompleteStrategy records the strategy input and the profile computed from it.
func (s *State) CompleteStrategy(in strategy.Input, profile *models.StrategyProfile) error {
	if err := s.expect(StepStrategy); err != nil {
		return err
	}
	if profile == nil {
		return errors.New("strategy profile is required")
	}
	s.Strategy = &in
	s.Profile = profile
	return nil
}

// CompleteBenchmarks records the benchmark step. A nil summary means the user
// skipped the calculation.
func (s *State) CompleteBenchmarks(inputs []models.MetricBenchmarkInput, summary *models.BenchmarkSummary) error {
	if err := s.expect(StepBenchmarks); err != nil {
		return err
	}
	s.BenchmarksDone = true
	s.UseBenchmarks = summary != nil
	s.BenchmarkInputs = inputs
	s.Summary = summary
	return nil
}

// ScorecardRows builds fresh rows for the confirmed metrics, prefilled from
// the benchmark summary when one was calculated.
func (s *State) ScorecardRows() []scorecard.Row {
	return scorecard.Build(s.Metrics, s.Categories, s.Summary)
}

// SaveMoment stores rows under name. Saving is allowed once benchmarks are
// done; a second save with the same name replaces the first.
func (s *State) SaveMoment(name string, rows []scorecard.Row, at time.Time) error {
	if err := s.expect(StepScorecard, StepPresentation); err != nil {
		return err
	}
	ms, err := s.Moments.Save(name, rows, at)
	if err != nil {
		return err
	}
	s.Moments = ms
	return nil
}

// DedupeMetrics trims names, drops blanks and keeps the first of each name.
func DedupeMetrics(metrics []string) []string {
	seen := make(map[string]bool, len(metrics))
	out := make([]string, 0, len(metrics))
	for _, m := range metrics {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
