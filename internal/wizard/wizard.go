// Package wizard walks a user through the scorecard steps with huh forms.
// It reads and writes a caller-owned session.State; the calculations it
// triggers never see that state.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/spboyer/scorecard/internal/benchmark"
	"github.com/spboyer/scorecard/internal/categorize"
	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/internal/reporting"
	"github.com/spboyer/scorecard/internal/session"
	"github.com/spboyer/scorecard/internal/spinner"
	"github.com/spboyer/scorecard/internal/strategy"
)

// ErrAborted is returned when the user cancels a form.
var ErrAborted = errors.New("wizard aborted")

// Runner drives the wizard. Save is called after every completed step so an
// interrupted run resumes where it stopped.
type Runner struct {
	In  io.Reader
	Out io.Writer

	Catalog  []string
	Defaults []string

	Categorizer categorize.Categorizer
	Save        func(*session.State) error
	Journal     session.Logger
	StatePath   string

	Logger *slog.Logger
	Now    func() time.Time
}

// Run continues the wizard from the state's current step until the user
// stops saving moments.
func (r *Runner) Run(ctx context.Context, st *session.State) error {
	r.record(session.EventSessionStart, session.SessionStartData(r.StatePath, st.Step()))

	for {
		step := st.Step()
		var err error
		switch step {
		case session.StepMetrics:
			err = r.metricsStep(ctx, st)
		case session.StepStrategy:
			err = r.strategyStep(ctx, st)
		case session.StepBenchmarks:
			err = r.benchmarksStep(ctx, st)
		case session.StepScorecard:
			err = r.momentStep(ctx, st)
		case session.StepPresentation:
			var more bool
			more, err = r.confirm(ctx, "Save another scorecard moment?", st.Moments.Names())
			if err == nil && !more {
				fmt.Fprintln(r.Out, "\nAll set. Run `scorecard export --title ...` to build the deck bundle.") //nolint:errcheck
				return nil
			}
			if err == nil {
				err = r.momentStep(ctx, st)
			}
		}
		if err != nil {
			r.record(session.EventError, session.ErrorData(err.Error(), map[string]any{"step": step.String()}))
			return err
		}
		if r.Save != nil {
			if err := r.Save(st); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) metricsStep(ctx context.Context, st *session.State) error {
	preselected := st.Metrics
	if len(preselected) == 0 {
		preselected = r.Defaults
	}

	var opts []huh.Option[string]
	for _, m := range MetricOptions(r.Catalog, preselected) {
		opts = append(opts, huh.NewOption(m, m).Selected(slices.Contains(preselected, m)))
	}

	var answers MetricAnswers
	form := r.newForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Step 1: Metric selection").
				Description("Pick the metrics this campaign will be scored on").
				Options(opts...).
				Value(&answers.Selected),
			huh.NewInput().
				Title("Custom metrics").
				Description("Comma-separated, optional").
				Placeholder("Wishlist adds, Creator codes redeemed").
				Value(&answers.Custom).
				Validate(func(s string) error {
					if len((MetricAnswers{Selected: answers.Selected, Custom: s}).Metrics()) == 0 {
						return session.ErrNoMetrics
					}
					return nil
				}),
		),
	)
	if err := r.run(ctx, form); err != nil {
		return err
	}

	metrics := answers.Metrics()
	if err := st.ConfirmMetrics(metrics, r.categorize(ctx, metrics)); err != nil {
		return err
	}

	uncategorized := 0
	fmt.Fprintln(r.Out, "\nCategories:") //nolint:errcheck
	for _, m := range st.Metrics {
		c := st.Categories[m]
		if !c.IsCanonical() {
			uncategorized++
		}
		fmt.Fprintf(r.Out, "  %-14s %s\n", c, m) //nolint:errcheck
	}
	r.record(session.EventMetricsConfirmed, session.MetricsConfirmedData(st.Metrics, uncategorized))
	return nil
}

// categorize assigns every metric a category while a spinner runs on Out.
// A failing categorizer leaves the metrics Uncategorized.
func (r *Runner) categorize(ctx context.Context, metrics []string) map[string]models.Category {
	var categorizer categorize.Categorizer = categorize.NewStatic(nil)
	if r.Categorizer != nil {
		categorizer = r.Categorizer
	}
	var categories map[string]models.Category
	err := spinner.Run(r.Out, "Categorizing metrics...", func() error {
		var err error
		categories, err = categorizer.Categorize(ctx, metrics)
		return err
	})
	if err != nil {
		r.logger().Warn("categorization failed, metrics stay uncategorized", "error", err)
		return categorize.Complete(metrics, nil)
	}
	return categorize.Complete(metrics, categories)
}

func (r *Runner) strategyStep(ctx context.Context, st *session.State) error {
	var objOpts []huh.Option[models.Objective]
	for _, o := range models.Objectives {
		objOpts = append(objOpts, huh.NewOption(string(o), o))
	}
	var invOpts []huh.Option[models.Investment]
	for _, i := range models.Investments {
		invOpts = append(invOpts, huh.NewOption(string(i), i))
	}

	answers := StrategyAnswers{Objective: models.ObjectiveReach, Investment: models.InvestmentLow}
	form := r.newForm(
		huh.NewGroup(
			huh.NewSelect[models.Objective]().
				Title("Step 2: Primary campaign objective").
				Options(objOpts...).
				Value(&answers.Objective),
			huh.NewSelect[models.Investment]().
				Title("Investment level").
				Options(invOpts...).
				Value(&answers.Investment),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Influencer roster").
				Description("One per line: name, followers, engagement %, avg views, cost per video").
				Placeholder("@creator, 120000, 4.5, 30000, 1500").
				Lines(6).
				Value(&answers.Influencers).
				Validate(func(s string) error {
					_, err := ParseInfluencerLines(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Owned channel average reach").
				Value(&answers.OwnedReach).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("Owned channel average engagement %").
				Value(&answers.OwnedEngagement).
				Validate(validatePercent),
		),
	)
	if err := r.run(ctx, form); err != nil {
		return err
	}

	in, err := BuildStrategyInput(st.Metrics, st.Categories, answers)
	if err != nil {
		return err
	}
	profile := strategy.Profile(in)

	fmt.Fprintln(r.Out) //nolint:errcheck
	if err := reporting.WriteStrategyTable(r.Out, profile); err != nil {
		return err
	}
	if err := st.CompleteStrategy(in, profile); err != nil {
		return err
	}
	r.record(session.EventStrategyCompleted, session.StrategyCompletedData(string(in.Objective), string(in.Investment), len(profile.StrategicConsiderations)))
	return nil
}

func (r *Runner) benchmarksStep(ctx context.Context, st *session.State) error {
	calculate, err := r.confirm(ctx, "Step 3: Calculate proposed benchmarks from past events?", nil)
	if err != nil {
		return err
	}
	if !calculate {
		if err := st.CompleteBenchmarks(nil, nil); err != nil {
			return err
		}
		r.record(session.EventBenchmarksCompleted, session.BenchmarksCompletedData(false, 0))
		return nil
	}

	answers := make([]BenchmarkAnswer, len(st.Metrics))
	groups := make([]*huh.Group, 0, len(st.Metrics))
	for i, m := range st.Metrics {
		answers[i].Metric = m
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("3-month average for %q", m)).
				Value(&answers[i].Average).
				Validate(validateNonNegative),
			huh.NewText().
				Title("Past events").
				Description("One per line: event, baseline (7-day), actual (7-day). Leave a value blank if unknown").
				Placeholder("Reveal trailer, 50000, 82000").
				Lines(4).
				Value(&answers[i].History).
				Validate(func(s string) error {
					_, err := ParseHistoryLines(s)
					return err
				}),
		))
	}
	if err := r.run(ctx, r.newForm(groups...)); err != nil {
		return err
	}

	inputs, err := BuildBenchmarkInputs(answers)
	if err != nil {
		return err
	}
	summary := benchmark.Calculate(inputs)

	fmt.Fprintln(r.Out) //nolint:errcheck
	if err := reporting.WriteBenchmarkTable(r.Out, summary); err != nil {
		return err
	}
	if err := st.CompleteBenchmarks(inputs, summary); err != nil {
		return err
	}
	r.record(session.EventBenchmarksCompleted, session.BenchmarksCompletedData(true, len(summary.ProposedBenchmarks)))
	return nil
}

func (r *Runner) momentStep(ctx context.Context, st *session.State) error {
	rows := st.ScorecardRows()
	answers := make([]RowAnswer, len(rows))
	groups := make([]*huh.Group, 0, len(rows)+1)
	for i, row := range rows {
		answers[i].Benchmark = FormatOptional(row.Benchmark)
		groups = append(groups, huh.NewGroup(
			huh.NewNote().
				Title(row.Metric).
				Description(fmt.Sprintf("Category: %s", row.Category)),
			huh.NewInput().
				Title("Benchmark").
				Value(&answers[i].Benchmark).
				Validate(validateOptional),
			huh.NewInput().
				Title("Actual").
				Value(&answers[i].Actual).
				Validate(validateOptional),
		))
	}
	var name string
	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Step 4: Name this scorecard moment").
			Placeholder("Pre-Reveal, Launch Week").
			Value(&name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("moment name is required")
				}
				return nil
			}),
	))
	if err := r.run(ctx, r.newForm(groups...)); err != nil {
		return err
	}

	filled, err := ApplyRowAnswers(rows, answers)
	if err != nil {
		return err
	}
	if err := st.SaveMoment(name, filled, r.now()); err != nil {
		return err
	}

	fmt.Fprintf(r.Out, "\nSaved moment %q\n", strings.TrimSpace(name)) //nolint:errcheck
	if err := reporting.WriteScorecardTable(r.Out, filled); err != nil {
		return err
	}
	r.record(session.EventMomentSaved, session.MomentSavedData(strings.TrimSpace(name), len(filled)))
	return nil
}

func (r *Runner) confirm(ctx context.Context, title string, saved []string) (bool, error) {
	yes := true
	c := huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&yes)
	if len(saved) > 0 {
		c = c.Description("Saved so far: " + strings.Join(saved, ", "))
	}
	if err := r.run(ctx, r.newForm(huh.NewGroup(c))); err != nil {
		return false, err
	}
	return yes, nil
}

// newForm uses accessible mode for non-TTY input (tests, piped input).
func (r *Runner) newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).
		WithInput(r.In).
		WithOutput(r.Out)
	if f, ok := r.In.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}
	return form
}

func (r *Runner) run(ctx context.Context, form *huh.Form) error {
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}

func (r *Runner) record(t session.EventType, data map[string]any) {
	if r.Journal == nil {
		return
	}
	if err := r.Journal.Log(session.NewEvent(t, data)); err != nil {
		r.logger().Debug("journal write failed", "error", err)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func validateNonNegative(s string) error {
	v, err := ParseNumber(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validatePercent(s string) error {
	v, err := ParseNumber(s)
	if err != nil {
		return err
	}
	if v < 0 || v > 100 {
		return errors.New("must be between 0 and 100")
	}
	return nil
}

func validateOptional(s string) error {
	_, err := ParseOptionalNumber(s)
	return err
}
