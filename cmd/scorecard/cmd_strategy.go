package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spboyer/scorecard/internal/categorize"
	"github.com/spboyer/scorecard/internal/dataset"
	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/internal/reporting"
	"github.com/spboyer/scorecard/internal/spinner"
	"github.com/spboyer/scorecard/internal/strategy"
	"github.com/spboyer/scorecard/internal/validation"
)

func newStrategyCommand(a *app) *cobra.Command {
	var influencersCSV string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "strategy <input.yaml|json>",
		Short: "Profile a campaign strategy",
		Long: `Profile a campaign strategy from its objective, investment tier, metric
selection, influencer roster and owned-channel stats.

Objective and investment accept their full labels or the short keys
reach|engagement|conversion and low|medium|high|major. When the document
has no categories the configured categorizer assigns them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat = normalizeFormat(outputFormat)
			if err := checkFormat(outputFormat); err != nil {
				return err
			}

			var in strategy.Input
			if err := loadDocument(validation.KindStrategy, args[0], &in); err != nil {
				var verr *ValidationError
				if errors.As(err, &verr) {
					printIssues(cmd.ErrOrStderr(), verr)
				}
				return err
			}
			if influencersCSV != "" {
				extra, err := dataset.LoadInfluencersCSV(influencersCSV)
				if err != nil {
					return err
				}
				in.Influencers = append(in.Influencers, extra...)
			}
			in = strategy.Normalize(in)

			if len(in.Categories) == 0 {
				cats, err := a.categorize(cmd, in.Metrics)
				if err != nil {
					return err
				}
				in.Categories = cats
			} else {
				in.Categories = categorize.Complete(in.Metrics, in.Categories)
			}

			profile := strategy.Profile(in)
			out := cmd.OutOrStdout()
			switch outputFormat {
			case formatJSON:
				return reporting.WriteJSON(out, struct {
					Input   strategy.Input          `json:"input"`
					Profile *models.StrategyProfile `json:"profile"`
				}{in, profile})
			case formatMarkdown:
				md, err := reporting.RenderMarkdown(&reporting.Report{Title: "Strategy", GeneratedAt: now(), Strategy: &in, Profile: profile})
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, md)
				return err
			default:
				fmt.Fprintf(out, "Objective:  %s\nInvestment: %s\n\n", in.Objective, in.Investment) //nolint:errcheck
				return reporting.WriteStrategyTable(out, profile)
			}
		},
	}

	cmd.Flags().StringVar(&influencersCSV, "influencers-csv", "", "CSV of influencers to add to the roster")
	cmd.Flags().StringVar(&outputFormat, "format", formatTable, "Output format: table, json or markdown")

	return cmd
}

// categorize runs the configured categorizer with a spinner on stderr and
// fills every metric in.
func (a *app) categorize(cmd *cobra.Command, metrics []string) (map[string]models.Category, error) {
	c, err := a.categorizer()
	if err != nil {
		return nil, err
	}
	defer closeCategorizer(c)
	var cats map[string]models.Category
	err = spinner.Run(cmd.ErrOrStderr(), "Categorizing metrics...", func() error {
		var err error
		cats, err = c.Categorize(cmd.Context(), metrics)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("categorizing metrics: %w", err)
	}
	return categorize.Complete(metrics, cats), nil
}
