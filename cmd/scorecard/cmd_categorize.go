package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/spboyer/scorecard/internal/cache"
	"github.com/spboyer/scorecard/internal/reporting"
	"github.com/spboyer/scorecard/internal/session"
)

func newCategorizeCommand(a *app) *cobra.Command {
	var asJSON bool
	var clearCache bool

	cmd := &cobra.Command{
		Use:   "categorize <metric>...",
		Short: "Assign metrics to Reach, Depth or Action",
		Long: `Assign each metric to a funnel category with the configured engine.

The static engine uses keyword rules plus the overrides in .scorecard.yaml.
The copilot engine asks a model and falls back to the keyword rules when the
call fails; its answers are cached in categorizer.cache_dir. Metrics no engine can place are reported as Uncategorized.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearCache {
				if err := cache.New(a.cfg.Categorizer.CacheDir).Clear(); err != nil {
					return err
				}
			}
			metrics := session.DedupeMetrics(args)
			if len(metrics) == 0 {
				return fmt.Errorf("no metric names given")
			}
			cats, err := a.categorize(cmd, metrics)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return reporting.WriteJSON(out, cats)
			}
			width := 0
			for _, m := range metrics {
				width = max(width, runewidth.StringWidth(m))
			}
			for _, m := range metrics {
				fmt.Fprintf(out, "%s  %s\n", runewidth.FillRight(m, width), cats[m]) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the categories as JSON")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "Forget cached model answers first")

	return cmd
}
