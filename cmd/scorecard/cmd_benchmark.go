package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/spboyer/scorecard/internal/benchmark"
	"github.com/spboyer/scorecard/internal/dataset"
	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/internal/reporting"
	"github.com/spboyer/scorecard/internal/validation"
)

func newBenchmarkCommand(a *app) *cobra.Command {
	var historyCSV string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "benchmark <input.yaml|json>",
		Short: "Propose benchmarks from historical uplift",
		Long: `Propose a benchmark for every metric in the input document.

Each metric's proposed benchmark is its three-month average multiplied by the
mean actual/baseline uplift across its historical events. Events with a
missing or non-positive baseline are skipped.

Extra history rows can be appended from a CSV with the columns
metric, event_name, baseline, actual and an optional three_month_average.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat = normalizeFormat(outputFormat)
			if err := checkFormat(outputFormat); err != nil {
				return err
			}
			if len(args) == 0 && historyCSV == "" {
				return errors.New("provide an input document or --history-csv")
			}

			var doc models.BenchmarkDocument
			if len(args) == 1 {
				if err := loadDocument(validation.KindBenchmark, args[0], &doc); err != nil {
					var verr *ValidationError
					if errors.As(err, &verr) {
						printIssues(cmd.ErrOrStderr(), verr)
					}
					return err
				}
			}
			if historyCSV != "" {
				extra, err := dataset.LoadHistoryCSV(historyCSV)
				if err != nil {
					return err
				}
				doc.Metrics = dataset.MergeHistory(doc.Metrics, extra)
			}

			summary := benchmark.Calculate(doc.Metrics)
			out := cmd.OutOrStdout()
			switch outputFormat {
			case formatJSON:
				return reporting.WriteJSON(out, summary)
			case formatMarkdown:
				md, err := reporting.RenderMarkdown(&reporting.Report{Title: "Benchmarks", GeneratedAt: now(), Summary: summary})
				if err != nil {
					return err
				}
				_, err = out.Write([]byte(md))
				return err
			default:
				return reporting.WriteBenchmarkTable(out, summary)
			}
		},
	}

	cmd.Flags().StringVar(&historyCSV, "history-csv", "", "CSV of historical events to merge into the input")
	cmd.Flags().StringVar(&outputFormat, "format", formatTable, "Output format: table, json or markdown")

	return cmd
}
