package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spboyer/scorecard/internal/reporting"
	"github.com/spboyer/scorecard/internal/session"
)

func newReportCommand(a *app) *cobra.Command {
	var sessionPath string
	var title string
	var asHTML bool
	var outFile string
	var timeline bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the saved session as a report",
		Long: `Render the saved wizard session as Markdown, or as a standalone HTML page
with --html. The report covers the strategy profile, the benchmark summary
and every saved scorecard moment.

With --timeline the session journal is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := session.NewStore(a.sessionPath(sessionPath))

			var out io.Writer = cmd.OutOrStdout()
			if outFile != "" {
				f, err := os.Create(outFile)
				if err != nil {
					return err
				}
				defer f.Close() //nolint:errcheck
				out = f
			}

			if timeline {
				events, err := session.ReadEvents(store.JournalPath())
				if err != nil {
					return err
				}
				session.RenderTimeline(out, events)
				return nil
			}

			st, err := store.Load()
			if err != nil {
				return err
			}
			rep := reporting.FromState(title, st, now())

			var doc string
			if asHTML {
				doc, err = reporting.RenderHTML(rep)
			} else {
				doc, err = reporting.RenderMarkdown(rep)
			}
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, doc)
			return err
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", "", "Session file (default from .scorecard.yaml)")
	cmd.Flags().StringVar(&title, "title", reporting.DefaultTitle, "Report title")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render HTML instead of Markdown")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the report to a file")
	cmd.Flags().BoolVar(&timeline, "timeline", false, "Print the session journal")

	return cmd
}
