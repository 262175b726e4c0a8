package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spboyer/scorecard/internal/session"
	"github.com/spboyer/scorecard/internal/wizard"
)

func newWizardCommand(a *app) *cobra.Command {
	var sessionPath string
	var reset bool

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Build a scorecard step by step",
		Long: `Walk through the scorecard steps interactively: metric selection, strategy,
benchmarks, then scorecard moments.

Progress is saved after every step, so running the wizard again resumes at
the first unfinished step. Use --reset to start over.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := session.NewStore(a.sessionPath(sessionPath))
			if reset {
				if err := store.Reset(); err != nil {
					return err
				}
			}
			st, err := store.Load()
			if err != nil {
				return err
			}

			journal, err := session.NewJSONLogger(store.JournalPath())
			if err != nil {
				slog.Warn("session journal disabled", "error", err)
			}
			var logger session.Logger = session.NopLogger{}
			if journal != nil {
				logger = journal
				defer journal.Close() //nolint:errcheck
			}
			if reset {
				logger.Log(session.NewEvent(session.EventSessionReset, nil)) //nolint:errcheck
			}

			c, err := a.categorizer()
			if err != nil {
				return err
			}
			defer closeCategorizer(c)

			r := &wizard.Runner{
				In:          cmd.InOrStdin(),
				Out:         cmd.OutOrStdout(),
				Catalog:     a.cfg.Metrics.Catalog,
				Defaults:    a.cfg.Metrics.Default,
				Categorizer: c,
				Save:        store.Save,
				Journal:     logger,
				StatePath:   store.Path(),
				Logger:      slog.Default(),
			}
			err = r.Run(cmd.Context(), st)
			if errors.Is(err, wizard.ErrAborted) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wizard stopped. Progress is saved in %s\n", store.Path()) //nolint:errcheck
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", "", "Session file (default from .scorecard.yaml)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Discard the saved session and start over")

	return cmd
}

func (a *app) sessionPath(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Session.Path
}
