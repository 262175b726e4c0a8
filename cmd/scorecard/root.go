package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spboyer/scorecard/internal/categorize"
	"github.com/spboyer/scorecard/internal/projectconfig"
)

var version = "dev"

// app carries state shared by every subcommand. cfg is populated in the
// root PersistentPreRunE.
type app struct {
	cfg    *projectconfig.ProjectConfig
	getenv func(string) string
	// newCategorizer is swapped in tests.
	newCategorizer func(projectconfig.CategorizerConfig) (categorize.Categorizer, error)
}

func newApp() *app {
	return &app{
		cfg:            projectconfig.New(),
		getenv:         os.Getenv,
		newCategorizer: defaultCategorizer,
	}
}

func defaultCategorizer(c projectconfig.CategorizerConfig) (categorize.Categorizer, error) {
	return categorize.New(categorize.Options{
		Engine:    c.Engine,
		Model:     c.Model,
		Timeout:   c.TimeoutDuration(),
		Overrides: c.Overrides,
		CacheDir:  c.CacheDir,
		Logger:    slog.Default(),
	})
}

func (a *app) categorizer() (categorize.Categorizer, error) {
	return a.newCategorizer(a.cfg.Categorizer)
}

// closeCategorizer stops any model client c started.
func closeCategorizer(c categorize.Categorizer) {
	if err := categorize.Close(c); err != nil {
		slog.Info("failed to stop categorizer", "error", err)
	}
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scorecard",
		Short: "Scorecard - campaign benchmarks, strategy profiles and deck bundles",
		Long: `Scorecard is a command-line tool for planning marketing campaign scorecards.

It proposes benchmarks from historical uplift, profiles a campaign strategy,
compares actual results against the benchmarks and exports deck bundles for
the slide renderer.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	configDir := cmd.PersistentFlags().String("config-dir", ".", "Directory to search upward from for "+projectconfig.FileName)
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		cfg, err := projectconfig.Load(*configDir)
		if err != nil {
			return err
		}
		if err := cfg.ApplyEnv(a.getenv); err != nil {
			return err
		}
		a.cfg = cfg
		slog.Debug("configuration loaded", "categorizer", cfg.Categorizer.Engine, "session", cfg.Session.Path)
		return nil
	}

	cmd.AddCommand(newBenchmarkCommand(a))
	cmd.AddCommand(newStrategyCommand(a))
	cmd.AddCommand(newCategorizeCommand(a))
	cmd.AddCommand(newValidateCommand(a))
	cmd.AddCommand(newWizardCommand(a))
	cmd.AddCommand(newReportCommand(a))
	cmd.AddCommand(newExportCommand(a))
	cmd.AddCommand(newServeCommand(a))

	return cmd
}

func execute() error {
	return newRootCommand(newApp()).Execute()
}
