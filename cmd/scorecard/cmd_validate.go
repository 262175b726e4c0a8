package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spboyer/scorecard/internal/validation"
)

func newValidateCommand(_ *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a benchmark or strategy document",
		Long: `Validate a benchmark or strategy input document against its JSON Schema.

Benchmark documents must also name every metric once. Strategy documents must
use a known objective and investment tier. Invalid documents exit with
status 1 and list every problem with its location.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := validation.ParseKind(kind)
			if err != nil {
				return err
			}
			issues, err := validation.ValidateFile(k, args[0])
			if err != nil {
				return err
			}
			if len(issues) > 0 {
				verr := &ValidationError{Path: args[0], Issues: issues}
				printIssues(cmd.OutOrStdout(), verr)
				return verr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid %s document\n", args[0], k) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Document kind: benchmark or strategy")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}
