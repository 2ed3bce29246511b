package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <program>",
	Short: "Check a program for consistency",
	Long: `Parses a program and reports duplicate rules, rules that can never fire,
unreachable states and states that halt implicitly.
Exits non-zero only on errors; warnings are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := app.OpenStore()
		if err != nil {
			return err
		}
		p, err := cli.ResolveProgram(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}

		report := validator.Validate(p)
		out := cmd.OutOrStdout()
		for _, issue := range report.Issues {
			fmt.Fprintln(out, issue)
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Fprintf(out, "Program %q is valid (%d rules, %d warnings).\n",
			p.Name, len(p.Rules), report.Count(validator.SeverityWarning))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
