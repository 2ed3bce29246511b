package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/validator"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <program>",
	Short: "Show a program as a rendered Markdown document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")

		store, err := app.OpenStore()
		if err != nil {
			return err
		}
		p, err := cli.ResolveProgram(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}

		report := validator.Validate(p)
		notes := make([]string, len(report.Issues))
		for i, issue := range report.Issues {
			notes[i] = issue.String()
		}

		render := tui.NewRenderer(plain || !tui.IsTerminal(os.Stdout))
		out, err := render(graph.Describe(p, notes...))
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("plain", false, "Print raw Markdown")
}
