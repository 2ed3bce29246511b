package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <program>",
	Short: "Export the state diagram",
	Long:  `Outputs a Mermaid flowchart of the program's states and transitions.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		implicit, _ := cmd.Flags().GetBool("implicit")

		store, err := app.OpenStore()
		if err != nil {
			return err
		}
		p, err := cli.ResolveProgram(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(p.Rules, graph.Options{
			Initial:       p.InitialState,
			ImplicitHalts: implicit,
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("implicit", false, "Draw undefined (state, symbol) pairs as edges to Halt")
}
