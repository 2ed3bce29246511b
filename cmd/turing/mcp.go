package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Model Context Protocol server",
	Long: `Exposes run_program, list_programs, describe_program and graph_program as MCP
tools, and the stored program names as the turing://programs resource.
Serves on stdio by default; --sse serves over HTTP instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sse, _ := cmd.Flags().GetBool("sse")
		addr, _ := cmd.Flags().GetString("addr")

		store, err := app.OpenStore()
		if err != nil {
			return err
		}
		srv := mcp.NewServer(app.Engine(store), app.Logger)

		if !sse {
			return srv.ServeStdio()
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return srv.ServeSSE(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().String("addr", ":8081", "Address for --sse")
}
