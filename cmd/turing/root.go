package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/config"
	"github.com/spf13/cobra"
)

var (
	flags cli.Flags
	app   *cli.App
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing runs deterministic single-tape Turing machines",
	Long: `Turing loads rule tables (state,symbol,write,move,next), runs them on a tape
that grows with Blank cells at both ends, and halts on the first (state, symbol)
pair without a rule.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		app, err = cli.Bootstrap(flags)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		return app.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if app != nil {
			_ = app.Close()
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", config.DefaultPath, "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.LogFile, "log-file", "", "Also write JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&flags.Store, "store", "", "Program store driver: memory, file, redis")
}
