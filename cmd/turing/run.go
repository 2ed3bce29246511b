package main

import (
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var (
	runOpts      cli.RunOptions
	runOverrides cli.Overrides
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [program]",
	Short: "Run a program until it halts",
	Long: `Runs a program file (rules text, YAML or JSON) or a stored program by name.
Without an argument it reads rules.txt from the current directory.
Each step prints the state entered and the symbol under the head.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := "rules.txt"
		if len(args) > 0 {
			ref = args[0]
		}

		store, err := app.OpenStore()
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		p, err := cli.ResolveProgram(ctx, store, ref)
		if err != nil {
			return err
		}
		if err := runOverrides.Apply(p); err != nil {
			return err
		}

		opts := runOpts
		if !cmd.Flags().Changed("max-steps") {
			opts.MaxSteps = app.Config.MaxSteps
		}
		if !cmd.Flags().Changed("color") {
			opts.Color = app.Config.Color
		}
		if opts.Banner && !tui.IsTerminal(os.Stdout) {
			opts.Banner = false
		}

		_, err = cli.RunProgram(ctx, app.Engine(store), p, cmd.OutOrStdout(), opts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runOpts.Output, "output", "o", cli.OutputText, "Output: text, json (NDJSON events) or quiet")
	runCmd.Flags().BoolVar(&runOpts.ShowTape, "show-tape", false, "Print the final tape with the head marked")
	runCmd.Flags().BoolVar(&runOpts.PrintRules, "print-rules", true, "Print the rule table before running")
	runCmd.Flags().BoolVar(&runOpts.Banner, "banner", false, "Print the banner (terminals only)")
	runCmd.Flags().IntVar(&runOpts.MaxSteps, "max-steps", 0, "Stop after this many steps (0 = unbounded; default from config)")
	runCmd.Flags().StringVar(&runOpts.Color, "color", "auto", "Colour: auto, always, never")
	runCmd.Flags().StringVar(&runOverrides.State, "state", "", "Override the initial state (A, B, C)")
	runCmd.Flags().StringVar(&runOverrides.Tape, "tape", "", "Override the initial tape (e.g. 0100 or \"0, 1, Blank\")")
}
