package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/spf13/cobra"
)

var programsCmd = &cobra.Command{
	Use:     "programs",
	Aliases: []string{"p"},
	Short:   "Manage stored programs",
}

var programsSaveCmd = &cobra.Command{
	Use:   "save <file> [name]",
	Short: "Validate a program file and save it to the store",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loader.LoadProgram(args[0])
		if err != nil {
			return err
		}
		if len(args) > 1 {
			p.Name = args[1]
		}

		report := validator.Validate(p)
		if err := report.Err(); err != nil {
			return fmt.Errorf("refusing to save: %w", err)
		}

		store, err := app.OpenStore()
		if err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), p); err != nil {
			return err
		}
		app.Logger.Info("program saved", "program", p.Name, "driver", app.Config.Store.Driver)
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%d rules).\n", p.Name, len(p.Rules))
		return nil
	},
}

var programsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored programs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := app.OpenStore()
		if err != nil {
			return err
		}
		names, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var programsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored program as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := app.OpenStore()
		if err != nil {
			return err
		}
		p, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		data, err := loader.MarshalYAML(p)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var programsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := app.OpenStore()
		if err != nil {
			return err
		}
		return store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(programsCmd)
	programsCmd.AddCommand(programsSaveCmd, programsListCmd, programsShowCmd, programsDeleteCmd)
}
