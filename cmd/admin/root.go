package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/locvowork/skilltrack/internal/bootstrap"
	"github.com/locvowork/skilltrack/internal/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "admin",
	Short:        "Administrative tasks for the skilltrack store",
	Long:         "Imports and exports employee spreadsheets, seeds catalog and sample data and rebuilds the search index.",
	SilenceUsage: true,
}

// Execute runs the command line with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// withComponents sets up configuration, logging and storage before run and
// closes them afterwards.
func withComponents(run func(cmd *cobra.Command, args []string, comp *bootstrap.Components) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := logger.WithLogger(cmd.Context(), map[string]interface{}{"command": cmd.CommandPath()})
		cmd.SetContext(ctx)

		comp, err := bootstrap.Setup(ctx)
		if err != nil {
			return err
		}
		defer comp.Close()

		return run(cmd, args, comp)
	}
}
