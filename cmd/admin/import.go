package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/locvowork/skilltrack/internal/bootstrap"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import employees from an .xlsx or .csv file",
	Args:  cobra.ExactArgs(1),
	RunE: withComponents(func(cmd *cobra.Command, args []string, comp *bootstrap.Components) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		report, err := comp.Imports.Import(cmd.Context(), f, filepath.Base(args[0]))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "run %s: processed %d, created %d, updated %d, skipped %d, rows with warnings %d\n",
			report.RunID, report.Processed, report.Created, report.Updated, report.Skipped, report.WarnedRows)
		for _, w := range report.Warnings {
			fmt.Fprintln(out, "  "+w)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(importCmd)
}
