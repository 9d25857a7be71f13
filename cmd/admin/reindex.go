package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locvowork/skilltrack/internal/bootstrap"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the employee search index from the database",
	Args:  cobra.NoArgs,
	RunE: withComponents(func(cmd *cobra.Command, _ []string, comp *bootstrap.Components) error {
		if n, _ := cmd.Flags().GetInt("batch"); n > 0 {
			comp.Reindex.BatchSize = n
		}
		if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
			comp.Reindex.Workers = n
		}

		n, err := comp.Reindex.Reindex(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "indexed %d employees\n", n)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(reindexCmd)
	reindexCmd.Flags().Int("batch", 0, "Employees per bulk request")
	reindexCmd.Flags().Int("workers", 0, "Concurrent bulk requests")
}
