package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locvowork/skilltrack/internal/bootstrap"
	"github.com/locvowork/skilltrack/internal/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed catalog or sample data",
}

var seedModulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Create or refresh the default training modules",
	Args:  cobra.NoArgs,
	RunE: withComponents(func(cmd *cobra.Command, _ []string, comp *bootstrap.Components) error {
		created, updated, err := comp.Seeder.SeedTrainingModules(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "training modules: %d created, %d updated\n", created, updated)
		return nil
	}),
}

var seedSampleCmd = &cobra.Command{
	Use:   "sample [small|medium|large]",
	Short: "Create sample employees with their records",
	Args:  cobra.MaximumNArgs(1),
	RunE: withComponents(func(cmd *cobra.Command, args []string, comp *bootstrap.Components) error {
		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			preset := database.PresetMedium
			if len(args) == 1 {
				preset = database.SeedPreset(args[0])
			}
			count = database.GetPresetSize(preset)
		}

		created, err := comp.Seeder.SeedSampleData(cmd.Context(), count)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sample employees: %d created\n", created)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedModulesCmd, seedSampleCmd)
	seedSampleCmd.Flags().Int("count", 0, "Number of employees (overrides the preset)")
}
