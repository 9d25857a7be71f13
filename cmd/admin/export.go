package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/locvowork/skilltrack/internal/bootstrap"
	"github.com/locvowork/skilltrack/internal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx|file.csv>",
	Short: "Export every employee to a workbook or csv file",
	Args:  cobra.ExactArgs(1),
	RunE: withComponents(func(cmd *cobra.Command, args []string, comp *bootstrap.Components) error {
		format, err := service.ParseExportFormat(strings.TrimPrefix(filepath.Ext(args[0]), "."))
		if err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}

		n, err := comp.Employees.Export(cmd.Context(), f, format)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d employees to %s\n", n, args[0])
		return nil
	}),
}

var templateCmd = &cobra.Command{
	Use:   "template <file.xlsx>",
	Short: "Write an empty import template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := service.WriteImportTemplate(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, templateCmd)
}
