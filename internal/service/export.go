package service

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/catalog"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/importer"
	"github.com/locvowork/skilltrack/pkg/simpleexcel"
)

//go:embed layouts/employees_export.yaml
var employeeExportLayout string

// ExportFormat selects the file type written by Export.
type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

// ParseExportFormat accepts xlsx (also the empty string) or csv.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", ExportXLSX:
		return ExportXLSX, nil
	case ExportCSV:
		return ExportCSV, nil
	}
	return "", apperrors.NewValidationError("format", fmt.Sprintf("%q is not a valid choice.", s))
}

// Export writes every employee, newest first, as an xlsx workbook or a csv
// file. Choice columns carry their display labels, which the importer accepts back.
func (s *EmployeeService) Export(ctx context.Context, w io.Writer, format ExportFormat) (int, error) {
	var employees []domain.Employee
	if err := s.repos.Employees.Each(ctx, func(e *domain.Employee) error {
		employees = append(employees, *e)
		return nil
	}); err != nil {
		return 0, err
	}

	exporter, err := simpleexcel.NewDataExporterFromYamlConfig(employeeExportLayout)
	if err != nil {
		return 0, fmt.Errorf("load export layout: %w", err)
	}
	for _, kind := range []catalog.Kind{catalog.Gender, catalog.Plant, catalog.AreaOfWork, catalog.Category, catalog.SkillLevel, catalog.SLStatus} {
		exporter.RegisterFormatter(string(kind), s.labelFormatter(kind))
	}
	exporter.BindSectionData("employees", employees)

	write := exporter.StreamTo
	if format == ExportCSV {
		write = exporter.ToCSV
	}
	if err := write(w); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	return len(employees), nil
}

func (s *EmployeeService) labelFormatter(kind catalog.Kind) func(interface{}) interface{} {
	return func(v interface{}) interface{} {
		str, ok := v.(string)
		if !ok || str == "" {
			return v
		}
		return s.catalog.Label(kind, str)
	}
}

// WriteImportTemplate writes an empty import sheet holding only the header row.
func WriteImportTemplate(w io.Writer) error {
	columns := make([]simpleexcel.ColumnConfig, 0, len(importer.Columns))
	for _, h := range importer.TemplateHeaders() {
		columns = append(columns, simpleexcel.ColumnConfig{FieldName: h, Header: h, Width: float64(len(h) + 4)})
	}

	return simpleexcel.NewDataExporter().
		AddSheet("Employees").
		AddSection(&simpleexcel.SectionConfig{
			ShowHeader:  true,
			HeaderStyle: &simpleexcel.StyleTemplate{Font: &simpleexcel.FontTemplate{Bold: true}},
			Columns:     columns,
		}).
		Build().
		StreamTo(w)
}
