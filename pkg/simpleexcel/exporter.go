package simpleexcel

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Types
// =============================================================================

// DataExporter renders bound data into workbook sheets.
type DataExporter struct {
	template *ReportTemplate
	// data holds data bound to specific section IDs (for YAML flow)
	data map[string]interface{}
	// sheets holds manually added sheets (for programmatic flow)
	sheets     []*SheetBuilder
	formatters map[string]func(interface{}) interface{}
}

// ReportTemplate represents the YAML structure.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate represents a sheet in the YAML.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig defines a block of rows in a sheet. Sections are stacked vertically.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Data        interface{}    `yaml:"-"` // Data is bound at runtime
	ShowHeader  bool           `yaml:"show_header"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig defines a column in a section.
type ColumnConfig struct {
	FieldName     string  `yaml:"field_name"` // Struct field name, json tag or map key
	Header        string  `yaml:"header"`
	Width         float64 `yaml:"width"`
	FormatterName string  `yaml:"formatter"` // Name of registered formatter
}

// StyleTemplate defines basic styling.
type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // Hex color
}

type FillTemplate struct {
	Color string `yaml:"color"` // Hex color
}

// =============================================================================
// Constructors
// =============================================================================

func NewDataExporter() *DataExporter {
	return &DataExporter{
		data:       make(map[string]interface{}),
		formatters: make(map[string]func(interface{}) interface{}),
	}
}

// NewDataExporterFromYamlConfig parses a report layout.
func NewDataExporterFromYamlConfig(yamlConfig string) (*DataExporter, error) {
	var tmpl ReportTemplate
	if err := yaml.Unmarshal([]byte(yamlConfig), &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	e := NewDataExporter()
	e.template = &tmpl
	return e, nil
}

// =============================================================================
// Fluent API
// =============================================================================

// AddSheet starts a new sheet builder.
func (e *DataExporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{exporter: e, name: name}
	e.sheets = append(e.sheets, sb)
	return sb
}

// BindSectionData binds data to a section ID (for YAML-based export).
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

// RegisterFormatter registers a value formatter referenced by columns by name.
func (e *DataExporter) RegisterFormatter(name string, fn func(interface{}) interface{}) *DataExporter {
	e.formatters[name] = fn
	return e
}

type SheetBuilder struct {
	exporter *DataExporter
	name     string
	sections []*SectionConfig
}

func (sb *SheetBuilder) AddSection(config *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, config)
	return sb
}

func (sb *SheetBuilder) Build() *DataExporter {
	return sb.exporter
}

// allSheets merges programmatic sheets with template sheets bound to their data.
func (e *DataExporter) allSheets() []*SheetBuilder {
	sheets := append([]*SheetBuilder{}, e.sheets...)
	if e.template == nil {
		return sheets
	}
	for _, st := range e.template.Sheets {
		sb := &SheetBuilder{exporter: e, name: st.Name}
		for j := range st.Sections {
			sec := st.Sections[j]
			if data, ok := e.data[sec.ID]; ok {
				sec.Data = data
			}
			sb.sections = append(sb.sections, &sec)
		}
		sheets = append(sheets, sb)
	}
	return sheets
}

// =============================================================================
// Output
// =============================================================================

// BuildExcel renders every sheet with a stream writer and returns the workbook.
func (e *DataExporter) BuildExcel() (*excelize.File, error) {
	f := excelize.NewFile()
	for i, sb := range e.allSheets() {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sb.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sb.name); err != nil {
			return nil, err
		}

		sw, err := f.NewStreamWriter(sb.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create stream writer: %w", err)
		}
		if err := e.streamSections(f, sw, sb.sections); err != nil {
			return nil, err
		}
		if err := sw.Flush(); err != nil {
			return nil, fmt.Errorf("failed to flush stream: %w", err)
		}
	}
	return f, nil
}

// StreamTo writes the workbook to w.
func (e *DataExporter) StreamTo(w io.Writer) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// ToCSV writes the first sheet as CSV without building a workbook.
func (e *DataExporter) ToCSV(w io.Writer) error {
	sheets := e.allSheets()
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets found")
	}

	cw := csv.NewWriter(w)
	err := e.walkRows(sheets[0].sections, func(_ rowKind, _ *SectionConfig, values []interface{}) error {
		record := make([]string, len(values))
		for i, v := range values {
			if v != nil {
				record[i] = fmt.Sprint(v)
			}
		}
		return cw.Write(record)
	})
	if err != nil {
		return fmt.Errorf("error writing CSV row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// =============================================================================
// Rendering Logic
// =============================================================================

type rowKind int

const (
	titleRow rowKind = iota
	headerRow
	dataRow
	blankRow
)

// walkRows yields every row of the sections in sheet order.
func (e *DataExporter) walkRows(sections []*SectionConfig, fn func(kind rowKind, sec *SectionConfig, values []interface{}) error) error {
	for i, sec := range sections {
		if i > 0 {
			if err := fn(blankRow, sec, nil); err != nil {
				return err
			}
		}
		if sec.Title != "" {
			if err := fn(titleRow, sec, []interface{}{sec.Title}); err != nil {
				return err
			}
		}
		if sec.ShowHeader && len(sec.Columns) > 0 {
			headers := make([]interface{}, len(sec.Columns))
			for j, col := range sec.Columns {
				headers[j] = col.Header
			}
			if err := fn(headerRow, sec, headers); err != nil {
				return err
			}
		}

		v := reflect.ValueOf(sec.Data)
		if v.Kind() != reflect.Slice {
			continue
		}
		for r := 0; r < v.Len(); r++ {
			item := v.Index(r)
			row := make([]interface{}, len(sec.Columns))
			for j, col := range sec.Columns {
				val := extractValue(item, col.FieldName)
				if fmtFunc, ok := e.formatters[col.FormatterName]; ok {
					val = fmtFunc(val)
				}
				row[j] = val
			}
			if err := fn(dataRow, sec, row); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *DataExporter) streamSections(f *excelize.File, sw *excelize.StreamWriter, sections []*SectionConfig) error {
	// Stream writers accept column widths only before the first row.
	sized := map[int]bool{}
	for _, sec := range sections {
		for i, col := range sec.Columns {
			if col.Width > 0 && !sized[i] {
				if err := sw.SetColWidth(i+1, i+1, col.Width); err != nil {
					return err
				}
				sized[i] = true
			}
		}
	}

	rowNum := 1
	return e.walkRows(sections, func(kind rowKind, sec *SectionConfig, values []interface{}) error {
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		rowNum++

		var opts []excelize.RowOpts
		switch kind {
		case blankRow:
			return nil
		case titleRow:
			if sec.TitleStyle != nil {
				id, err := createStyle(f, sec.TitleStyle)
				if err != nil {
					return err
				}
				opts = append(opts, excelize.RowOpts{StyleID: id})
			}
		case headerRow:
			if sec.HeaderStyle != nil {
				id, err := createStyle(f, sec.HeaderStyle)
				if err != nil {
					return err
				}
				opts = append(opts, excelize.RowOpts{StyleID: id})
			}
		}

		if err := sw.SetRow(cell, values, opts...); err != nil {
			return fmt.Errorf("error writing row %d: %w", rowNum-1, err)
		}
		return nil
	})
}

// extractValue reads fieldName from a struct (by field name or json tag) or map.
// Nil pointers become empty cells and fmt.Stringer values are written as text.
func extractValue(item reflect.Value, fieldName string) interface{} {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return ""
		}
		item = item.Elem()
	}

	var field reflect.Value
	switch item.Kind() {
	case reflect.Struct:
		field = item.FieldByName(fieldName)
		if !field.IsValid() {
			field = fieldByJSONTag(item, fieldName)
		}
	case reflect.Map:
		field = item.MapIndex(reflect.ValueOf(fieldName))
	}
	if !field.IsValid() {
		return ""
	}

	for field.Kind() == reflect.Ptr || field.Kind() == reflect.Interface {
		if field.IsNil() {
			return ""
		}
		field = field.Elem()
	}
	if s, ok := field.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return field.Interface()
}

func fieldByJSONTag(item reflect.Value, name string) reflect.Value {
	t := item.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && item.Field(i).Kind() == reflect.Struct {
			if v := fieldByJSONTag(item.Field(i), name); v.IsValid() {
				return v
			}
			continue
		}
		if tag := strings.Split(sf.Tag.Get("json"), ",")[0]; tag == name {
			return item.Field(i)
		}
	}
	return reflect.Value{}
}

func createStyle(f *excelize.File, tmpl *StyleTemplate) (int, error) {
	style := &excelize.Style{}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	return f.NewStyle(style)
}
