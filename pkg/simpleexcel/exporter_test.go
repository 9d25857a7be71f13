package simpleexcel

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

type exportDate struct{ s string }

func (d exportDate) String() string { return d.s }

type exportItem struct {
	EmpNo   string      `json:"emp_no"`
	Name    string      `json:"name"`
	Percent *float64    `json:"overall_percent"`
	Joined  *exportDate `json:"doj"`
}

const layout = `
sheets:
  - name: "Employees"
    sections:
      - id: "employees"
        show_header: true
        header_style:
          font:
            bold: true
          fill:
            color: "#DDEBF7"
        columns:
          - field_name: "emp_no"
            header: "EMP NO"
            width: 12
          - field_name: "Name"
            header: "NAME"
          - field_name: "overall_percent"
            header: "OVERALL %"
            formatter: "percent"
          - field_name: "doj"
            header: "DOJ"
`

func exportFixture() []exportItem {
	pct := 85.5
	return []exportItem{
		{EmpNo: "E001", Name: "Anu", Percent: &pct, Joined: &exportDate{"2023-05-17"}},
		{EmpNo: "E002", Name: "Ravi"},
	}
}

func TestDataExporter_YamlLayout(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(layout)
	if err != nil {
		t.Fatalf("Failed to create exporter from yaml: %v", err)
	}
	exporter.RegisterFormatter("percent", func(v interface{}) interface{} {
		if f, ok := v.(float64); ok {
			return f / 100
		}
		return v
	})
	exporter.BindSectionData("employees", exportFixture())

	var data bytes.Buffer
	if err := exporter.StreamTo(&data); err != nil {
		t.Fatalf("StreamTo failed: %v", err)
	}

	f, err := excelize.OpenReader(&data)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	expected := map[string]string{
		"A1": "EMP NO",
		"B1": "NAME",
		"A2": "E001",
		"B2": "Anu",
		"C2": "0.855",
		"D2": "2023-05-17",
		"A3": "E002",
		"C3": "",
		"D3": "",
	}
	for cell, want := range expected {
		got, err := f.GetCellValue("Employees", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", cell, err)
		}
		if got != want {
			t.Errorf("%s: expected %q, got %q", cell, want, got)
		}
	}

	styleID, err := f.GetCellStyle("Employees", "A1")
	if err != nil {
		t.Fatalf("GetCellStyle failed: %v", err)
	}
	if styleID == 0 {
		t.Errorf("expected a header style on A1")
	}
}

func TestDataExporter_ProgrammaticSheetsAndCSV(t *testing.T) {
	exporter := NewDataExporter()
	exporter.AddSheet("Template").
		AddSection(&SectionConfig{
			Title:      "Employees",
			ShowHeader: true,
			Columns: []ColumnConfig{
				{FieldName: "EmpNo", Header: "EMP NO"},
				{FieldName: "Name", Header: "NAME"},
			},
			Data: exportFixture(),
		}).
		Build()

	var buf bytes.Buffer
	if err := exporter.ToCSV(&buf); err != nil {
		t.Fatalf("ToCSV failed: %v", err)
	}

	want := "Employees\nEMP NO,NAME\nE001,Anu\nE002,Ravi\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected csv:\n%s", got)
	}

	sheet, err := ReadCSV(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(sheet.Rows) != 3 {
		t.Errorf("expected 3 rows after the title, got %d", len(sheet.Rows))
	}
}

func TestExtractValue(t *testing.T) {
	pct := 12.5
	item := exportItem{EmpNo: "E9", Percent: &pct}

	testCases := map[string]struct {
		input interface{}
		field string
		want  interface{}
	}{
		"struct field name":    {input: item, field: "EmpNo", want: "E9"},
		"json tag":             {input: &item, field: "emp_no", want: "E9"},
		"pointer dereferenced": {input: item, field: "overall_percent", want: 12.5},
		"nil pointer":          {input: item, field: "doj", want: ""},
		"map key":              {input: map[string]interface{}{"k": 3}, field: "k", want: 3},
		"unknown field":        {input: item, field: "missing", want: ""},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := extractValue(reflect.ValueOf(tc.input), tc.field); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
