package simpleexcel

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestReadXLSX_CellKinds(t *testing.T) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	f.SetSheetRow(sheet, "A1", &[]interface{}{"EMP NO", "DOJ", "OVERALL %", "AGE", "NAME"})
	f.SetCellValue(sheet, "A2", "E001")
	f.SetCellValue(sheet, "B2", time.Date(2023, 5, 17, 0, 0, 0, 0, time.UTC))
	f.SetCellValue(sheet, "C2", 0.855)
	f.SetCellValue(sheet, "D2", 31)
	f.SetCellValue(sheet, "E2", "Ravi")
	// row 3 left blank, row 4 holds only a name
	f.SetCellValue(sheet, "E4", "No Number")

	pct, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		t.Fatalf("NewStyle failed: %v", err)
	}
	f.SetCellStyle(sheet, "C2", "C2", pct)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	s, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("ReadXLSX failed: %v", err)
	}

	if got := strings.Join(s.Header, "|"); got != "EMP NO|DOJ|OVERALL %|AGE|NAME" {
		t.Errorf("unexpected header %q", got)
	}
	if len(s.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(s.Rows))
	}

	row := s.Rows[0]
	if row.Number != 2 {
		t.Errorf("expected row number 2, got %d", row.Number)
	}
	if c := row.Cell(0); c.Kind != CellText || c.Text != "E001" {
		t.Errorf("emp no cell: %+v", c)
	}
	if c := row.Cell(1); c.Kind != CellDate || c.Time.Format("2006-01-02") != "2023-05-17" {
		t.Errorf("date cell: %+v", c)
	}
	if c := row.Cell(2); c.Kind != CellPercent || c.Number < 85.49 || c.Number > 85.51 {
		t.Errorf("percent cell: %+v", c)
	}
	if c := row.Cell(3); c.Kind != CellNumber || c.Number != 31 {
		t.Errorf("number cell: %+v", c)
	}
	if c := row.Cell(10); !c.IsEmpty() {
		t.Errorf("out of range cell should be empty: %+v", c)
	}

	if s.Rows[1].Number != 4 {
		t.Errorf("blank rows must not shift row numbers, got %d", s.Rows[1].Number)
	}
	if !s.Rows[1].Cell(0).IsEmpty() {
		t.Errorf("expected empty emp no on row 4")
	}
}

func TestReadCSV(t *testing.T) {
	input := "\ufeffEMP NO,NAME,DOB\nE001,Anu,1999-01-02\n,,\nE002,\"Doe, Jane\",\n"

	s, err := Read(strings.NewReader(input), "employees.CSV")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if s.Header[0] != "EMP NO" {
		t.Errorf("byte order mark not stripped: %q", s.Header[0])
	}
	if len(s.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(s.Rows))
	}
	if s.Rows[1].Number != 4 || s.Rows[1].Cell(1).Text != "Doe, Jane" {
		t.Errorf("unexpected second row %+v", s.Rows[1])
	}
	if s.Rows[0].Cell(2).Kind != CellText {
		t.Errorf("csv cells are always text")
	}
}

func TestRead_Errors(t *testing.T) {
	testCases := map[string]struct {
		name  string
		input string
	}{
		"unsupported extension": {name: "employees.txt", input: "EMP NO\n"},
		"empty csv":             {name: "employees.csv", input: ""},
		"blank header":          {name: "employees.csv", input: ",,\nE001,,\n"},
		"not a workbook":        {name: "employees.xlsx", input: "plain text"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tc.input), tc.name); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestClassifyNumFmt(t *testing.T) {
	custom := func(s string) *string { return &s }

	testCases := map[string]struct {
		id     int
		custom *string
		want   CellKind
	}{
		"general":             {id: 0, want: CellNumber},
		"builtin percent":     {id: 9, want: CellPercent},
		"builtin date":        {id: 14, want: CellDate},
		"builtin date time":   {id: 22, want: CellDate},
		"builtin time only":   {id: 20, want: CellNumber},
		"custom date":         {custom: custom("dd/mm/yyyy"), want: CellDate},
		"custom percent":      {custom: custom("0.0%"), want: CellPercent},
		"quoted text ignored": {custom: custom(`0 "days"`), want: CellNumber},
		"colour section":      {custom: custom("[Red]0.00"), want: CellNumber},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := classifyNumFmt(tc.id, tc.custom); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
