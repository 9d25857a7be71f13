package simpleexcel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Media types of the supported sheet formats.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrEmptySheet        = errors.New("spreadsheet has no header row")
)

// CellKind tells how a non-empty cell was stored.
type CellKind int

const (
	CellText CellKind = iota
	CellNumber
	CellDate
	CellPercent
)

// Cell is one read value. Number holds the numeric value of number and percent
// cells; for percent cells it is the displayed percentage (0.85 shown as 85%).
type Cell struct {
	Text   string
	Kind   CellKind
	Number float64
	Time   time.Time
}

// IsEmpty reports whether the cell holds only whitespace.
func (c Cell) IsEmpty() bool {
	return strings.TrimSpace(c.Text) == ""
}

// Row is a data row with its 1-based sheet row number.
type Row struct {
	Number int
	Cells  []Cell
}

// Cell returns the cell at column i, or an empty cell.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[i]
}

// Sheet is the first row of a worksheet as Header plus the non-blank rows below it.
type Sheet struct {
	Name   string
	Header []string
	Rows   []Row
}

// Read parses an .xlsx or .csv file, choosing the format by file extension.
func Read(r io.Reader, filename string) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	case ".csv":
		return ReadCSV(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
}

// ReadXLSX reads the first worksheet. Date and percent formatted cells are
// recognised from their number format.
func ReadXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	kinds := map[int]CellKind{}
	kindOf := func(col, row int) CellKind {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		styleID, err := f.GetCellStyle(name, cell)
		if err != nil {
			return CellNumber
		}
		if k, ok := kinds[styleID]; ok {
			return k
		}
		k := CellNumber
		if style, err := f.GetStyle(styleID); err == nil && style != nil {
			k = classifyNumFmt(style.NumFmt, style.CustomNumFmt)
		}
		kinds[styleID] = k
		return k
	}

	return buildSheet(name, rows, func(col, row int, raw string) Cell {
		c := Cell{Text: raw, Kind: CellText}
		num, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return c
		}
		switch kindOf(col, row) {
		case CellDate:
			if t, err := excelize.ExcelDateToTime(num, false); err == nil {
				c.Kind, c.Time = CellDate, t
				return c
			}
		case CellPercent:
			c.Kind, c.Number = CellPercent, num*100
			return c
		}
		c.Kind, c.Number = CellNumber, num
		return c
	})
}

// ReadCSV reads comma separated text; every cell is CellText.
func ReadCSV(r io.Reader) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}

	return buildSheet("csv", records, func(_, _ int, raw string) Cell {
		return Cell{Text: raw, Kind: CellText}
	})
}

func buildSheet(name string, rows [][]string, convert func(col, row int, raw string) Cell) (*Sheet, error) {
	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, ErrEmptySheet
	}

	s := &Sheet{Name: name, Header: make([]string, len(rows[0]))}
	for i, h := range rows[0] {
		s.Header[i] = strings.TrimSpace(h)
	}

	for i, raw := range rows[1:] {
		if isBlank(raw) {
			continue
		}
		rowNum := i + 2
		row := Row{Number: rowNum, Cells: make([]Cell, len(raw))}
		for j, v := range raw {
			if strings.TrimSpace(v) == "" {
				continue
			}
			row.Cells[j] = convert(j+1, rowNum, v)
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

var quotedOrBracketed = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]`)

// classifyNumFmt maps a built-in or custom number format to a cell kind.
func classifyNumFmt(id int, custom *string) CellKind {
	if custom != nil && *custom != "" {
		code := strings.ToLower(quotedOrBracketed.ReplaceAllString(*custom, ""))
		switch {
		case strings.Contains(code, "%"):
			return CellPercent
		case strings.ContainsAny(code, "yd"):
			return CellDate
		}
		return CellNumber
	}

	switch {
	case id == 9 || id == 10:
		return CellPercent
	case id >= 14 && id <= 17, id == 22, id >= 27 && id <= 31, id >= 34 && id <= 36, id >= 50 && id <= 58:
		return CellDate
	}
	return CellNumber
}
