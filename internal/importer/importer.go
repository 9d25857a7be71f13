// Package importer turns spreadsheet rows into employee upserts keyed by emp_no.
package importer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/catalog"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/logger"
	"github.com/locvowork/skilltrack/pkg/simpleexcel"
)

// EmployeeStore is the part of the employee repository the importer writes through.
type EmployeeStore interface {
	GetByEmpNo(ctx context.Context, empNo string) (*domain.Employee, error)
	Create(ctx context.Context, e *domain.Employee) error
	Update(ctx context.Context, e *domain.Employee) error
}

// Importer upserts one employee per spreadsheet row. Each row is saved on its
// own; a failing row becomes a warning and never stops the run.
type Importer struct {
	store   EmployeeStore
	catalog *catalog.Catalog

	// OnSaved, when set, is called after every successful save.
	OnSaved func(ctx context.Context, e *domain.Employee)
}

func New(store EmployeeStore, cat *catalog.Catalog) *Importer {
	return &Importer{store: store, catalog: cat}
}

type column struct {
	index int
	field field
}

// Run imports every data row of sheet and fills the counters and warnings of report.
func (im *Importer) Run(ctx context.Context, sheet *simpleexcel.Sheet, report *domain.ImportReport) error {
	columns, err := im.mapHeader(sheet.Header)
	if err != nil {
		return err
	}

	for _, row := range sheet.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		im.importRow(ctx, columns, row, report)
	}

	logger.InfoLog(ctx, "import finished: processed=%d created=%d updated=%d skipped=%d warned=%d",
		report.Processed, report.Created, report.Updated, report.Skipped, report.WarnedRows)
	return nil
}

// mapHeader keeps the columns whose header maps to an employee field. When two
// columns map to the same field the leftmost wins.
func (im *Importer) mapHeader(header []string) ([]column, error) {
	var columns []column
	seen := map[string]bool{}
	for i, h := range header {
		name, ok := im.catalog.HeaderField(h)
		if !ok || seen[name] {
			continue
		}
		f, ok := fieldsByName[name]
		if !ok {
			continue
		}
		seen[name] = true
		columns = append(columns, column{index: i, field: f})
	}
	if !seen["emp_no"] {
		return nil, apperrors.NewImportFileError("the sheet has no EMP NO column")
	}
	return columns, nil
}

type rowWarnings struct {
	row  int
	list []string
}

func (w *rowWarnings) add(field, format string, args ...interface{}) {
	w.list = append(w.list, fmt.Sprintf("Row %d: %s: %s", w.row, field, fmt.Sprintf(format, args...)))
}

func (im *Importer) importRow(ctx context.Context, columns []column, row simpleexcel.Row, report *domain.ImportReport) {
	empNo := ""
	for _, c := range columns {
		if c.field.Name == "emp_no" {
			empNo = cellText(row.Cell(c.index))
		}
	}
	if empNo == "" {
		report.Skipped++
		return
	}

	warn := &rowWarnings{row: row.Number}
	defer func() {
		if len(warn.list) > 0 {
			report.WarnedRows++
			report.Warnings = append(report.Warnings, warn.list...)
		}
	}()

	existing, err := im.store.GetByEmpNo(ctx, empNo)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		warn.add("emp_no", "could not load employee %s: %v", empNo, err)
		return
	}

	e := existing
	if e == nil {
		e = &domain.Employee{}
	}
	for _, c := range columns {
		im.assign(e, c.field, row.Cell(c.index), warn)
	}
	e.EmpNo = empNo
	e.ApplyDefaults()

	if existing != nil {
		err = im.store.Update(ctx, e)
	} else {
		err = im.store.Create(ctx, e)
	}
	if err != nil {
		warn.add("emp_no", "could not save employee %s: %v", empNo, err)
		return
	}

	report.Processed++
	if existing != nil {
		report.Updated++
	} else {
		report.Created++
	}
	if im.OnSaved != nil {
		im.OnSaved(ctx, e)
	}
}

// checkRange warns about out-of-range numbers. The value is still stored.
func checkRange(f field, v float64, warn *rowWarnings) {
	switch {
	case v < 0:
		warn.add(f.Name, "%s must not be negative", strconv.FormatFloat(v, 'f', -1, 64))
	case f.max > 0 && v > f.max:
		warn.add(f.Name, "%s is greater than %s", strconv.FormatFloat(v, 'f', -1, 64), strconv.FormatFloat(f.max, 'f', -1, 64))
	}
}

// assign overwrites one mapped field of e from cell. Empty cells clear the
// field, or reset it to its default where one is declared.
func (im *Importer) assign(e *domain.Employee, f field, cell simpleexcel.Cell, warn *rowWarnings) {
	switch f.kind {
	case kindText:
		setText(e, f.Name, cellText(cell))

	case kindOptionalText:
		var v *string
		if s := cellText(cell); s != "" {
			v = &s
		}
		setOptionalText(e, f.Name, v)

	case kindChoice, kindDefaultedChoice:
		v := ""
		if s := cellText(cell); s != "" {
			var ok bool
			if v, ok = im.resolveChoice(f.choice, s); !ok {
				warn.add(f.Name, "%q is not a valid choice", s)
			}
		}
		setText(e, f.Name, v)

	case kindDate:
		var v *domain.Date
		if !cell.IsEmpty() {
			d, err := parseDateCell(cell)
			if err != nil {
				warn.add(f.Name, "invalid date %q, expected YYYY-MM-DD", cellText(cell))
			} else {
				v = &d
			}
		}
		setDate(e, f.Name, v)

	case kindInt:
		var v *int
		if !cell.IsEmpty() {
			n, err := parseNumberCell(cell)
			if err != nil {
				warn.add(f.Name, "invalid number %q", cellText(cell))
				n = 0
			}
			checkRange(f, n, warn)
			i := int(math.Trunc(n))
			v = &i
		}
		setInt(e, f.Name, v)

	case kindPercent:
		var v *float64
		if !cell.IsEmpty() {
			p, err := parsePercentCell(cell)
			if err != nil {
				warn.add(f.Name, "invalid percentage %q", cellText(cell))
				p = 0
			}
			checkRange(f, p, warn)
			v = &p
		}
		e.OverallPercent = v
	}
}

// resolveChoice accepts a stored value or a display label, ignoring case.
func (im *Importer) resolveChoice(kind catalog.Kind, s string) (string, bool) {
	if im.catalog.Has(kind, s) {
		return s, true
	}
	for _, ch := range im.catalog.Choices[kind] {
		if strings.EqualFold(ch.Value, s) || strings.EqualFold(ch.Label, s) {
			return ch.Value, true
		}
	}
	return "", false
}

func setText(e *domain.Employee, name, v string) {
	switch name {
	case "name":
		e.Name = v
	case "gender":
		e.Gender = v
	case "plant":
		e.Plant = v
	case "area_of_work":
		e.AreaOfWork = v
	case "category":
		e.Category = v
	case "skill_level":
		e.SkillLevel = v
	case "sl1_status":
		e.SL1Status = v
	case "sl2_status":
		e.SL2Status = v
	case "sl3_status":
		e.SL3Status = v
	}
}

func setOptionalText(e *domain.Employee, name string, v *string) {
	switch name {
	case "batch_no":
		e.BatchNo = v
	case "sl2_ojt":
		e.SL2OJT = v
	case "after_ojt_area_of_work":
		e.AfterOJTAreaOfWork = v
	case "remarks":
		e.Remarks = v
	}
}

func setDate(e *domain.Employee, name string, v *domain.Date) {
	switch name {
	case "dob":
		e.DOB = v
	case "doj":
		e.DOJ = v
	case "dol":
		e.DOL = v
	}
}

func setInt(e *domain.Employee, name string, v *int) {
	switch name {
	case "age":
		e.Age = v
	case "training_days":
		e.TrainingDays = 0
		if v != nil {
			e.TrainingDays = *v
		}
	case "sl1_marks":
		e.SL1Marks = v
	case "sl2_marks":
		e.SL2Marks = v
	}
}

func cellText(c simpleexcel.Cell) string {
	return strings.TrimSpace(c.Text)
}

var dateTimeLayouts = []string{
	domain.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseDateCell(c simpleexcel.Cell) (domain.Date, error) {
	if c.Kind == simpleexcel.CellDate {
		return domain.NewDate(c.Time), nil
	}
	s := cellText(c)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.NewDate(t), nil
		}
	}
	return domain.Date{}, fmt.Errorf("unrecognised date %q", s)
}

func parseNumberCell(c simpleexcel.Cell) (float64, error) {
	switch c.Kind {
	case simpleexcel.CellNumber, simpleexcel.CellPercent:
		return c.Number, nil
	}
	return strconv.ParseFloat(cellText(c), 64)
}

func parsePercentCell(c simpleexcel.Cell) (float64, error) {
	switch c.Kind {
	case simpleexcel.CellNumber, simpleexcel.CellPercent:
		return c.Number, nil
	}
	s := strings.TrimSpace(strings.TrimSuffix(cellText(c), "%"))
	return strconv.ParseFloat(s, 64)
}
