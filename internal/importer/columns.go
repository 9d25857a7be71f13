package importer

import "github.com/locvowork/skilltrack/internal/catalog"

type fieldKind int

const (
	kindText fieldKind = iota
	kindOptionalText
	kindChoice
	kindDefaultedChoice
	kindDate
	kindInt
	kindPercent
)

type field struct {
	Name   string
	Header string
	kind   fieldKind
	choice catalog.Kind
	// max bounds numeric fields from above when non-zero. Numbers are never negative.
	max float64
}

// Columns lists the importable employee fields in template order. Header is
// the canonical spreadsheet header written into the import template.
var Columns = []field{
	{Name: "emp_no", Header: "EMP NO", kind: kindText},
	{Name: "name", Header: "NAME", kind: kindText},
	{Name: "gender", Header: "GENDER", kind: kindChoice, choice: catalog.Gender},
	{Name: "dob", Header: "DOB", kind: kindDate},
	{Name: "age", Header: "AGE", kind: kindInt, max: 120},
	{Name: "doj", Header: "DOJ", kind: kindDate},
	{Name: "dol", Header: "DOL", kind: kindDate},
	{Name: "plant", Header: "PLANT", kind: kindChoice, choice: catalog.Plant},
	{Name: "area_of_work", Header: "AREA OF WORK", kind: kindChoice, choice: catalog.AreaOfWork},
	{Name: "category", Header: "CATEGORY", kind: kindChoice, choice: catalog.Category},
	{Name: "batch_no", Header: "BATCH NO", kind: kindOptionalText},
	{Name: "training_days", Header: "TRAINING DAYS", kind: kindInt},
	{Name: "sl1_marks", Header: "SL1 MARKS", kind: kindInt},
	{Name: "sl2_marks", Header: "SL2 MARKS", kind: kindInt},
	{Name: "sl2_ojt", Header: "SL2 OJT", kind: kindOptionalText},
	{Name: "after_ojt_area_of_work", Header: "AFTER OJT AREA OF WORK", kind: kindOptionalText},
	{Name: "overall_percent", Header: "OVERALL %", kind: kindPercent, max: 100},
	{Name: "skill_level", Header: "SKILL LEVEL", kind: kindDefaultedChoice, choice: catalog.SkillLevel},
	{Name: "remarks", Header: "REMARKS", kind: kindOptionalText},
	{Name: "sl1_status", Header: "SL1 STATUS", kind: kindDefaultedChoice, choice: catalog.SLStatus},
	{Name: "sl2_status", Header: "SL2 STATUS", kind: kindDefaultedChoice, choice: catalog.SLStatus},
	{Name: "sl3_status", Header: "SL3 STATUS", kind: kindDefaultedChoice, choice: catalog.SLStatus},
}

var fieldsByName = func() map[string]field {
	m := make(map[string]field, len(Columns))
	for _, f := range Columns {
		m[f.Name] = f
	}
	return m
}()

// TemplateHeaders returns the header row of an empty import sheet.
func TemplateHeaders() []string {
	out := make([]string, len(Columns))
	for i, f := range Columns {
		out[i] = f.Header
	}
	return out
}
