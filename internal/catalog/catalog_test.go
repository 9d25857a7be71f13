package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.True(t, c.Has(SkillLevel, "sl2"))
	assert.False(t, c.Has(SkillLevel, "expert"))
	assert.True(t, c.Has(Category, "1l"))
	assert.Equal(t, "Paint Plant", c.Label(AreaOfWork, "paint_plant"))
	assert.Equal(t, "unknown", c.Label(AreaOfWork, "unknown"))
	assert.Equal(t, []string{"pending", "accepted", "denied"}, c.Values(ModuleStatus))
	require.Len(t, c.TrainingModules, 12)
	assert.Equal(t, 12, c.TrainingModules[11].SNo)
}

func TestHeaderField(t *testing.T) {
	c := Default()

	tests := map[string]struct {
		header string
		field  string
		ok     bool
	}{
		"exact":            {header: "EMP NO", field: "emp_no", ok: true},
		"lower and padded": {header: "  emp no ", field: "emp_no", ok: true},
		"inner whitespace": {header: "Over  All %", field: "overall_percent", ok: true},
		"alias":            {header: "Dept", field: "area_of_work", ok: true},
		"unmapped":         {header: "SHOE SIZE", ok: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			field, ok := c.HeaderField(tc.header)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.field, field)
		})
	}
}

func TestParseRejectsEmptyValue(t *testing.T) {
	_, err := Parse([]byte("choices:\n  plant:\n    - {value: '', label: X}\n"))
	assert.Error(t, err)
}
