package builder

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderFormat selects how "?" markers are rendered.
type PlaceholderFormat int

const (
	// Dollar renders $1, $2, ... (postgres).
	Dollar PlaceholderFormat = iota
	// Question keeps ? markers (sqlite).
	Question
)

// SQLBuilder helps construct SQL queries dynamically.
// Conditions use "?" markers; Build rewrites them for the configured format
// and returns the arguments in the same order the markers appear.
type SQLBuilder struct {
	format     PlaceholderFormat
	table      string
	columns    []string
	rows       [][]interface{}
	joins      []condition
	orderBy    []string
	groupBy    []string
	returning  []string
	limit      int
	offset     int
	sets       []setClause
	conditions []condition
	ors        []condition
	isInsert   bool
	isUpdate   bool
	isDelete   bool
	isSelect   bool
}

type setClause struct {
	col string
	arg interface{}
}

// condition is a fragment with its own args; group is set for parenthesized conditions.
type condition struct {
	sql   string
	args  []interface{}
	group *SQLBuilder
}

// NewSQLBuilder creates a new instance of SQLBuilder using $N placeholders.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{format: Dollar}
}

// New creates a builder for the given placeholder format.
func New(format PlaceholderFormat) *SQLBuilder {
	return &SQLBuilder{format: format}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.isSelect = true
	b.columns = cols
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// Update specifies the table to update.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.isUpdate = true
	b.table = table
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.isDelete = true
	b.table = table
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Set specifies a column and value for update.
func (b *SQLBuilder) Set(col string, val interface{}) *SQLBuilder {
	b.sets = append(b.sets, setClause{col: col, arg: val})
	return b
}

// Values adds one row of values for insertion. Call it again for multi-row inserts.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.rows = append(b.rows, vals)
	return b
}

// Where adds a condition; all Where, WhereRaw and WhereGroup conditions are AND-ed.
func (b *SQLBuilder) Where(cond string, args ...interface{}) *SQLBuilder {
	b.conditions = append(b.conditions, condition{sql: cond, args: args})
	return b
}

// WhereRaw adds a raw SQL condition with arguments.
func (b *SQLBuilder) WhereRaw(sql string, args ...interface{}) *SQLBuilder {
	return b.Where(sql, args...)
}

// WhereGroup adds a parenthesized condition built by fn.
func (b *SQLBuilder) WhereGroup(fn func(*SQLBuilder) *SQLBuilder) *SQLBuilder {
	g := fn(New(b.format))
	if g != nil && (len(g.conditions) > 0 || len(g.ors) > 0) {
		b.conditions = append(b.conditions, condition{group: g})
	}
	return b
}

// Or adds a condition OR-ed with everything else at this level.
func (b *SQLBuilder) Or(cond string, args ...interface{}) *SQLBuilder {
	b.ors = append(b.ors, condition{sql: cond, args: args})
	return b
}

// Join adds a JOIN clause. The ON expression may carry its own arguments.
func (b *SQLBuilder) Join(joinType, table, on string, args ...interface{}) *SQLBuilder {
	b.joins = append(b.joins, condition{sql: fmt.Sprintf("%s JOIN %s ON %s", joinType, table, on), args: args})
	return b
}

// GroupBy adds GROUP BY columns.
func (b *SQLBuilder) GroupBy(cols ...string) *SQLBuilder {
	b.groupBy = append(b.groupBy, cols...)
	return b
}

// OrderBy adds an ORDER BY clause.
func (b *SQLBuilder) OrderBy(order ...string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order...)
	return b
}

// Limit adds a LIMIT clause.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// Offset adds an OFFSET clause.
func (b *SQLBuilder) Offset(offset int) *SQLBuilder {
	b.offset = offset
	return b
}

// Returning adds a RETURNING clause to INSERT, UPDATE or DELETE.
func (b *SQLBuilder) Returning(cols ...string) *SQLBuilder {
	b.returning = append(b.returning, cols...)
	return b
}

// BuildSafe constructs the final SQL string and arguments with safety validation.
// Returns an error if the number of placeholders doesn't match the number of arguments.
func (b *SQLBuilder) BuildSafe() (string, []interface{}, error) {
	sql, args := b.Build()

	var count int
	if b.format == Question {
		count = strings.Count(sql, "?")
	} else {
		for i := 1; strings.Contains(sql, "$"+strconv.Itoa(i)); i++ {
			count++
		}
	}

	if count != len(args) {
		return "", nil, fmt.Errorf("placeholder count (%d) does not match argument count (%d)", count, len(args))
	}
	return sql, args, nil
}

// Build constructs the final SQL string and arguments.
func (b *SQLBuilder) Build() (string, []interface{}) {
	r := &renderer{format: b.format}
	var sb strings.Builder

	switch {
	case b.isSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
		for _, join := range b.joins {
			sb.WriteString(" ")
			sb.WriteString(r.render(join.sql, join.args))
		}
	case b.isInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES ")
		rows := make([]string, len(b.rows))
		for i, row := range b.rows {
			marks := make([]string, len(row))
			for j := range row {
				marks[j] = "?"
			}
			rows[i] = "(" + r.render(strings.Join(marks, ", "), row) + ")"
		}
		sb.WriteString(strings.Join(rows, ", "))
		b.writeReturning(&sb)
		return sb.String(), r.args
	case b.isUpdate:
		sb.WriteString("UPDATE ")
		sb.WriteString(b.table)
		sb.WriteString(" SET ")
		setClauses := make([]string, len(b.sets))
		for i, s := range b.sets {
			setClauses[i] = r.render(s.col+" = ?", []interface{}{s.arg})
		}
		sb.WriteString(strings.Join(setClauses, ", "))
	case b.isDelete:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	}

	if where := b.renderWhere(r); where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}

	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
	}

	if b.offset > 0 {
		sb.WriteString(fmt.Sprintf(" OFFSET %d", b.offset))
	}

	b.writeReturning(&sb)
	return sb.String(), r.args
}

func (b *SQLBuilder) writeReturning(sb *strings.Builder) {
	if len(b.returning) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(b.returning, ", "))
	}
}

// renderWhere joins AND conditions first, then appends OR conditions.
func (b *SQLBuilder) renderWhere(r *renderer) string {
	var ands []string
	for _, c := range b.conditions {
		if c.group != nil {
			if inner := c.group.renderWhere(r); inner != "" {
				ands = append(ands, "("+inner+")")
			}
			continue
		}
		ands = append(ands, r.render(c.sql, c.args))
	}

	var parts []string
	if len(ands) > 0 {
		parts = append(parts, strings.Join(ands, " AND "))
	}
	for _, c := range b.ors {
		parts = append(parts, r.render(c.sql, c.args))
	}
	return strings.Join(parts, " OR ")
}

// renderer numbers placeholders across the whole statement.
type renderer struct {
	format PlaceholderFormat
	n      int
	args   []interface{}
}

func (r *renderer) render(fragment string, args []interface{}) string {
	r.args = append(r.args, args...)
	if r.format == Question {
		return fragment
	}
	var sb strings.Builder
	for _, ch := range fragment {
		if ch == '?' {
			r.n++
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(r.n))
			continue
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

// Rebind rewrites the "?" markers of a hand written query for format.
func Rebind(format PlaceholderFormat, query string) string {
	r := &renderer{format: format}
	return r.render(query, nil)
}
