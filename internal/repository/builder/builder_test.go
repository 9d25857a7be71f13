package builder

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestSQLBuilder(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("id", "name").From("employee").Where("id = ?", 1).Build()
		expected := "SELECT id, name FROM employee WHERE id = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 || args[0] != 1 {
			t.Errorf("expected args [1], got %v", args)
		}
	})

	t.Run("Insert", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Insert("employee", "emp_no", "name").Values("E001", "Asha").Returning("id").Build()
		expected := "INSERT INTO employee (emp_no, name) VALUES ($1, $2) RETURNING id"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != "E001" || args[1] != "Asha" {
			t.Errorf("expected args [E001 Asha], got %v", args)
		}
	})

	t.Run("Multi row insert", func(t *testing.T) {
		b := New(Question)
		query, args := b.Insert("training_module", "s_no", "title").
			Values(1, "Safety").
			Values(2, "5S").
			Build()
		expected := "INSERT INTO training_module (s_no, title) VALUES (?, ?), (?, ?)"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if !reflect.DeepEqual(args, []interface{}{1, "Safety", 2, "5S"}) {
			t.Errorf("unexpected args %v", args)
		}
	})

	t.Run("Update", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Update("employee").Set("name", "Bob").Set("plant", "plant-a").Where("id = ?", 1).Build()
		expected := "UPDATE employee SET name = $1, plant = $2 WHERE id = $3"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if !reflect.DeepEqual(args, []interface{}{"Bob", "plant-a", 1}) {
			t.Errorf("expected args [Bob plant-a 1], got %v", args)
		}
	})
}

func TestSQLBuilderConditions(t *testing.T) {
	t.Run("Where conditions are AND-ed", func(t *testing.T) {
		query, args := NewSQLBuilder().Select("*").
			From("employee").
			Where("skill_level = ?", "sl2").
			Where("LOWER(name) LIKE ?", "%john%").
			Build()

		expected := "SELECT * FROM employee WHERE skill_level = $1 AND LOWER(name) LIKE $2"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 {
			t.Errorf("expected 2 args, got %d: %v", len(args), args)
		}
	})

	t.Run("Or Operator", func(t *testing.T) {
		query, args := NewSQLBuilder().Select("emp_no", "name").
			From("employee").
			Or("plant = ?", "plant-a").
			Or("plant = ?", "plant-b").
			Build()

		expected := "SELECT emp_no, name FROM employee WHERE plant = $1 OR plant = $2"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != "plant-a" || args[1] != "plant-b" {
			t.Errorf("expected args [plant-a plant-b], got %v", args)
		}
	})

	t.Run("WhereGroup keeps argument order", func(t *testing.T) {
		since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		query, args := NewSQLBuilder().Select("*").
			From("employee").
			Where("plant = ?", "plant-a").
			WhereGroup(func(g *SQLBuilder) *SQLBuilder {
				return g.
					Or("LOWER(emp_no) LIKE ?", "%e1%").
					Or("LOWER(name) LIKE ?", "%e1%")
			}).
			Where("created_at >= ?", since).
			OrderBy("created_at DESC", "id DESC").
			Limit(20).
			Offset(40).
			Build()

		expected := "SELECT * FROM employee WHERE plant = $1 AND (LOWER(emp_no) LIKE $2 OR LOWER(name) LIKE $3) AND created_at >= $4 ORDER BY created_at DESC, id DESC LIMIT 20 OFFSET 40"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		want := []interface{}{"plant-a", "%e1%", "%e1%", since}
		if !reflect.DeepEqual(args, want) {
			t.Errorf("expected args %v, got %v", want, args)
		}
	})

	t.Run("Empty WhereGroup is dropped", func(t *testing.T) {
		query, _ := NewSQLBuilder().Select("*").
			From("employee").
			WhereGroup(func(g *SQLBuilder) *SQLBuilder { return g }).
			Build()
		if strings.Contains(query, "WHERE") {
			t.Errorf("expected no WHERE clause in %s", query)
		}
	})

	t.Run("WhereRaw with complex expression", func(t *testing.T) {
		query, args := NewSQLBuilder().Select("*").
			From("employee").
			WhereRaw("(overall_percent BETWEEN ? AND ?) OR (skill_level = ?)", 60, 80, "sl3").
			Build()

		expected := "SELECT * FROM employee WHERE (overall_percent BETWEEN $1 AND $2) OR (skill_level = $3)"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 3 || args[0] != 60 || args[1] != 80 || args[2] != "sl3" {
			t.Errorf("expected args [60 80 sl3], got %v", args)
		}
	})

	t.Run("Update with Or conditions", func(t *testing.T) {
		query, args := NewSQLBuilder().Update("employee_training_module").
			Set("status", "accepted").
			Or("module_id = ?", 1).
			Or("module_id = ?", 2).
			Build()

		expected := "UPDATE employee_training_module SET status = $1 WHERE module_id = $2 OR module_id = $3"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 3 {
			t.Errorf("expected 3 args, got %d: %v", len(args), args)
		}
	})

	t.Run("Question format", func(t *testing.T) {
		query, args := New(Question).Update("performance_record").
			Set("supervisor_approved", true).
			Where("id = ?", 9).
			Build()
		expected := "UPDATE performance_record SET supervisor_approved = ? WHERE id = ?"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != true || args[1] != 9 {
			t.Errorf("expected args [true 9], got %v", args)
		}
	})

	t.Run("Group by", func(t *testing.T) {
		query, _ := New(Question).Select("plant", "COUNT(*)").From("employee").GroupBy("plant").Build()
		expected := "SELECT plant, COUNT(*) FROM employee GROUP BY plant"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
	})
}

func TestBuildSafe(t *testing.T) {
	t.Run("valid query", func(t *testing.T) {
		sql, args, err := NewSQLBuilder().Select("*").
			From("employee").
			Where("emp_no = ?", "E1").
			Where("gender = ?", "male").
			BuildSafe()
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if len(args) != 2 {
			t.Errorf("expected 2 args, got %d", len(args))
		}
		if !strings.Contains(sql, "$1") || !strings.Contains(sql, "$2") {
			t.Errorf("expected placeholders $1 and $2 in %s", sql)
		}
	})

	t.Run("mismatched args", func(t *testing.T) {
		_, _, err := New(Question).Select("*").
			From("employee").
			Where("emp_no = ? AND name = ?", "E1").
			BuildSafe()
		if err == nil {
			t.Error("expected an error for a missing argument")
		}
	})
}

func TestRebind(t *testing.T) {
	q := "SELECT id FROM employee WHERE emp_no = ? AND plant = ?"
	if got := Rebind(Dollar, q); got != "SELECT id FROM employee WHERE emp_no = $1 AND plant = $2" {
		t.Errorf("unexpected rebind result %s", got)
	}
	if got := Rebind(Question, q); got != q {
		t.Errorf("question format must be unchanged, got %s", got)
	}
}
