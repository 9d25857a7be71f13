package builder_test

import (
	"fmt"

	"github.com/locvowork/skilltrack/internal/repository/builder"
)

func Example_search() {
	qb := builder.NewSQLBuilder().
		Select("id", "emp_no", "name").
		From("employee").
		Where("LOWER(name) LIKE ?", "%john%").
		Where("skill_level = ?", "sl2").
		OrderBy("created_at DESC", "id DESC").
		Limit(20)

	sql, args := qb.Build()
	fmt.Println("SQL:", sql)
	fmt.Printf("Args: %v\n", args)

	// Output:
	// SQL: SELECT id, emp_no, name FROM employee WHERE LOWER(name) LIKE $1 AND skill_level = $2 ORDER BY created_at DESC, id DESC LIMIT 20
	// Args: [%john% sl2]
}

func Example_moduleStatusView() {
	qb := builder.New(builder.Question).
		Select("m.id", "m.s_no", "etm.status").
		From("training_module m").
		Join("LEFT", "employee_training_module etm", "etm.module_id = m.id AND etm.employee_id = ?", 7).
		OrderBy("m.s_no ASC")

	sql, args := qb.Build()
	fmt.Println("SQL:", sql)
	fmt.Printf("Args: %v\n", args)

	// Output:
	// SQL: SELECT m.id, m.s_no, etm.status FROM training_module m LEFT JOIN employee_training_module etm ON etm.module_id = m.id AND etm.employee_id = ? ORDER BY m.s_no ASC
	// Args: [7]
}

func Example_keywordSearch() {
	qb := builder.NewSQLBuilder().
		Select("COUNT(*)").
		From("employee").
		Where("plant = ?", "plant-b").
		WhereGroup(func(g *builder.SQLBuilder) *builder.SQLBuilder {
			return g.
				Or("LOWER(emp_no) LIKE ?", "%b7%").
				Or("LOWER(name) LIKE ?", "%b7%").
				Or("LOWER(batch_no) LIKE ?", "%b7%")
		})

	sql, args := qb.Build()
	fmt.Println("SQL:", sql)
	fmt.Printf("Number of args: %d\n", len(args))

	// Output:
	// SQL: SELECT COUNT(*) FROM employee WHERE plant = $1 AND (LOWER(emp_no) LIKE $2 OR LOWER(name) LIKE $3 OR LOWER(batch_no) LIKE $4)
	// Number of args: 4
}
