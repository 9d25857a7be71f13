package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/database"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/repository/builder"
)

var employeeColumns = []string{
	"id", "emp_no", "name", "gender", "dob", "age", "doj", "dol", "photo", "plant", "area_of_work",
	"category", "batch_no", "training_days", "sl1_marks", "sl2_marks", "sl2_ojt", "after_ojt_area_of_work",
	"overall_percent", "skill_level", "remarks", "sl1_status", "sl2_status", "sl3_status",
	"created_at", "updated_at",
}

// employeeOrdering whitelists the public ordering keys.
var employeeOrdering = map[string]string{
	"created_at":      "created_at",
	"name":            "name",
	"emp_no":          "emp_no",
	"overall_percent": "overall_percent",
}

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository
func NewEmployeeRepository(db *database.DB) domain.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	e.ApplyDefaults()
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now

	query, args := r.db.Builder().
		Insert("employee", employeeColumns[1:]...).
		Values(e.EmpNo, e.Name, e.Gender, e.DOB, e.Age, e.DOJ, e.DOL, e.Photo, e.Plant, e.AreaOfWork,
			e.Category, e.BatchNo, e.TrainingDays, e.SL1Marks, e.SL2Marks, e.SL2OJT, e.AfterOJTAreaOfWork,
			e.OverallPercent, e.SkillLevel, e.Remarks, e.SL1Status, e.SL2Status, e.SL3Status,
			e.CreatedAt, e.UpdatedAt).
		Returning("id").
		Build()

	if err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		return mapEmployeeWriteError(err)
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query, args := r.db.Builder().
		Select(employeeColumns...).
		From("employee").
		Where("id = ?", id).
		Build()

	e, err := scanEmployee(r.db.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("employee %d not found", id)
	}
	return e, err
}

func (r *employeeRepository) GetByEmpNo(ctx context.Context, empNo string) (*domain.Employee, error) {
	query, args := r.db.Builder().
		Select(employeeColumns...).
		From("employee").
		Where("emp_no = ?", empNo).
		Build()

	e, err := scanEmployee(r.db.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("employee %s not found", empNo)
	}
	return e, err
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	e.ApplyDefaults()
	e.UpdatedAt = time.Now().UTC()

	query, args := r.db.Builder().
		Update("employee").
		Set("emp_no", e.EmpNo).
		Set("name", e.Name).
		Set("gender", e.Gender).
		Set("dob", e.DOB).
		Set("age", e.Age).
		Set("doj", e.DOJ).
		Set("dol", e.DOL).
		Set("photo", e.Photo).
		Set("plant", e.Plant).
		Set("area_of_work", e.AreaOfWork).
		Set("category", e.Category).
		Set("batch_no", e.BatchNo).
		Set("training_days", e.TrainingDays).
		Set("sl1_marks", e.SL1Marks).
		Set("sl2_marks", e.SL2Marks).
		Set("sl2_ojt", e.SL2OJT).
		Set("after_ojt_area_of_work", e.AfterOJTAreaOfWork).
		Set("overall_percent", e.OverallPercent).
		Set("skill_level", e.SkillLevel).
		Set("remarks", e.Remarks).
		Set("sl1_status", e.SL1Status).
		Set("sl2_status", e.SL2Status).
		Set("sl3_status", e.SL3Status).
		Set("updated_at", e.UpdatedAt).
		Where("id = ?", e.ID).
		Build()

	res, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapEmployeeWriteError(err)
	}
	return requireAffected(res, "employee", e.ID)
}

func (r *employeeRepository) UpdatePhoto(ctx context.Context, id int64, photo string) error {
	query, args := r.db.Builder().
		Update("employee").
		Set("photo", photo).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id).
		Build()

	res, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(res, "employee", id)
}

func (r *employeeRepository) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	order, err := employeeOrderBy(filter.Ordering)
	if err != nil {
		return nil, err
	}

	b := r.db.Builder().Select(employeeColumns...).From("employee")
	applyEmployeeFilter(b, filter)
	b.OrderBy(order...)
	if filter.Limit > 0 {
		b.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		b.Offset(filter.Offset)
	}

	query, args := b.Build()
	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) Count(ctx context.Context, filter domain.EmployeeFilter) (int, error) {
	b := r.db.Builder().Select("COUNT(*)").From("employee")
	applyEmployeeFilter(b, filter)

	query, args := b.Build()
	var n int
	if err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *employeeRepository) Each(ctx context.Context, fn func(e *domain.Employee) error) error {
	query, args := r.db.Builder().
		Select(employeeColumns...).
		From("employee").
		OrderBy("created_at DESC", "id DESC").
		Build()

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}

func applyEmployeeFilter(b *builder.SQLBuilder, f domain.EmployeeFilter) {
	exact := []struct{ col, val string }{
		{"emp_no", f.EmpNo},
		{"area_of_work", f.AreaOfWork},
		{"plant", f.Plant},
		{"category", f.Category},
		{"skill_level", f.SkillLevel},
		{"gender", f.Gender},
	}
	for _, c := range exact {
		if c.val != "" {
			b.Where(c.col+" = ?", c.val)
		}
	}

	like := []struct{ col, val string }{
		{"emp_no", f.EmpNoLike},
		{"name", f.NameLike},
		{"area_of_work", f.AreaOfWorkLike},
		{"plant", f.PlantLike},
	}
	for _, c := range like {
		if c.val != "" {
			b.Where("LOWER("+c.col+") "+likeEscaped, containsPattern(c.val))
		}
	}

	if f.Search != "" {
		pattern := containsPattern(f.Search)
		b.WhereGroup(func(g *builder.SQLBuilder) *builder.SQLBuilder {
			return g.
				Or("LOWER(emp_no) "+likeEscaped, pattern).
				Or("LOWER(name) "+likeEscaped, pattern).
				Or("LOWER(batch_no) "+likeEscaped, pattern)
		})
	}
}

// employeeOrderBy resolves an ordering key such as "-overall_percent".
func employeeOrderBy(ordering string) ([]string, error) {
	if ordering == "" {
		return []string{"created_at DESC", "id DESC"}, nil
	}
	dir := "ASC"
	key := ordering
	if strings.HasPrefix(key, "-") {
		dir = "DESC"
		key = key[1:]
	}
	col, ok := employeeOrdering[key]
	if !ok {
		return nil, apperrors.NewValidationError("ordering", fmt.Sprintf("unknown ordering field %q", key))
	}
	return []string{col + " " + dir, "id " + dir}, nil
}

// likeEscaped matches patterns built by containsPattern.
const likeEscaped = `LIKE ? ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches the fragment literally anywhere in the value.
func containsPattern(fragment string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(strings.TrimSpace(fragment))) + "%"
}

func scanEmployee(row scanner) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(&e.ID, &e.EmpNo, &e.Name, &e.Gender, &e.DOB, &e.Age, &e.DOJ, &e.DOL, &e.Photo,
		&e.Plant, &e.AreaOfWork, &e.Category, &e.BatchNo, &e.TrainingDays, &e.SL1Marks, &e.SL2Marks,
		&e.SL2OJT, &e.AfterOJTAreaOfWork, &e.OverallPercent, &e.SkillLevel, &e.Remarks,
		&e.SL1Status, &e.SL2Status, &e.SL3Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func mapEmployeeWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		return apperrors.NewValidationError("emp_no", "employee with this emp no already exists.")
	}
	return err
}
