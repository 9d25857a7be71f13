package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/database"
	"github.com/locvowork/skilltrack/internal/domain"
)

type trainingModuleRepository struct {
	db *database.DB
}

func NewTrainingModuleRepository(db *database.DB) domain.TrainingModuleRepository {
	return &trainingModuleRepository{db: db}
}

func (r *trainingModuleRepository) Create(ctx context.Context, m *domain.TrainingModule) error {
	query, args := r.db.Builder().
		Insert("training_module", "s_no", "title", "expert").
		Values(m.SNo, m.Title, m.Expert).
		Returning("id").
		Build()

	if err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&m.ID); err != nil {
		return mapModuleWriteError(err)
	}
	return nil
}

func (r *trainingModuleRepository) GetByID(ctx context.Context, id int64) (*domain.TrainingModule, error) {
	query, args := r.db.Builder().
		Select("id", "s_no", "title", "expert").
		From("training_module").
		Where("id = ?", id).
		Build()

	var m domain.TrainingModule
	err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.SNo, &m.Title, &m.Expert)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("training module %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *trainingModuleRepository) Update(ctx context.Context, m *domain.TrainingModule) error {
	query, args := r.db.Builder().
		Update("training_module").
		Set("s_no", m.SNo).
		Set("title", m.Title).
		Set("expert", m.Expert).
		Where("id = ?", m.ID).
		Build()

	res, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapModuleWriteError(err)
	}
	return requireAffected(res, "training module", m.ID)
}

func (r *trainingModuleRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "training_module", "training module", id)
}

func (r *trainingModuleRepository) List(ctx context.Context) ([]domain.TrainingModule, error) {
	query, args := r.db.Builder().
		Select("id", "s_no", "title", "expert").
		From("training_module").
		OrderBy("s_no ASC").
		Build()

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	modules := []domain.TrainingModule{}
	for rows.Next() {
		var m domain.TrainingModule
		if err := rows.Scan(&m.ID, &m.SNo, &m.Title, &m.Expert); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

func (r *trainingModuleRepository) UpsertBySNo(ctx context.Context, m *domain.TrainingModule) (bool, error) {
	query, args := r.db.Builder().
		Select("id").
		From("training_module").
		Where("s_no = ?", m.SNo).
		Build()

	err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&m.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return true, r.Create(ctx, m)
	case err != nil:
		return false, err
	}
	return false, r.Update(ctx, m)
}

func mapModuleWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		return apperrors.NewValidationError("s_no", "training module with this s no already exists.")
	}
	return err
}

type employeeTrainingModuleRepository struct {
	db *database.DB
}

func NewEmployeeTrainingModuleRepository(db *database.DB) domain.EmployeeTrainingModuleRepository {
	return &employeeTrainingModuleRepository{db: db}
}

var employeeModuleColumns = []string{"id", "employee_id", "module_id", "status", "completed_date"}

func (r *employeeTrainingModuleRepository) Create(ctx context.Context, m *domain.EmployeeTrainingModule) error {
	if m.Status == "" {
		m.Status = domain.DefaultModuleStatus
	}
	query, args := r.db.Builder().
		Insert("employee_training_module", employeeModuleColumns[1:]...).
		Values(m.EmployeeID, m.ModuleID, m.Status, m.CompletedDate).
		Returning("id").
		Build()

	if err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&m.ID); err != nil {
		return mapEmployeeModuleWriteError(err)
	}
	return nil
}

func (r *employeeTrainingModuleRepository) GetByID(ctx context.Context, id int64) (*domain.EmployeeTrainingModule, error) {
	query, args := r.db.Builder().
		Select(employeeModuleColumns...).
		From("employee_training_module").
		Where("id = ?", id).
		Build()

	m, err := scanEmployeeModule(r.db.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("employee training module %d not found", id)
	}
	return m, err
}

// Find returns the stored row for the pair, or an ErrNotFound error.
func (r *employeeTrainingModuleRepository) Find(ctx context.Context, employeeID, moduleID int64) (*domain.EmployeeTrainingModule, error) {
	query, args := r.db.Builder().
		Select(employeeModuleColumns...).
		From("employee_training_module").
		Where("employee_id = ?", employeeID).
		Where("module_id = ?", moduleID).
		Build()

	m, err := scanEmployeeModule(r.db.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("module %d not assigned to employee %d", moduleID, employeeID)
	}
	return m, err
}

func (r *employeeTrainingModuleRepository) Update(ctx context.Context, m *domain.EmployeeTrainingModule) error {
	query, args := r.db.Builder().
		Update("employee_training_module").
		Set("employee_id", m.EmployeeID).
		Set("module_id", m.ModuleID).
		Set("status", m.Status).
		Set("completed_date", m.CompletedDate).
		Where("id = ?", m.ID).
		Build()

	res, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapEmployeeModuleWriteError(err)
	}
	return requireAffected(res, "employee training module", m.ID)
}

func (r *employeeTrainingModuleRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "employee_training_module", "employee training module", id)
}

func (r *employeeTrainingModuleRepository) List(ctx context.Context, f domain.RecordFilter) ([]domain.EmployeeTrainingModule, error) {
	b := r.db.Builder().
		Select(employeeModuleColumns...).
		From("employee_training_module").
		OrderBy("employee_id ASC", "module_id ASC")
	if f.ModuleID > 0 {
		b.Where("module_id = ?", f.ModuleID)
	}
	if f.Status != "" {
		b.Where("status = ?", f.Status)
	}
	applyRecordFilter(b, f)

	query, args := b.Build()
	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.EmployeeTrainingModule{}
	for rows.Next() {
		m, err := scanEmployeeModule(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *employeeTrainingModuleRepository) Count(ctx context.Context, f domain.RecordFilter) (int, error) {
	b := r.db.Builder().Select("COUNT(*)").From("employee_training_module")
	if f.EmployeeID > 0 {
		b.Where("employee_id = ?", f.EmployeeID)
	}
	if f.ModuleID > 0 {
		b.Where("module_id = ?", f.ModuleID)
	}
	if f.Status != "" {
		b.Where("status = ?", f.Status)
	}

	query, args := b.Build()
	var n int
	err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *employeeTrainingModuleRepository) StatusView(ctx context.Context, employeeID int64) ([]domain.ModuleStatusView, error) {
	query, args := r.db.Builder().
		Select("m.id", "m.s_no", "m.title", "m.expert", "etm.id", "etm.status", "etm.completed_date").
		From("training_module m").
		Join("LEFT", "employee_training_module etm", "etm.module_id = m.id AND etm.employee_id = ?", employeeID).
		OrderBy("m.s_no ASC").
		Build()

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []domain.ModuleStatusView{}
	for rows.Next() {
		var (
			v      domain.ModuleStatusView
			status sql.NullString
		)
		if err := rows.Scan(&v.Module.ID, &v.Module.SNo, &v.Module.Title, &v.Module.Expert,
			&v.ID, &status, &v.CompletedDate); err != nil {
			return nil, err
		}
		v.Status = domain.DefaultModuleStatus
		if status.Valid && status.String != "" {
			v.Status = status.String
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func scanEmployeeModule(row scanner) (*domain.EmployeeTrainingModule, error) {
	var m domain.EmployeeTrainingModule
	if err := row.Scan(&m.ID, &m.EmployeeID, &m.ModuleID, &m.Status, &m.CompletedDate); err != nil {
		return nil, err
	}
	return &m, nil
}

func mapEmployeeModuleWriteError(err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return apperrors.NewValidationError("non_field_errors", "The fields employee, module_id must make a unique set.")
	case database.IsForeignKeyViolation(err):
		return apperrors.NewValidationError("module_id", "employee or training module does not exist.")
	}
	return err
}
