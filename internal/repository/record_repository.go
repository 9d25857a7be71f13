package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/database"
	"github.com/locvowork/skilltrack/internal/domain"
)

type trainingRecordRepository struct {
	db *database.DB
}

func NewTrainingRecordRepository(db *database.DB) domain.TrainingRecordRepository {
	return &trainingRecordRepository{db: db}
}

var trainingRecordColumns = []string{"id", "employee_id", "date", "training_program", "duration"}

func (r *trainingRecordRepository) Create(ctx context.Context, t *domain.TrainingRecord) error {
	query, args := r.db.Builder().
		Insert("training_record", trainingRecordColumns[1:]...).
		Values(t.EmployeeID, t.Date, t.TrainingProgram, t.Duration).
		Returning("id").
		Build()

	if err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&t.ID); err != nil {
		return mapRecordWriteError(err, "", "")
	}
	return nil
}

func (r *trainingRecordRepository) GetByID(ctx context.Context, id int64) (*domain.TrainingRecord, error) {
	query, args := r.db.Builder().
		Select(trainingRecordColumns...).
		From("training_record").
		Where("id = ?", id).
		Build()

	t, err := scanTrainingRecord(r.db.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("training record %d not found", id)
	}
	return t, err
}

func (r *trainingRecordRepository) Update(ctx context.Context, t *domain.TrainingRecord) error {
	query, args := r.db.Builder().
		Update("training_record").
		Set("employee_id", t.EmployeeID).
		Set("date", t.Date).
		Set("training_program", t.TrainingProgram).
		Set("duration", t.Duration).
		Where("id = ?", t.ID).
		Build()

	res, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapRecordWriteError(err, "", "")
	}
	return requireAffected(res, "training record", t.ID)
}

func (r *trainingRecordRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "training_record", "training record", id)
}

func (r *trainingRecordRepository) List(ctx context.Context, f domain.RecordFilter) ([]domain.TrainingRecord, error) {
	b := r.db.Builder().
		Select(trainingRecordColumns...).
		From("training_record").
		OrderBy("date DESC", "id DESC")
	applyRecordFilter(b, f)

	query, args := b.Build()
	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.TrainingRecord{}
	for rows.Next() {
		t, err := scanTrainingRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *t)
	}
	return records, rows.Err()
}

func (r *trainingRecordRepository) Count(ctx context.Context, f domain.RecordFilter) (int, error) {
	return countRecords(ctx, r.db, "training_record", f)
}

func scanTrainingRecord(row scanner) (*domain.TrainingRecord, error) {
	var t domain.TrainingRecord
	if err := row.Scan(&t.ID, &t.EmployeeID, &t.Date, &t.TrainingProgram, &t.Duration); err != nil {
		return nil, err
	}
	return &t, nil
}

type ojtRepository struct {
	db *database.DB
}

func NewOJTRepository(db *database.DB) domain.OJTRepository {
	return &ojtRepository{db: db}
}

var ojtColumns = []string{
	"id", "employee_id", "product_process", "machine_operations", "quality_check_points",
	"secondary_operations", "handling", "packing_labeling", "others",
}

func (r *ojtRepository) Create(ctx context.Context, o *domain.OnJobTraining) error {
	query, args := r.db.Builder().
		Insert("ojt_record", ojtColumns[1:]...).
		Values(o.EmployeeID, o.ProductProcess, o.MachineOperations, o.QualityCheckPoints,
			o.SecondaryOperations, o.Handling, o.PackingLabeling, o.Others).
		Returning("id").
		Build()

	if err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&o.ID); err != nil {
		return mapRecordWriteError(err, "", "")
	}
	return nil
}

func (r *ojtRepository) GetByID(ctx context.Context, id int64) (*domain.OnJobTraining, error) {
	query, args := r.db.Builder().
		Select(ojtColumns...).
		From("ojt_record").
		Where("id = ?", id).
		Build()

	o, err := scanOJT(r.db.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("ojt record %d not found", id)
	}
	return o, err
}

func (r *ojtRepository) Update(ctx context.Context, o *domain.OnJobTraining) error {
	query, args := r.db.Builder().
		Update("ojt_record").
		Set("employee_id", o.EmployeeID).
		Set("product_process", o.ProductProcess).
		Set("machine_operations", o.MachineOperations).
		Set("quality_check_points", o.QualityCheckPoints).
		Set("secondary_operations", o.SecondaryOperations).
		Set("handling", o.Handling).
		Set("packing_labeling", o.PackingLabeling).
		Set("others", o.Others).
		Where("id = ?", o.ID).
		Build()

	res, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapRecordWriteError(err, "", "")
	}
	return requireAffected(res, "ojt record", o.ID)
}

func (r *ojtRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "ojt_record", "ojt record", id)
}

func (r *ojtRepository) List(ctx context.Context, f domain.RecordFilter) ([]domain.OnJobTraining, error) {
	b := r.db.Builder().
		Select(ojtColumns...).
		From("ojt_record").
		OrderBy("id ASC")
	applyRecordFilter(b, f)

	query, args := b.Build()
	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.OnJobTraining{}
	for rows.Next() {
		o, err := scanOJT(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *o)
	}
	return records, rows.Err()
}

func (r *ojtRepository) Count(ctx context.Context, f domain.RecordFilter) (int, error) {
	return countRecords(ctx, r.db, "ojt_record", f)
}

func scanOJT(row scanner) (*domain.OnJobTraining, error) {
	var o domain.OnJobTraining
	err := row.Scan(&o.ID, &o.EmployeeID, &o.ProductProcess, &o.MachineOperations, &o.QualityCheckPoints,
		&o.SecondaryOperations, &o.Handling, &o.PackingLabeling, &o.Others)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
