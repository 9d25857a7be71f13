package repository

import (
	"context"
	"database/sql"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/database"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/repository/builder"
)

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func requireAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NewNotFoundError("%s %d not found", entity, id)
	}
	return nil
}

// mapRecordWriteError turns constraint failures of employee-owned records into field errors.
func mapRecordWriteError(err error, uniqueField, uniqueMsg string) error {
	switch {
	case database.IsForeignKeyViolation(err):
		return apperrors.NewValidationError("employee", "referenced object does not exist.")
	case uniqueField != "" && database.IsUniqueViolation(err):
		return apperrors.NewValidationError(uniqueField, uniqueMsg)
	}
	return err
}

func applyRecordFilter(b *builder.SQLBuilder, f domain.RecordFilter) {
	if f.EmployeeID > 0 {
		b.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Limit > 0 {
		b.Limit(f.Limit)
	}
	if f.Offset > 0 {
		b.Offset(f.Offset)
	}
}

func countRecords(ctx context.Context, db *database.DB, table string, f domain.RecordFilter) (int, error) {
	b := db.Builder().Select("COUNT(*)").From(table)
	if f.EmployeeID > 0 {
		b.Where("employee_id = ?", f.EmployeeID)
	}
	query, args := b.Build()
	var n int
	err := db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func deleteByID(ctx context.Context, db *database.DB, table, entity string, id int64) error {
	query, args := db.Builder().Delete(table).Where("id = ?", id).Build()
	res, err := db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(res, entity, id)
}
