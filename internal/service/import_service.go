package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/catalog"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/importer"
	"github.com/locvowork/skilltrack/internal/logger"
	"github.com/locvowork/skilltrack/pkg/simpleexcel"
)

// ImportService runs spreadsheet imports and keeps their reports.
type ImportService struct {
	employees domain.EmployeeRepository
	catalog   *catalog.Catalog
	history   domain.ImportHistory
	indexer   domain.EmployeeIndexer
}

// NewImportService creates an ImportService. history and indexer may be nil.
func NewImportService(employees domain.EmployeeRepository, cat *catalog.Catalog, history domain.ImportHistory, indexer domain.EmployeeIndexer) *ImportService {
	return &ImportService{employees: employees, catalog: cat, history: history, indexer: indexer}
}

// Import reads an .xlsx or .csv file and upserts its employees. Only an
// unreadable file fails the call; row problems end up in the report.
func (s *ImportService) Import(ctx context.Context, r io.Reader, filename string) (*domain.ImportReport, error) {
	report := &domain.ImportReport{
		RunID:     uuid.New().String(),
		FileName:  filename,
		StartedAt: time.Now().UTC(),
		Warnings:  []string{},
	}
	ctx = logger.WithLogger(ctx, map[string]interface{}{"import_run": report.RunID})

	sheet, err := simpleexcel.Read(r, filename)
	if err != nil {
		return nil, apperrors.NewImportFileError("cannot read %s: %v", filename, err)
	}

	im := importer.New(s.employees, s.catalog)
	if s.indexer != nil {
		im.OnSaved = func(ctx context.Context, e *domain.Employee) {
			if err := s.indexer.IndexEmployee(ctx, e); err != nil {
				logger.WarnLog(ctx, "failed to index employee %s: %v", e.EmpNo, err)
			}
		}
	}
	if err := im.Run(ctx, sheet, report); err != nil {
		return nil, err
	}
	report.FinishedAt = time.Now().UTC()

	if s.history != nil {
		if err := s.history.SaveImportReport(ctx, report); err != nil && !errors.Is(err, apperrors.ErrNotConfigured) {
			logger.WarnLog(ctx, "failed to save import report: %v", err)
		}
	}
	return report, nil
}

// History lists the most recent import reports.
func (s *ImportService) History(ctx context.Context, limit int) ([]domain.ImportReport, error) {
	if s.history == nil {
		return nil, apperrors.ErrNotConfigured
	}
	return s.history.ListImportReports(ctx, limit)
}
