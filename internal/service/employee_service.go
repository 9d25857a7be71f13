package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/catalog"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/logger"
	"github.com/locvowork/skilltrack/internal/storage"
)

// Repositories groups the stores the services work with.
type Repositories struct {
	Employees   domain.EmployeeRepository
	Modules     domain.TrainingModuleRepository
	Assignments domain.EmployeeTrainingModuleRepository
	Trainings   domain.TrainingRecordRepository
	OJT         domain.OJTRepository
	Dexterity   domain.DexterityRepository
	Performance domain.PerformanceRepository
}

// EmployeeService handles business logic for employees
type EmployeeService struct {
	tx      domain.TxManager
	repos   Repositories
	catalog *catalog.Catalog
	photos  storage.PhotoStorage
	indexer domain.EmployeeIndexer

	recentWindow time.Duration
	recentLimit  int
}

// NewEmployeeService creates a new EmployeeService instance. indexer may be nil.
func NewEmployeeService(
	tx domain.TxManager,
	repos Repositories,
	cat *catalog.Catalog,
	photos storage.PhotoStorage,
	indexer domain.EmployeeIndexer,
) *EmployeeService {
	return &EmployeeService{
		tx:           tx,
		repos:        repos,
		catalog:      cat,
		photos:       photos,
		indexer:      indexer,
		recentWindow: 30 * 24 * time.Hour,
		recentLimit:  10,
	}
}

// WithRecentAdditions overrides the statistics window and default limit.
func (s *EmployeeService) WithRecentAdditions(window time.Duration, limit int) *EmployeeService {
	if window > 0 {
		s.recentWindow = window
	}
	if limit > 0 {
		s.recentLimit = limit
	}
	return s
}

// ==================== Employee Operations ====================

// Create stores a new employee. Duplicate emp_no is a validation error.
func (s *EmployeeService) Create(ctx context.Context, e *domain.Employee) error {
	if err := s.repos.Employees.Create(ctx, e); err != nil {
		return err
	}
	s.index(ctx, e)
	return nil
}

// CreateBatch stores every employee or none of them. Validation errors are
// keyed by the position of the offending item.
func (s *EmployeeService) CreateBatch(ctx context.Context, employees []*domain.Employee) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for i, e := range employees {
			if err := s.repos.Employees.Create(ctx, e); err != nil {
				return prefixValidation(fmt.Sprintf("[%d]", i), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, e := range employees {
		s.index(ctx, e)
	}
	return nil
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.repos.Employees.GetByID(ctx, id)
}

// GetByEmpNo is the exact employee number lookup.
func (s *EmployeeService) GetByEmpNo(ctx context.Context, empNo string) (*domain.Employee, error) {
	if empNo == "" {
		return nil, apperrors.NewBadRequestError("emp_no parameter is required")
	}
	return s.repos.Employees.GetByEmpNo(ctx, empNo)
}

// Update overwrites every stored field of e. Photo and timestamps are kept.
func (s *EmployeeService) Update(ctx context.Context, e *domain.Employee) error {
	if err := s.repos.Employees.Update(ctx, e); err != nil {
		return err
	}
	s.index(ctx, e)
	return nil
}

// List returns one page of employees and the total number of matches.
func (s *EmployeeService) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, int, error) {
	total, err := s.repos.Employees.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	employees, err := s.repos.Employees.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// Detail loads the employee with the derived module list and every owned record.
func (s *EmployeeService) Detail(ctx context.Context, id int64) (*domain.EmployeeDetail, error) {
	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &domain.EmployeeDetail{Employee: *e}
	owned := domain.RecordFilter{EmployeeID: id}

	if d.TrainingModules, err = s.repos.Assignments.StatusView(ctx, id); err != nil {
		return nil, fmt.Errorf("load training modules: %w", err)
	}
	if d.TrainingRecords, err = s.repos.Trainings.List(ctx, owned); err != nil {
		return nil, fmt.Errorf("load training records: %w", err)
	}
	if d.OJTRecords, err = s.repos.OJT.List(ctx, owned); err != nil {
		return nil, fmt.Errorf("load ojt records: %w", err)
	}
	if d.DexterityAssessments, err = s.repos.Dexterity.List(ctx, owned); err != nil {
		return nil, fmt.Errorf("load dexterity assessments: %w", err)
	}
	if d.PerformanceRecords, err = s.repos.Performance.List(ctx, owned); err != nil {
		return nil, fmt.Errorf("load performance records: %w", err)
	}
	return d, nil
}

// Stats aggregates the whole employee table in one pass. limit <= 0 uses the default.
func (s *EmployeeService) Stats(ctx context.Context, limit int) (*domain.EmployeeStats, error) {
	if limit <= 0 {
		limit = s.recentLimit
	}
	acc := newStatsAccumulator(time.Now().UTC().Add(-s.recentWindow), limit)
	if err := s.repos.Employees.Each(ctx, func(e *domain.Employee) error {
		acc.Add(e)
		return nil
	}); err != nil {
		return nil, err
	}
	return acc.Result(), nil
}

// UploadPhoto stores an image and points the employee's photo at it.
func (s *EmployeeService) UploadPhoto(ctx context.Context, id int64, r io.Reader, contentType string) (*domain.Employee, error) {
	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.photos.SavePhoto(ctx, r, contentType)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Employees.UpdatePhoto(ctx, id, url); err != nil {
		_ = s.photos.DeletePhoto(ctx, url)
		return nil, err
	}

	if e.Photo != nil {
		if err := s.photos.DeletePhoto(ctx, *e.Photo); err != nil {
			logger.WarnLog(ctx, "failed to remove old photo of employee %d: %v", id, err)
		}
	}
	e.Photo = &url
	return e, nil
}

// index mirrors e into the search index. Failures are logged, never returned.
func (s *EmployeeService) index(ctx context.Context, e *domain.Employee) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexEmployee(ctx, e); err != nil {
		logger.WarnLog(ctx, "failed to index employee %s: %v", e.EmpNo, err)
	}
}

func prefixValidation(prefix string, err error) error {
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	out := &apperrors.ValidationError{}
	for field, msg := range verr.Fields {
		out.Add(prefix+"."+field, msg)
	}
	return out
}
