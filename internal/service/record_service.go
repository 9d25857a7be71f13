package service

import (
	"context"

	"github.com/locvowork/skilltrack/internal/domain"
)

// RecordRepository is the CRUD shape shared by the employee-owned record stores.
type RecordRepository[T any] interface {
	Create(ctx context.Context, r *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, r *T) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.RecordFilter) ([]T, error)
	Count(ctx context.Context, filter domain.RecordFilter) (int, error)
}

// RecordService exposes plain CRUD over one record store.
type RecordService[T any] struct {
	repo RecordRepository[T]
}

func NewRecordService[T any](repo RecordRepository[T]) *RecordService[T] {
	return &RecordService[T]{repo: repo}
}

func (s *RecordService[T]) Create(ctx context.Context, r *T) error {
	return s.repo.Create(ctx, r)
}

func (s *RecordService[T]) Get(ctx context.Context, id int64) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RecordService[T]) Update(ctx context.Context, r *T) error {
	return s.repo.Update(ctx, r)
}

func (s *RecordService[T]) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// List returns one page and the total number of matching records.
func (s *RecordService[T]) List(ctx context.Context, filter domain.RecordFilter) ([]T, int, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// PerformanceService adds the two approval actions to performance record CRUD.
type PerformanceService struct {
	*RecordService[domain.PerformanceRecord]
	repo domain.PerformanceRepository
}

func NewPerformanceService(repo domain.PerformanceRepository) *PerformanceService {
	return &PerformanceService{RecordService: NewRecordService[domain.PerformanceRecord](repo), repo: repo}
}

// ApproveSupervisor marks the record approved by a supervisor and returns it.
func (s *PerformanceService) ApproveSupervisor(ctx context.Context, id int64) (*domain.PerformanceRecord, error) {
	if err := s.repo.ApproveSupervisor(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// CertifyPersonnel marks the record certified by personnel and returns it.
func (s *PerformanceService) CertifyPersonnel(ctx context.Context, id int64) (*domain.PerformanceRecord, error) {
	if err := s.repo.CertifyPersonnel(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// ModuleCatalog adapts the training module store, which is small and
// unfiltered, to the record CRUD shape.
type ModuleCatalog struct {
	domain.TrainingModuleRepository
}

func (m ModuleCatalog) List(ctx context.Context, filter domain.RecordFilter) ([]domain.TrainingModule, error) {
	all, err := m.TrainingModuleRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	start := min(filter.Offset, len(all))
	end := len(all)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(all))
	}
	return all[start:end], nil
}

func (m ModuleCatalog) Count(ctx context.Context, _ domain.RecordFilter) (int, error) {
	all, err := m.TrainingModuleRepository.List(ctx)
	return len(all), err
}
