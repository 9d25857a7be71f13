package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/logger"
	"github.com/locvowork/skilltrack/pkg/dataflow"
)

// ReindexService rebuilds the employee search index from the relational store.
type ReindexService struct {
	employees domain.EmployeeRepository
	indexer   domain.EmployeeIndexer

	BatchSize int
	Workers   int
	Retries   int
}

func NewReindexService(employees domain.EmployeeRepository, indexer domain.EmployeeIndexer) *ReindexService {
	return &ReindexService{employees: employees, indexer: indexer, BatchSize: 200, Workers: 4, Retries: 3}
}

// Reindex streams every employee into bulk index requests and returns how
// many were indexed. A batch is retried with backoff before the run fails.
func (s *ReindexService) Reindex(ctx context.Context) (int, error) {
	if s.indexer == nil {
		return 0, apperrors.ErrNotConfigured
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	source, wait := dataflow.Generate(ctx, func(ctx context.Context, emit func(domain.Employee) bool) error {
		return s.employees.Each(ctx, func(e *domain.Employee) error {
			if !emit(*e) {
				return ctx.Err()
			}
			return nil
		})
	}, dataflow.WithBufferSize(s.BatchSize))

	var indexed int64
	err := dataflow.ForEach(ctx, dataflow.Batch(ctx, source, s.BatchSize), func(batch []domain.Employee) error {
		if err := s.indexer.BulkIndexEmployees(ctx, batch); err != nil {
			logger.WarnLog(ctx, "bulk index of %d employees failed: %v", len(batch), err)
			return err
		}
		atomic.AddInt64(&indexed, int64(len(batch)))
		return nil
	},
		dataflow.WithWorkers(s.Workers),
		dataflow.WithRetry(s.Retries, func(attempt int) time.Duration {
			return time.Duration(attempt) * 200 * time.Millisecond
		}),
	)
	if err != nil {
		cancel()
		_ = wait()
		return int(atomic.LoadInt64(&indexed)), err
	}
	if err := wait(); err != nil {
		return int(indexed), err
	}

	logger.InfoLog(ctx, "reindex finished: %d employees", indexed)
	return int(indexed), nil
}
