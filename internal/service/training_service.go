package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/catalog"
	"github.com/locvowork/skilltrack/internal/domain"
)

// ModuleStatusInput is one requested change of the bulk module update.
// CompletedDate is YYYY-MM-DD text; nil or empty leaves a stored date alone.
type ModuleStatusInput struct {
	ModuleID      int64   `json:"module_id"`
	Status        string  `json:"status"`
	CompletedDate *string `json:"completed_date"`
}

// UpdateTrainingModules applies every entry or none: the request is checked
// as a whole first, then written in one transaction.
func (s *EmployeeService) UpdateTrainingModules(ctx context.Context, employeeID int64, inputs []ModuleStatusInput) ([]domain.ModuleStatusView, error) {
	if _, err := s.repos.Employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	updates, err := s.validateModuleUpdates(ctx, inputs)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, u := range updates {
			if err := s.applyModuleUpdate(ctx, employeeID, u); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repos.Assignments.StatusView(ctx, employeeID)
}

func (s *EmployeeService) validateModuleUpdates(ctx context.Context, inputs []ModuleStatusInput) ([]domain.ModuleStatusUpdate, error) {
	verr := &apperrors.ValidationError{}
	if len(inputs) == 0 {
		verr.Add("updates", "This field is required.")
		return nil, verr
	}

	modules, err := s.repos.Modules.List(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[int64]bool, len(modules))
	for _, m := range modules {
		known[m.ID] = true
	}

	updates := make([]domain.ModuleStatusUpdate, 0, len(inputs))
	for i, in := range inputs {
		field := func(name string) string { return fmt.Sprintf("updates[%d].%s", i, name) }

		if !known[in.ModuleID] {
			verr.Add(field("module_id"), fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", in.ModuleID))
		}
		if !s.catalog.Has(catalog.ModuleStatus, in.Status) {
			verr.Add(field("status"), fmt.Sprintf("\"%s\" is not a valid choice.", in.Status))
		}

		u := domain.ModuleStatusUpdate{ModuleID: in.ModuleID, Status: in.Status}
		if in.CompletedDate != nil && *in.CompletedDate != "" {
			d, err := domain.ParseDate(*in.CompletedDate)
			if err != nil {
				verr.Add(field("completed_date"), "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
			} else {
				u.CompletedDate = &d
			}
		}
		updates = append(updates, u)
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return updates, nil
}

// applyModuleUpdate creates or overwrites one row. A stored date is only
// replaced by a supplied one; a new accepted row without a date is dated today.
func (s *EmployeeService) applyModuleUpdate(ctx context.Context, employeeID int64, u domain.ModuleStatusUpdate) error {
	current, err := s.repos.Assignments.Find(ctx, employeeID, u.ModuleID)
	if errors.Is(err, apperrors.ErrNotFound) {
		row := &domain.EmployeeTrainingModule{
			EmployeeID:    employeeID,
			ModuleID:      u.ModuleID,
			Status:        u.Status,
			CompletedDate: u.CompletedDate,
		}
		if row.CompletedDate == nil && u.Status == domain.ModuleStatusAccepted {
			row.CompletedDate = domain.DatePtr(domain.Today())
		}
		return s.repos.Assignments.Create(ctx, row)
	}
	if err != nil {
		return err
	}

	current.Status = u.Status
	if u.CompletedDate != nil {
		current.CompletedDate = u.CompletedDate
	}
	return s.repos.Assignments.Update(ctx, current)
}
