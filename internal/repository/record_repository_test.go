package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/database"
	"github.com/locvowork/skilltrack/internal/database/dbtest"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/repository"
)

func intPtr(i int) *int { return &i }

func newEmployee(t *testing.T, db *database.DB, empNo string) *domain.Employee {
	t.Helper()
	e := &domain.Employee{EmpNo: empNo, Name: "Employee " + empNo}
	require.NoError(t, repository.NewEmployeeRepository(db).Create(context.Background(), e))
	return e
}

func TestTrainingModuleRepository_UpsertBySNo(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTrainingModuleRepository(dbtest.NewTestDB(t))

	created, err := repo.UpsertBySNo(ctx, &domain.TrainingModule{SNo: 1, Title: "Safety", Expert: "A"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.UpsertBySNo(ctx, &domain.TrainingModule{SNo: 1, Title: "Safety basics", Expert: "B"})
	require.NoError(t, err)
	assert.False(t, created)

	modules, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "Safety basics", modules[0].Title)

	err = repo.Create(ctx, &domain.TrainingModule{SNo: 1, Title: "dup"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEmployeeTrainingModuleRepository_StatusView(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewTestDB(t)
	modules := repository.NewTrainingModuleRepository(db)
	links := repository.NewEmployeeTrainingModuleRepository(db)
	emp := newEmployee(t, db, "E001")
	other := newEmployee(t, db, "E002")

	m1 := &domain.TrainingModule{SNo: 2, Title: "Quality"}
	m2 := &domain.TrainingModule{SNo: 1, Title: "Safety"}
	require.NoError(t, modules.Create(ctx, m1))
	require.NoError(t, modules.Create(ctx, m2))

	done := mustDate(t, "2024-03-01")
	require.NoError(t, links.Create(ctx, &domain.EmployeeTrainingModule{
		EmployeeID: emp.ID, ModuleID: m1.ID, Status: "accepted", CompletedDate: &done,
	}))
	require.NoError(t, links.Create(ctx, &domain.EmployeeTrainingModule{
		EmployeeID: other.ID, ModuleID: m2.ID, Status: "denied",
	}))

	views, err := links.StatusView(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "Safety", views[0].Module.Title)
	assert.Nil(t, views[0].ID)
	assert.Equal(t, "pending", views[0].Status)
	assert.Nil(t, views[0].CompletedDate)

	assert.Equal(t, "Quality", views[1].Module.Title)
	require.NotNil(t, views[1].ID)
	assert.Equal(t, "accepted", views[1].Status)
	require.NotNil(t, views[1].CompletedDate)
	assert.Equal(t, "2024-03-01", views[1].CompletedDate.String())

	err = links.Create(ctx, &domain.EmployeeTrainingModule{EmployeeID: emp.ID, ModuleID: m1.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	found, err := links.Find(ctx, emp.ID, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, "accepted", found.Status)

	_, err = links.Find(ctx, emp.ID, m2.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDexterityRepository_TotalsRecomputedOnWrite(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewTestDB(t)
	repo := repository.NewDexterityRepository(db)
	emp := newEmployee(t, db, "E001")

	d := &domain.DexterityAssessment{
		EmployeeID:       emp.ID,
		Test1S2S:         intPtr(4),
		WrittenTest:      intPtr(18),
		Painting:         intPtr(12),
		BasicSkillsTotal: 999,
	}
	require.NoError(t, repo.Create(ctx, d))

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 22, got.BasicSkillsTotal)
	assert.Equal(t, 12, got.AdvancedSkillsTotal)
	assert.Equal(t, 34, got.OverallScore)
	assert.Nil(t, got.MemoryTest)

	got.WrittenTest = nil
	got.OverallScore = 0
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.BasicSkillsTotal)
	assert.Equal(t, 16, got.OverallScore)
}

func TestPerformanceRepository_ApprovalFlags(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewTestDB(t)
	repo := repository.NewPerformanceRepository(db)
	emp := newEmployee(t, db, "E001")

	p := &domain.PerformanceRecord{EmployeeID: emp.ID, Day: 3, SupervisorApproved: true, PersonnelCertified: true}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.SupervisorApproved)
	assert.False(t, got.PersonnelCertified)

	require.NoError(t, repo.ApproveSupervisor(ctx, p.ID))
	got.Description = "edited"
	got.SupervisorApproved = false
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.SupervisorApproved)
	assert.False(t, got.PersonnelCertified)
	assert.Equal(t, "edited", got.Description)

	require.NoError(t, repo.CertifyPersonnel(ctx, p.ID))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.PersonnelCertified)

	err = repo.Create(ctx, &domain.PerformanceRecord{EmployeeID: emp.ID, Day: 3})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.ErrorIs(t, repo.ApproveSupervisor(ctx, 999), apperrors.ErrNotFound)
}

func TestRecordRepositories_ForeignKeyAndOrdering(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewTestDB(t)
	records := repository.NewTrainingRecordRepository(db)
	ojt := repository.NewOJTRepository(db)
	emp := newEmployee(t, db, "E001")

	err := records.Create(ctx, &domain.TrainingRecord{EmployeeID: 999, Date: mustDate(t, "2024-01-01"), TrainingProgram: "x", Duration: "1h"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	for _, d := range []string{"2024-01-01", "2024-02-01"} {
		require.NoError(t, records.Create(ctx, &domain.TrainingRecord{
			EmployeeID: emp.ID, Date: mustDate(t, d), TrainingProgram: "Induction", Duration: "2h",
		}))
	}

	list, err := records.List(ctx, domain.RecordFilter{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-02-01", list[0].Date.String())

	o := &domain.OnJobTraining{EmployeeID: emp.ID, Handling: "forklift"}
	require.NoError(t, ojt.Create(ctx, o))
	o.Handling = "crane"
	require.NoError(t, ojt.Update(ctx, o))

	n, err := ojt.Count(ctx, domain.RecordFilter{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, ojt.Delete(ctx, o.ID))
	assert.ErrorIs(t, ojt.Delete(ctx, o.ID), apperrors.ErrNotFound)
}
