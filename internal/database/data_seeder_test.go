package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/skilltrack/internal/catalog"
	"github.com/locvowork/skilltrack/internal/database"
	"github.com/locvowork/skilltrack/internal/database/dbtest"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/repository"
)

func newSeeder(db *database.DB) (*database.DataSeeder, database.SeedRepositories) {
	repos := database.SeedRepositories{
		Employees:   repository.NewEmployeeRepository(db),
		Modules:     repository.NewTrainingModuleRepository(db),
		Assignments: repository.NewEmployeeTrainingModuleRepository(db),
		Trainings:   repository.NewTrainingRecordRepository(db),
		Dexterity:   repository.NewDexterityRepository(db),
		Performance: repository.NewPerformanceRepository(db),
	}
	return database.NewDataSeeder(db, repos, catalog.Default()), repos
}

func TestDataSeeder_SeedTrainingModulesIsRepeatable(t *testing.T) {
	ctx := context.Background()
	seeder, repos := newSeeder(dbtest.NewTestDB(t))
	want := len(catalog.Default().TrainingModules)

	created, updated, err := seeder.SeedTrainingModules(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, created)
	assert.Zero(t, updated)

	created, updated, err = seeder.SeedTrainingModules(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, want, updated)

	modules, err := repos.Modules.List(ctx)
	require.NoError(t, err)
	assert.Len(t, modules, want)
}

func TestDataSeeder_SeedSampleData(t *testing.T) {
	ctx := context.Background()
	seeder, repos := newSeeder(dbtest.NewTestDB(t))

	n, err := seeder.SeedSampleData(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = seeder.SeedSampleData(ctx, 3)
	require.NoError(t, err)
	assert.Zero(t, n)

	total, err := repos.Employees.Count(ctx, domain.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	e, err := repos.Employees.GetByEmpNo(ctx, "S0001")
	require.NoError(t, err)
	perf, err := repos.Performance.Count(ctx, domain.RecordFilter{EmployeeID: e.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, perf)

	dex, err := repos.Dexterity.List(ctx, domain.RecordFilter{EmployeeID: e.ID})
	require.NoError(t, err)
	require.Len(t, dex, 1)
	assert.Equal(t, dex[0].BasicSkillsTotal+dex[0].AdvancedSkillsTotal, dex[0].OverallScore)
}

func TestGetPresetSize(t *testing.T) {
	assert.Equal(t, 10, database.GetPresetSize(database.PresetSmall))
	assert.Equal(t, 50, database.GetPresetSize(database.PresetMedium))
	assert.Equal(t, 200, database.GetPresetSize(database.PresetLarge))
}
