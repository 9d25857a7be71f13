package database

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/catalog"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/logger"
)

// SeedRepositories are the stores the seeder writes through.
type SeedRepositories struct {
	Employees   domain.EmployeeRepository
	Modules     domain.TrainingModuleRepository
	Assignments domain.EmployeeTrainingModuleRepository
	Trainings   domain.TrainingRecordRepository
	Dexterity   domain.DexterityRepository
	Performance domain.PerformanceRepository
}

type DataSeeder struct {
	tx    domain.TxManager
	repos SeedRepositories
	cat   *catalog.Catalog
	rnd   *rand.Rand
}

func NewDataSeeder(tx domain.TxManager, repos SeedRepositories, cat *catalog.Catalog) *DataSeeder {
	return &DataSeeder{tx: tx, repos: repos, cat: cat, rnd: rand.New(rand.NewSource(1))}
}

// SeedTrainingModules creates the default catalog modules or refreshes the ones already stored.
func (ds *DataSeeder) SeedTrainingModules(ctx context.Context) (created, updated int, err error) {
	err = ds.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, seed := range ds.cat.TrainingModules {
			m := &domain.TrainingModule{SNo: seed.SNo, Title: seed.Title, Expert: seed.Expert}
			isNew, err := ds.repos.Modules.UpsertBySNo(ctx, m)
			if err != nil {
				return fmt.Errorf("failed to seed module %d: %w", seed.SNo, err)
			}
			if isNew {
				created++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	logger.InfoLog(ctx, "Training modules seeded: %d created, %d updated", created, updated)
	return created, updated, nil
}

// Presets
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
)

// GetPresetSize returns the number of sample employees for a preset
func GetPresetSize(preset SeedPreset) int {
	switch preset {
	case PresetSmall:
		return 10
	case PresetLarge:
		return 200
	default:
		return 50
	}
}

var sampleNames = []string{
	"Arun Kumar", "Priya Sharma", "Ravi Teja", "Lakshmi Devi", "Suresh Babu",
	"Anitha Rao", "Karthik Reddy", "Meena Kumari", "Vijay Singh", "Divya Nair",
}

// SeedSampleData creates count sample employees with training history. Employees
// whose generated emp_no already exists are left alone.
func (ds *DataSeeder) SeedSampleData(ctx context.Context, count int) (int, error) {
	start := time.Now()

	if _, _, err := ds.SeedTrainingModules(ctx); err != nil {
		return 0, err
	}

	created := 0
	err := ds.tx.WithinTx(ctx, func(ctx context.Context) error {
		modules, err := ds.repos.Modules.List(ctx)
		if err != nil {
			return err
		}

		for i := 1; i <= count; i++ {
			empNo := fmt.Sprintf("S%04d", i)
			_, err := ds.repos.Employees.GetByEmpNo(ctx, empNo)
			if err == nil {
				continue
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}

			e := ds.sampleEmployee(empNo, i)
			if err := ds.repos.Employees.Create(ctx, e); err != nil {
				return fmt.Errorf("failed to insert employee %s: %w", empNo, err)
			}
			if err := ds.seedHistory(ctx, e, modules); err != nil {
				return fmt.Errorf("failed to insert history of %s: %w", empNo, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.InfoLog(ctx, "Sample data seeded: %d employees in %v", created, time.Since(start))
	return created, nil
}

func (ds *DataSeeder) sampleEmployee(empNo string, i int) *domain.Employee {
	pick := func(kind catalog.Kind) string {
		values := ds.cat.Values(kind)
		if len(values) == 0 {
			return ""
		}
		return values[ds.rnd.Intn(len(values))]
	}

	age := 19 + ds.rnd.Intn(30)
	sl1 := 40 + ds.rnd.Intn(61)
	percent := float64(5000+ds.rnd.Intn(5000)) / 100
	doj := domain.NewDate(time.Now().UTC().AddDate(0, 0, -ds.rnd.Intn(720)))
	batch := fmt.Sprintf("B%02d", 1+i%12)

	return &domain.Employee{
		EmpNo:          empNo,
		Name:           sampleNames[(i-1)%len(sampleNames)],
		Gender:         pick(catalog.Gender),
		Age:            &age,
		DOJ:            &doj,
		Plant:          pick(catalog.Plant),
		AreaOfWork:     pick(catalog.AreaOfWork),
		Category:       pick(catalog.Category),
		BatchNo:        &batch,
		TrainingDays:   1 + ds.rnd.Intn(30),
		SL1Marks:       &sl1,
		OverallPercent: &percent,
		SkillLevel:     pick(catalog.SkillLevel),
	}
}

func (ds *DataSeeder) seedHistory(ctx context.Context, e *domain.Employee, modules []domain.TrainingModule) error {
	statuses := ds.cat.Values(catalog.ModuleStatus)
	for _, m := range modules {
		status := statuses[ds.rnd.Intn(len(statuses))]
		link := &domain.EmployeeTrainingModule{EmployeeID: e.ID, ModuleID: m.ID, Status: status}
		if status == domain.ModuleStatusAccepted {
			link.CompletedDate = e.DOJ
		}
		if err := ds.repos.Assignments.Create(ctx, link); err != nil {
			return err
		}
	}

	if err := ds.repos.Trainings.Create(ctx, &domain.TrainingRecord{
		EmployeeID:      e.ID,
		Date:            *e.DOJ,
		TrainingProgram: "Induction",
		Duration:        "8 hours",
	}); err != nil {
		return err
	}

	score := func(max int) *int {
		v := ds.rnd.Intn(max + 1)
		return &v
	}
	if err := ds.repos.Dexterity.Create(ctx, &domain.DexterityAssessment{
		EmployeeID:           e.ID,
		Test1S2S:             score(5),
		MemoryTest:           score(5),
		PickPlaceSequence:    score(10),
		DefectIdentification: score(15),
		WrittenTest:          score(20),
		SafetyTest:           score(15),
		ScrewAssembly:        score(10),
	}); err != nil {
		return err
	}

	for day := 1; day <= 3; day++ {
		final := float64(60 + ds.rnd.Intn(40))
		if err := ds.repos.Performance.Create(ctx, &domain.PerformanceRecord{
			EmployeeID:    e.ID,
			Day:           day,
			Description:   "On line production",
			OperationName: e.AreaOfWork,
			FinalScore:    &final,
		}); err != nil {
			return err
		}
	}
	return nil
}
