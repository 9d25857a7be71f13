package service

import (
	"time"

	"github.com/locvowork/skilltrack/internal/domain"
)

// Unassigned groups employees with an empty grouping field.
const Unassigned = "unassigned"

// statsAccumulator folds employees, newest first, into EmployeeStats.
type statsAccumulator struct {
	since time.Time
	limit int
	stats domain.EmployeeStats
}

func newStatsAccumulator(since time.Time, limit int) *statsAccumulator {
	return &statsAccumulator{
		since: since,
		limit: limit,
		stats: domain.EmployeeStats{
			EmployeesByAreaOfWork: map[string]int{},
			EmployeesBySkillLevel: map[string]int{},
			EmployeesByPlant:      map[string]int{},
			RecentAdditions:       []domain.EmployeeSummary{},
		},
	}
}

func (a *statsAccumulator) Add(e *domain.Employee) {
	a.stats.TotalEmployees++
	a.stats.EmployeesByAreaOfWork[groupKey(e.AreaOfWork)]++
	a.stats.EmployeesBySkillLevel[groupKey(e.SkillLevel)]++
	a.stats.EmployeesByPlant[groupKey(e.Plant)]++

	if len(a.stats.RecentAdditions) < a.limit && !e.CreatedAt.Before(a.since) {
		a.stats.RecentAdditions = append(a.stats.RecentAdditions, e.Summary())
	}
}

func (a *statsAccumulator) Result() *domain.EmployeeStats {
	return &a.stats
}

func groupKey(v string) string {
	if v == "" {
		return Unassigned
	}
	return v
}
