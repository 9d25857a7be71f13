package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/database/dbtest"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/repository"
)

func strPtr(s string) *string { return &s }

func float64Ptr(f float64) *float64 { return &f }

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEmployeeRepository(dbtest.NewTestDB(t))

	dob := domain.DatePtr(mustDate(t, "1999-04-12"))
	e := &domain.Employee{
		EmpNo:          "E001",
		Name:           "John Doe",
		Gender:         "male",
		DOB:            dob,
		Plant:          "plant-a",
		BatchNo:        strPtr("B7"),
		OverallPercent: float64Ptr(85.5),
	}
	require.NoError(t, repo.Create(ctx, e))
	assert.NotZero(t, e.ID)

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "E001", got.EmpNo)
	assert.Equal(t, "sl0", got.SkillLevel)
	assert.Equal(t, "pending", got.SL1Status)
	require.NotNil(t, got.DOB)
	assert.Equal(t, "1999-04-12", got.DOB.String())
	assert.Nil(t, got.DOJ)
	assert.Nil(t, got.Remarks)
	require.NotNil(t, got.OverallPercent)
	assert.InDelta(t, 85.5, *got.OverallPercent, 0.001)

	byNo, err := repo.GetByEmpNo(ctx, "E001")
	require.NoError(t, err)
	assert.Equal(t, e.ID, byNo.ID)

	_, err = repo.GetByEmpNo(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEmployeeRepository_DuplicateEmpNo(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEmployeeRepository(dbtest.NewTestDB(t))

	require.NoError(t, repo.Create(ctx, &domain.Employee{EmpNo: "E001", Name: "First"}))

	err := repo.Create(ctx, &domain.Employee{EmpNo: "E001", Name: "Second"})
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "emp_no")

	n, err := repo.Count(ctx, domain.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEmployeeRepository_UpdateMissing(t *testing.T) {
	repo := repository.NewEmployeeRepository(dbtest.NewTestDB(t))

	err := repo.Update(context.Background(), &domain.Employee{ID: 42, EmpNo: "X", Name: "X"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEmployeeRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEmployeeRepository(dbtest.NewTestDB(t))

	seed := []domain.Employee{
		{EmpNo: "E001", Name: "John Smith", SkillLevel: "sl2", Plant: "plant-a", AreaOfWork: "Assembly"},
		{EmpNo: "E002", Name: "Johnny Walker", SkillLevel: "sl1", Plant: "plant-a", AreaOfWork: "Painting"},
		{EmpNo: "E003", Name: "Mary Jones", SkillLevel: "sl2", Plant: "plant-b", AreaOfWork: "Assembly", BatchNo: strPtr("JOHN-B")},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	tests := map[string]struct {
		filter domain.EmployeeFilter
		want   []string
	}{
		"no criteria returns everything newest first": {
			filter: domain.EmployeeFilter{},
			want:   []string{"E003", "E002", "E001"},
		},
		"name fragment and skill level are AND-ed": {
			filter: domain.EmployeeFilter{NameLike: "JOHN", SkillLevel: "sl2"},
			want:   []string{"E001"},
		},
		"area fragment is case insensitive": {
			filter: domain.EmployeeFilter{AreaOfWorkLike: "assem", Ordering: "emp_no"},
			want:   []string{"E001", "E003"},
		},
		"search covers batch number": {
			filter: domain.EmployeeFilter{Search: "john", Ordering: "emp_no"},
			want:   []string{"E001", "E002", "E003"},
		},
		"exact plant filter": {
			filter: domain.EmployeeFilter{Plant: "plant-b"},
			want:   []string{"E003"},
		},
		"descending name with paging": {
			filter: domain.EmployeeFilter{Ordering: "-name", Limit: 2},
			want:   []string{"E003", "E002"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			var empNos []string
			for _, e := range got {
				empNos = append(empNos, e.EmpNo)
			}
			assert.Equal(t, tt.want, empNos)

			if tt.filter.Limit == 0 {
				n, err := repo.Count(ctx, tt.filter)
				require.NoError(t, err)
				assert.Equal(t, len(tt.want), n)
			}
		})
	}
}

func TestEmployeeRepository_UnknownOrdering(t *testing.T) {
	repo := repository.NewEmployeeRepository(dbtest.NewTestDB(t))

	_, err := repo.List(context.Background(), domain.EmployeeFilter{Ordering: "salary"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEmployeeRepository_Each(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEmployeeRepository(dbtest.NewTestDB(t))

	for _, no := range []string{"A", "B", "C"} {
		require.NoError(t, repo.Create(ctx, &domain.Employee{EmpNo: no, Name: no}))
	}

	var seen []string
	err := repo.Each(ctx, func(e *domain.Employee) error {
		seen = append(seen, e.EmpNo)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, seen)
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestEmployeeRepository_LikeFragmentsAreLiteral(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEmployeeRepository(dbtest.NewTestDB(t))
	for _, e := range []*domain.Employee{
		{EmpNo: "EX1", Name: "Alice"},
		{EmpNo: "E_1", Name: "Bob"},
		{EmpNo: "E3", Name: "100% Carol", BatchNo: strPtr(`B\7`)},
	} {
		require.NoError(t, repo.Create(ctx, e))
	}

	testCases := map[string]struct {
		filter domain.EmployeeFilter
		want   []string
	}{
		"underscore in emp_no":   {filter: domain.EmployeeFilter{EmpNoLike: "E_1"}, want: []string{"E_1"}},
		"underscore in name":     {filter: domain.EmployeeFilter{NameLike: "_"}, want: nil},
		"percent in name":        {filter: domain.EmployeeFilter{NameLike: "%"}, want: []string{"E3"}},
		"percent and text":       {filter: domain.EmployeeFilter{NameLike: "0% c"}, want: []string{"E3"}},
		"search with percent":    {filter: domain.EmployeeFilter{Search: "%"}, want: []string{"E3"}},
		"search with backslash":  {filter: domain.EmployeeFilter{Search: `b\7`}, want: []string{"E3"}},
		"search with underscore": {filter: domain.EmployeeFilter{Search: "_"}, want: []string{"E_1"}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := repo.List(ctx, tc.filter)
			require.NoError(t, err)
			var empNos []string
			for _, e := range got {
				empNos = append(empNos, e.EmpNo)
			}
			assert.Equal(t, tc.want, empNos)

			n, err := repo.Count(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, len(tc.want), n)
		})
	}
}
