package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type pageParams struct {
	Page     int
	PageSize int
}

func (p pageParams) Limit() int  { return p.PageSize }
func (p pageParams) Offset() int { return (p.Page - 1) * p.PageSize }

// checkTotal rejects a page past the last one. An empty result set still has page 1.
func (p pageParams) checkTotal(total int) error {
	if total > 0 && p.Offset() >= total {
		return apperrors.NewNotFoundError("Invalid page.")
	}
	return nil
}

// parsePage reads page and page_size. page_size is capped at maxPageSize.
func parsePage(c echo.Context) (pageParams, error) {
	p := pageParams{Page: 1, PageSize: defaultPageSize}
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, apperrors.NewNotFoundError("Invalid page.")
		}
		p.Page = n
	}
	if v := c.QueryParam("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n > 0 {
			p.PageSize = min(n, maxPageSize)
		}
	}
	return p, nil
}

func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.NewNotFoundError("invalid %s %q", name, c.Param(name))
	}
	return id, nil
}

func queryInt64(c echo.Context, name string) (int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(name, "Select a valid choice. That choice is not one of the available choices.")
	}
	return n, nil
}

// recordFilter reads the owner filters shared by the record endpoints.
func recordFilter(c echo.Context, p pageParams) (domain.RecordFilter, error) {
	f := domain.RecordFilter{Status: c.QueryParam("status"), Limit: p.Limit(), Offset: p.Offset()}
	var err error
	if f.EmployeeID, err = queryInt64(c, "employee"); err != nil {
		return f, err
	}
	if f.ModuleID, err = queryInt64(c, "module"); err != nil {
		return f, err
	}
	return f, nil
}

// employeeFilter reads the list endpoint filters, searching criteria included.
func employeeFilter(c echo.Context, p pageParams) domain.EmployeeFilter {
	return domain.EmployeeFilter{
		EmpNo:      c.QueryParam("emp_no"),
		AreaOfWork: c.QueryParam("area_of_work"),
		Plant:      c.QueryParam("plant"),
		Category:   c.QueryParam("category"),
		SkillLevel: c.QueryParam("skill_level"),
		Gender:     c.QueryParam("gender"),
		Search:     c.QueryParam("search"),
		Ordering:   c.QueryParam("ordering"),
		Limit:      p.Limit(),
		Offset:     p.Offset(),
	}
}
