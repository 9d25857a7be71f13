package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/logger"
	"github.com/locvowork/skilltrack/internal/service"
	"github.com/locvowork/skilltrack/internal/service/serviceutils"
	"github.com/locvowork/skilltrack/pkg/simpleexcel"
)

type EmployeeHandler struct {
	svc           *service.EmployeeService
	photoMaxBytes int64
}

func NewEmployeeHandler(svc *service.EmployeeService, photoMaxBytes int64) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, photoMaxBytes: photoMaxBytes}
}

// CreateHandler accepts a single employee object or an array created atomically.
func (h *EmployeeHandler) CreateHandler(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		var batch []*domain.Employee
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
		}
		verr := &apperrors.ValidationError{}
		for i, e := range batch {
			resetReadOnly(e)
			if err := c.Validate(e); err != nil {
				mergeValidation(verr, fmt.Sprintf("[%d]", i), err)
			}
		}
		if err := verr.OrNil(); err != nil {
			return serviceutils.ResponseFromError(c, "Failed to create employees", err)
		}
		if err := h.svc.CreateBatch(c.Request().Context(), batch); err != nil {
			return serviceutils.ResponseFromError(c, "Failed to create employees", err)
		}
		return serviceutils.ResponseSuccess(c, http.StatusCreated, "Employees created successfully", batch)
	}

	var req domain.Employee
	if err := json.Unmarshal(body, &req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	resetReadOnly(&req)
	if err := c.Validate(&req); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to create employee", err)
	}
	if err := h.svc.Create(c.Request().Context(), &req); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to create employee", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Employee created successfully", req)
}

func (h *EmployeeHandler) GetHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid employee ID", err)
	}

	emp, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to get employee", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee retrieved successfully", emp)
}

func (h *EmployeeHandler) DetailHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid employee ID", err)
	}

	detail, err := h.svc.Detail(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to get employee detail", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee detail retrieved successfully", detail)
}

// UpdateHandler replaces every writable field (PUT).
func (h *EmployeeHandler) UpdateHandler(c echo.Context) error {
	return h.update(c, false)
}

// PatchHandler changes only the fields present in the body (PATCH).
func (h *EmployeeHandler) PatchHandler(c echo.Context) error {
	return h.update(c, true)
}

func (h *EmployeeHandler) update(c echo.Context, partial bool) error {
	ctx := c.Request().Context()
	id, err := parseID(c, "id")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid employee ID", err)
	}

	existing, err := h.svc.Get(ctx, id)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to update employee", err)
	}

	req := &domain.Employee{}
	if partial {
		req = existing
	}
	if err := c.Bind(req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	req.ID = existing.ID
	req.Photo = existing.Photo
	req.CreatedAt = existing.CreatedAt

	if err := c.Validate(req); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to update employee", err)
	}
	if err := h.svc.Update(ctx, req); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to update employee", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee updated successfully", req)
}

func (h *EmployeeHandler) ListHandler(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid page", err)
	}
	return h.respondPage(c, employeeFilter(c, page), page)
}

// SearchRequest holds the search criteria. Dept is accepted as an alias of AreaOfWork.
type SearchRequest struct {
	EmpNo      string `json:"emp_no"`
	Name       string `json:"name"`
	AreaOfWork string `json:"area_of_work"`
	Dept       string `json:"dept"`
	Plant      string `json:"plant"`
	SkillLevel string `json:"skill_level"`
}

// SearchHandler combines every supplied criterion with AND.
func (h *EmployeeHandler) SearchHandler(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	page, err := parsePage(c)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid page", err)
	}

	area := req.AreaOfWork
	if area == "" {
		area = req.Dept
	}
	filter := domain.EmployeeFilter{
		EmpNoLike:      strings.TrimSpace(req.EmpNo),
		NameLike:       strings.TrimSpace(req.Name),
		AreaOfWorkLike: strings.TrimSpace(area),
		PlantLike:      strings.TrimSpace(req.Plant),
		SkillLevel:     strings.TrimSpace(req.SkillLevel),
		Ordering:       c.QueryParam("ordering"),
		Limit:          page.Limit(),
		Offset:         page.Offset(),
	}
	return h.respondPage(c, filter, page)
}

func (h *EmployeeHandler) respondPage(c echo.Context, filter domain.EmployeeFilter, page pageParams) error {
	employees, total, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to list employees", err)
	}
	if err := page.checkTotal(total); err != nil {
		return serviceutils.ResponseFromError(c, "Invalid page", err)
	}
	summaries := make([]domain.EmployeeSummary, len(employees))
	for i := range employees {
		summaries[i] = employees[i].Summary()
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees listed successfully",
		serviceutils.NewPage(summaries, total, page.Page, page.PageSize))
}

func (h *EmployeeHandler) StatsHandler(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("recent_limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return serviceutils.ResponseFromError(c, "Invalid recent_limit",
				apperrors.NewValidationError("recent_limit", "A valid positive integer is required."))
		}
		limit = min(n, maxPageSize)
	}

	stats, err := h.svc.Stats(c.Request().Context(), limit)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to compute statistics", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Statistics computed successfully", stats)
}

func (h *EmployeeHandler) ExportHandler(c echo.Context) error {
	format, err := service.ParseExportFormat(c.QueryParam("format"))
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid export format", err)
	}

	var buf bytes.Buffer
	n, err := h.svc.Export(c.Request().Context(), &buf, format)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to export employees", err)
	}
	logger.InfoLog(c.Request().Context(), "exported %d employees as %s", n, format)

	contentType := simpleexcel.ContentTypeXLSX
	if format == service.ExportCSV {
		contentType = simpleexcel.ContentTypeCSV
	}
	filename := fmt.Sprintf("employees_%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

// UpdateTrainingModulesRequest is the body of the bulk module status update.
type UpdateTrainingModulesRequest struct {
	Updates []service.ModuleStatusInput `json:"updates"`
}

func (h *EmployeeHandler) UpdateTrainingModulesHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid employee ID", err)
	}
	var req UpdateTrainingModulesRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	views, err := h.svc.UpdateTrainingModules(c.Request().Context(), id, req.Updates)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to update training modules", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Training modules updated successfully", views)
}

func (h *EmployeeHandler) UploadPhotoHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid employee ID", err)
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to upload photo",
			apperrors.NewValidationError("photo", "No file was submitted."))
	}
	if h.photoMaxBytes > 0 && fh.Size > h.photoMaxBytes {
		return serviceutils.ResponseFromError(c, "Failed to upload photo",
			apperrors.NewValidationError("photo", fmt.Sprintf("File size must be less than %dMB.", h.photoMaxBytes>>20)))
	}
	f, err := fh.Open()
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Failed to read photo", err)
	}
	defer f.Close()

	emp, err := h.svc.UploadPhoto(c.Request().Context(), id, f, fh.Header.Get(echo.HeaderContentType))
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to upload photo", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Photo uploaded successfully", emp)
}

// EmployeeSearchHandler is the exact lookup GET /employee_search/?emp_no=.
func (h *EmployeeHandler) EmployeeSearchHandler(c echo.Context) error {
	emp, err := h.svc.GetByEmpNo(c.Request().Context(), strings.TrimSpace(c.QueryParam("emp_no")))
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to find employee", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee found", emp)
}

func resetReadOnly(e *domain.Employee) {
	e.ID = 0
	e.Photo = nil
	e.CreatedAt = time.Time{}
	e.UpdatedAt = time.Time{}
}

func mergeValidation(dst *apperrors.ValidationError, prefix string, err error) {
	if verr, ok := err.(*apperrors.ValidationError); ok {
		for field, msg := range verr.Fields {
			dst.Add(prefix+"."+field, msg)
		}
		return
	}
	dst.Add(prefix, err.Error())
}
