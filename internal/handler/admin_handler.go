package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/catalog"
	"github.com/locvowork/skilltrack/internal/service"
	"github.com/locvowork/skilltrack/internal/service/serviceutils"
	"github.com/locvowork/skilltrack/pkg/simpleexcel"
)

// AdminHandler serves the spreadsheet import endpoints and the choice catalog.
type AdminHandler struct {
	imports *service.ImportService
	catalog *catalog.Catalog
}

func NewAdminHandler(imports *service.ImportService, cat *catalog.Catalog) *AdminHandler {
	return &AdminHandler{imports: imports, catalog: cat}
}

// ImportHandler takes a multipart "file" field holding an .xlsx or .csv sheet.
func (h *AdminHandler) ImportHandler(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to import employees",
			apperrors.NewImportFileError("no file was uploaded in the \"file\" field"))
	}
	f, err := fh.Open()
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to import employees",
			apperrors.NewImportFileError("cannot open %s: %v", fh.Filename, err))
	}
	defer f.Close()

	report, err := h.imports.Import(c.Request().Context(), f, fh.Filename)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to import employees", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees imported", report)
}

func (h *AdminHandler) ImportTemplateHandler(c echo.Context) error {
	var buf bytes.Buffer
	if err := service.WriteImportTemplate(&buf); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to build import template", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employee_import_template.xlsx"`)
	return c.Blob(http.StatusOK, simpleexcel.ContentTypeXLSX, buf.Bytes())
}

func (h *AdminHandler) ImportHistoryHandler(c echo.Context) error {
	limit := defaultPageSize
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, maxPageSize)
		}
	}

	reports, err := h.imports.History(c.Request().Context(), limit)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Import history is unavailable", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Import history retrieved successfully", reports)
}

// CatalogHandler returns every static choice list.
func (h *AdminHandler) CatalogHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Catalog retrieved successfully", h.catalog.Choices)
}
