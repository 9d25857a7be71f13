package serviceutils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/logger"
)

// Response is the envelope of every JSON response.
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Page is the body of paginated list responses.
type Page struct {
	Count      int         `json:"count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	Results    interface{} `json:"results"`
}

// NewPage builds a Page; results is never encoded as null.
func NewPage[T any](results []T, count, page, pageSize int) Page {
	if results == nil {
		results = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (count + pageSize - 1) / pageSize
	}
	return Page{Count: count, Page: page, PageSize: pageSize, TotalPages: totalPages, Results: results}
}

func ResponseSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func ResponseError(c echo.Context, status int, message string, err error) error {
	resp := Response{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = verr.Fields
	}
	if status >= http.StatusInternalServerError {
		logger.ErrorLog(c.Request().Context(), "%s: %v", message, err)
	}
	return c.JSON(status, resp)
}

// ResponseFromError picks the status from the error kind.
func ResponseFromError(c echo.Context, message string, err error) error {
	return ResponseError(c, StatusFromError(err), message, err)
}

// StatusFromError maps application errors to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrValidation, apperrors.ErrBadRequest, apperrors.ErrImportFile):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNotConfigured):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
