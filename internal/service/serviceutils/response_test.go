package serviceutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/skilltrack/internal/apperrors"
)

func TestStatusFromError(t *testing.T) {
	testCases := map[string]struct {
		err  error
		want int
	}{
		"validation":     {err: apperrors.NewValidationError("emp_no", "required"), want: http.StatusBadRequest},
		"bad request":    {err: apperrors.NewBadRequestError("emp_no is required"), want: http.StatusBadRequest},
		"import file":    {err: apperrors.NewImportFileError("no header"), want: http.StatusBadRequest},
		"wrapped absent": {err: fmt.Errorf("load: %w", apperrors.NewNotFoundError("employee 3 not found")), want: http.StatusNotFound},
		"not configured": {err: apperrors.ErrNotConfigured, want: http.StatusServiceUnavailable},
		"unknown":        {err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFromError(tc.err))
		})
	}
}

func TestResponseFromError_ValidationFields(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	verr := apperrors.NewValidationError("emp_no", "employee with this emp no already exists.")
	require.NoError(t, ResponseFromError(c, "Failed to create employee", verr))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "employee with this emp no already exists.", body.Errors["emp_no"])
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, 41, 3, 20)

	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, []int{}, p.Results)
}
