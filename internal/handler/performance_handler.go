package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/service"
	"github.com/locvowork/skilltrack/internal/service/serviceutils"
)

// PerformanceHandler adds the approval actions to the performance record CRUD.
type PerformanceHandler struct {
	*RecordHandler[domain.PerformanceRecord]
	svc *service.PerformanceService
}

func NewPerformanceHandler(svc *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{
		RecordHandler: NewRecordHandler(svc.RecordService, "Performance record",
			func(r *domain.PerformanceRecord) *int64 { return &r.ID }),
		svc: svc,
	}
}

func (h *PerformanceHandler) Register(g *echo.Group) {
	h.RecordHandler.Register(g)
	g.POST("/:id/approve_supervisor/", h.ApproveSupervisorHandler)
	g.POST("/:id/certify_personnel/", h.CertifyPersonnelHandler)
}

func (h *PerformanceHandler) ApproveSupervisorHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid ID", err)
	}

	rec, err := h.svc.ApproveSupervisor(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to approve performance record", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "approved", rec)
}

func (h *PerformanceHandler) CertifyPersonnelHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid ID", err)
	}

	rec, err := h.svc.CertifyPersonnel(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to certify performance record", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "certified", rec)
}
