package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/skilltrack/internal/service"
	"github.com/locvowork/skilltrack/internal/service/serviceutils"
)

// RecordHandler serves list, create, retrieve, update, partial update and
// delete for one record type.
type RecordHandler[T any] struct {
	svc  *service.RecordService[T]
	name string
	// idOf exposes the primary key so path ids win over body ids.
	idOf func(*T) *int64
	// prepare, when set, normalises a record before validation.
	prepare func(*T)
}

func NewRecordHandler[T any](svc *service.RecordService[T], name string, idOf func(*T) *int64) *RecordHandler[T] {
	return &RecordHandler[T]{svc: svc, name: name, idOf: idOf}
}

// WithPrepare sets a hook run on every incoming record before validation.
func (h *RecordHandler[T]) WithPrepare(fn func(*T)) *RecordHandler[T] {
	h.prepare = fn
	return h
}

// Register mounts the handlers on g, which is rooted at the collection path.
func (h *RecordHandler[T]) Register(g *echo.Group) {
	g.GET("/", h.ListHandler)
	g.POST("/", h.CreateHandler)
	g.GET("/:id/", h.GetHandler)
	g.PUT("/:id/", h.UpdateHandler)
	g.PATCH("/:id/", h.PatchHandler)
	g.DELETE("/:id/", h.DeleteHandler)
}

func (h *RecordHandler[T]) ListHandler(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid page", err)
	}
	filter, err := recordFilter(c, page)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid filter", err)
	}

	items, total, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to list "+h.name+"s", err)
	}
	if err := page.checkTotal(total); err != nil {
		return serviceutils.ResponseFromError(c, "Invalid page", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, h.name+"s listed successfully",
		serviceutils.NewPage(items, total, page.Page, page.PageSize))
}

func (h *RecordHandler[T]) CreateHandler(c echo.Context) error {
	rec := new(T)
	if err := c.Bind(rec); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	*h.idOf(rec) = 0
	if err := h.check(c, rec); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to create "+h.name, err)
	}

	if err := h.svc.Create(c.Request().Context(), rec); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to create "+h.name, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, h.name+" created successfully", rec)
}

func (h *RecordHandler[T]) GetHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid ID", err)
	}

	rec, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to get "+h.name, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, h.name+" retrieved successfully", rec)
}

func (h *RecordHandler[T]) UpdateHandler(c echo.Context) error {
	return h.update(c, false)
}

func (h *RecordHandler[T]) PatchHandler(c echo.Context) error {
	return h.update(c, true)
}

// update binds the body over the stored record for PATCH, or over a blank
// one for PUT.
func (h *RecordHandler[T]) update(c echo.Context, partial bool) error {
	ctx := c.Request().Context()
	id, err := parseID(c, "id")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid ID", err)
	}

	rec, err := h.svc.Get(ctx, id)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to update "+h.name, err)
	}
	if !partial {
		rec = new(T)
	}
	if err := c.Bind(rec); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	*h.idOf(rec) = id
	if err := h.check(c, rec); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to update "+h.name, err)
	}

	if err := h.svc.Update(ctx, rec); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to update "+h.name, err)
	}
	if rec, err = h.svc.Get(ctx, id); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to get "+h.name, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, h.name+" updated successfully", rec)
}

func (h *RecordHandler[T]) DeleteHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid ID", err)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to delete "+h.name, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RecordHandler[T]) check(c echo.Context, rec *T) error {
	if h.prepare != nil {
		h.prepare(rec)
	}
	return c.Validate(rec)
}
