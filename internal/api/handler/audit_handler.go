package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rushhour/scheduling/internal/core/ports"
)

type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List handles GET /api/audit.
//
// @Summary      List audit events, newest first
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber  query     int  false  "Page number (1-based)"
// @Param        pageSize    query     int  false  "Page size (1..100)"
// @Success      200         {object}  domain.Page[domain.AuditEvent]
// @Failure      403         {object}  errorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	result, err := h.service.List(c.Request().Context(), caller, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
