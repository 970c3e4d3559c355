package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rushhour/scheduling/internal/core/ports"
)

// ProviderHandler handles HTTP requests for providers.
type ProviderHandler struct {
	service ports.ProviderService
}

func NewProviderHandler(service ports.ProviderService) *ProviderHandler {
	return &ProviderHandler{service: service}
}

// Create handles POST /api/providers.
//
// @Summary      Create a provider
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      providerRequest  true  "Provider details"
// @Success      201   {object}  providerResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/providers [post]
func (h *ProviderHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req providerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := toProviderInput(req)
	if err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), caller, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProviderResponse(p))
}

// Update handles PUT /api/providers/:id.
//
// @Summary      Update a provider
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Provider id"
// @Param        body  body      providerRequest  true  "Provider details"
// @Success      200   {object}  providerResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/providers/{id} [put]
func (h *ProviderHandler) Update(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req providerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := toProviderInput(req)
	if err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), caller, id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProviderResponse(p))
}

// Delete handles DELETE /api/providers/:id.
//
// @Summary      Delete a provider and everything it owns
// @Tags         providers
// @Security     BearerAuth
// @Param        id  path  int  true  "Provider id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/providers/{id} [delete]
func (h *ProviderHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /api/providers/:id.
//
// @Summary      Get a provider
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Provider id"
// @Success      200  {object}  providerResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/providers/{id} [get]
func (h *ProviderHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.service.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProviderResponse(p))
}

// List handles GET /api/providers.
//
// @Summary      List providers
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber  query     int  false  "Page number (1-based)"
// @Param        pageSize    query     int  false  "Page size (1..100)"
// @Success      200         {object}  pageResponse[providerResponse]
// @Failure      403         {object}  errorResponse
// @Router       /api/providers [get]
func (h *ProviderHandler) List(c echo.Context) error {
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
	return c.JSON(http.StatusOK, toPageResponse(result, toProviderResponse))
}
