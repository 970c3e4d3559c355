package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rushhour/scheduling/internal/core/ports"
)

// ActivityHandler handles HTTP requests for activities.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Create handles POST /api/activities.
//
// @Summary      Create an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      activityRequest  true  "Activity details"
// @Success      201   {object}  domain.Activity
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/activities [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req activityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := h.service.Create(c.Request().Context(), caller, toActivityInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// Update handles PUT /api/activities/:id.
//
// @Summary      Update an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Activity id"
// @Param        body  body      activityRequest  true  "Activity details"
// @Success      200   {object}  domain.Activity
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/activities/{id} [put]
func (h *ActivityHandler) Update(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req activityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := h.service.Update(c.Request().Context(), caller, id, toActivityInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /api/activities/:id.
//
// @Summary      Delete an activity and its appointments
// @Tags         activities
// @Security     BearerAuth
// @Param        id  path  int  true  "Activity id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/activities/{id} [delete]
func (h *ActivityHandler) Delete(c echo.Context) error {
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

// Get handles GET /api/activities/:id.
//
// @Summary      Get an activity
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Activity id"
// @Success      200  {object}  domain.Activity
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/activities/{id} [get]
func (h *ActivityHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	a, err := h.service.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// List handles GET /api/activities.
//
// @Summary      List activities
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber  query     int  false  "Page number (1-based)"
// @Param        pageSize    query     int  false  "Page size (1..100)"
// @Success      200         {object}  domain.Page[domain.Activity]
// @Failure      403         {object}  errorResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
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
