package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rushhour/scheduling/internal/api/metrics"
	"github.com/rushhour/scheduling/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointments.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Create handles POST /api/appointments. The activities are booked back to
// back from startDate, in the order given.
//
// @Summary      Book one or more activities
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAppointmentRequest  true  "Booking request"
// @Success      201   {object}  ports.ChainResult
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createAppointmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := toNewAppointmentInput(req)
	if err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), caller, in)
	if err != nil {
		return err
	}

	metrics.AppointmentsBookedTotal.Add(float64(len(result.Appointments)))
	metrics.BookingRequestsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, result)
}

// Update handles PUT /api/appointments/:id.
//
// @Summary      Move or change an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Appointment id"
// @Param        body  body      updateAppointmentRequest  true  "New booking"
// @Success      200   {object}  domain.Appointment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/appointments/{id} [put]
func (h *AppointmentHandler) Update(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateAppointmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := toAppointmentInput(req)
	if err != nil {
		return err
	}

	appt, err := h.service.Update(c.Request().Context(), caller, id, in)
	if err != nil {
		return err
	}

	metrics.BookingRequestsTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, appt)
}

// Delete handles DELETE /api/appointments/:id.
//
// @Summary      Cancel an appointment
// @Tags         appointments
// @Security     BearerAuth
// @Param        id  path  int  true  "Appointment id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
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

// Get handles GET /api/appointments/:id.
//
// @Summary      Get an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Appointment id"
// @Success      200  {object}  domain.Appointment
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	appt, err := h.service.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appt)
}

// List handles GET /api/appointments.
//
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber  query     int  false  "Page number (1-based)"
// @Param        pageSize    query     int  false  "Page size (1..100)"
// @Success      200         {object}  domain.Page[domain.Appointment]
// @Failure      403         {object}  errorResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
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
