package api

import (
	"errors"
	"net/http"

	"petcare-hub/internal/domain/appointment"
	reqdto "petcare-hub/internal/handler/dto/request"
	resdto "petcare-hub/internal/handler/dto/response"
	"petcare-hub/internal/handler/httperr"
	"petcare-hub/internal/usecase/commands"
	"petcare-hub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AppointmentHandler serves one service's booking endpoints. The router
// instantiates the same handler for vet, grooming and daycare; only the
// bound service differs.
type AppointmentHandler struct {
	service      appointment.ServiceType
	appointments commands.AppointmentCommands
	queries      queries.AppointmentQueries
}

func NewAppointmentHandler(service appointment.ServiceType, cmds commands.AppointmentCommands, qs queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{
		service:      service,
		appointments: cmds,
		queries:      qs,
	}
}

// @Summary Day events
// @Description List a day's appointments as display events
// @Tags appointments
// @Produce json
// @Param date query string false "Day as YYYY-MM-DD"
// @Success 200 {array} queries.EventView
// @Failure 400 {object} httperr.Response
// @Router /{service}/appointments [get]
func (h *AppointmentHandler) DayEvents(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		// The booking form polls before a day is picked.
		c.JSON(http.StatusOK, []*queries.EventView{})
		return
	}

	events, err := h.queries.DayEvents(c.Request.Context(), h.service, date)
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []*queries.EventView{}
	}
	c.JSON(http.StatusOK, events)
}

// @Summary Create appointment
// @Description Book a time slot for this service
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body reqdto.CreateAppointmentRequest true "Booking request"
// @Success 201 {object} map[string]any
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /{service}/appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req reqdto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.appointments.Create(c.Request.Context(), req.ToParams(h.service))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"id":      view.ID,
		"message": "Appointment requested",
	})
}

// @Summary List appointments
// @Description All records for this service in dashboard order
// @Tags appointments
// @Produce json
// @Success 200 {array} resdto.AppointmentResponse
// @Router /{service} [get]
func (h *AppointmentHandler) ListAll(c *gin.Context) {
	views, err := h.queries.ListAll(c.Request.Context(), h.service)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointmentViews(views))
}

// @Summary Get appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 404 {object} httperr.Response
// @Router /{service}/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), h.service, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Update appointment
// @Description Partial update; any date/time change re-checks conflicts
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateAppointmentRequest true "Fields to change"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /{service}/{id} [put]
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.appointments.Update(c.Request.Context(), h.service, id, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Reschedule appointment
// @Description Move only the date/window; other fields are untouched
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body reqdto.RescheduleRequest true "New date and window"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /{service}/{id}/schedule [put]
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req reqdto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.appointments.Reschedule(c.Request.Context(), h.service, id, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Update appointment status
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateStatusRequest true "New status"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /{service}/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.appointments.UpdateStatus(c.Request.Context(), h.service, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Delete appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} httperr.Response
// @Router /{service}/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.appointments.Delete(c.Request.Context(), h.service, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Appointment deleted",
	})
}

func (h *AppointmentHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid appointment ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps usecase errors to HTTP statuses. Conflict bodies carry
// the colliding appointment id when the pre-check identified it.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSlotConflict):
		var conflict *commands.ConflictError
		var detail any
		if errors.As(err, &conflict) && conflict.CollidingID != uuid.Nil {
			detail = gin.H{"collidingId": conflict.CollidingID}
		}
		httperr.AbortWithError(c, http.StatusConflict, err, "Time slot is already booked", detail)
	case errors.Is(err, commands.ErrValidation):
		var validation *commands.ValidationError
		var detail any
		if errors.As(err, &validation) {
			detail = gin.H{"fields": validation.Fields}
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", detail)
	case errors.Is(err, queries.ErrInvalidDate):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
	case errors.Is(err, commands.ErrAppointmentNotFound),
		errors.Is(err, queries.ErrAppointmentNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Appointment not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
