package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"appointly/services/calendar"
	"appointly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentsHandler serves the committed-appointment endpoints.
type AppointmentsHandler struct {
	Calendar calendar.Service
	Logger   *zap.Logger
}

func NewAppointmentsHandler(cal calendar.Service, logger *zap.Logger) *AppointmentsHandler {
	return &AppointmentsHandler{Calendar: cal, Logger: logger}
}

// ListAppointments returns all committed appointments.
func (h *AppointmentsHandler) ListAppointments(c *gin.Context) {
	appointments, err := h.Calendar.ListAppointments(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// CancelAppointment removes an appointment by id.
func (h *AppointmentsHandler) CancelAppointment(c *gin.Context) {
	id := c.Param("id")

	removed, err := h.Calendar.CancelAppointment(c.Request.Context(), id)
	if err != nil {
		var notFound *calendar.NotFoundError
		if errors.As(err, &notFound) {
			utils.JSONError(c, http.StatusNotFound, "appointment not found", err.Error())
			return
		}
		h.Logger.Error("cancel appointment failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel appointment", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Appointment %s cancelled", id),
		"appointment": removed,
	})
}
