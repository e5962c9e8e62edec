package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mediassist/internal/model"
	"mediassist/internal/repository"
	"mediassist/internal/service"
)

// AppointmentHandler appointment scheduling endpoints
type AppointmentHandler struct {
	svc *service.AppointmentService
}

// NewAppointmentHandler creates the appointment handler
func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

// CreateAppointmentRequest new appointment
type CreateAppointmentRequest struct {
	PatientID  string                    `json:"patient_id" binding:"required"`
	ProviderID string                    `json:"provider_id" binding:"required"`
	Type       string                    `json:"type,omitempty"`
	StartTime  time.Time                 `json:"start_time" binding:"required"`
	EndTime    time.Time                 `json:"end_time" binding:"required"`
	Reason     string                    `json:"reason,omitempty"`
	Priority   model.AppointmentPriority `json:"priority,omitempty"`
	Notes      string                    `json:"notes,omitempty"`
}

// UpdateAppointmentStatusRequest status transition
type UpdateAppointmentStatusRequest struct {
	Status             model.AppointmentStatus `json:"status" binding:"required"`
	CancellationReason string                  `json:"cancellation_reason,omitempty"`
}

// Create books an appointment
// @Summary      Create appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateAppointmentRequest  true  "appointment"
// @Success      201      {object}  model.Appointment
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/v1/appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	appt := &model.Appointment{
		PatientID:  req.PatientID,
		ProviderID: req.ProviderID,
		Type:       req.Type,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
		Priority:   req.Priority,
		Notes:      req.Notes,
	}

	if err := h.svc.Create(c.Request.Context(), appt); err != nil {
		if errors.Is(err, service.ErrAppointmentWindow) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
			return
		}
		internalError(c, "Failed to create appointment", err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// Get returns an appointment
// @Summary      Get appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "appointment id"
// @Success      200  {object}  model.Appointment
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	appt, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Appointment not found")
			return
		}
		internalError(c, "Failed to get appointment", err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

// List lists appointments for a patient or a provider
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id   query     string  false  "filter by patient"
// @Param        provider_id  query     string  false  "filter by provider"
// @Param        limit        query     int     false  "page size"
// @Param        offset       query     int     false  "page offset"
// @Success      200          {object}  map[string]interface{}
// @Failure      400          {object}  model.ErrorResponse
// @Router       /api/v1/appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	ctx := c.Request.Context()

	var (
		appts []*model.Appointment
		err   error
	)

	switch {
	case c.Query("patient_id") != "":
		appts, err = h.svc.ListByPatient(ctx, c.Query("patient_id"), limit, offset)
	case c.Query("provider_id") != "":
		appts, err = h.svc.ListByProvider(ctx, c.Query("provider_id"), limit, offset)
	default:
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40002,
			Message: "patient_id or provider_id is required",
		})
		return
	}

	if err != nil {
		internalError(c, "Failed to list appointments", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": appts,
		"total":        len(appts),
	})
}

// UpdateStatus transitions an appointment's status
// @Summary      Update appointment status
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "appointment id"
// @Param        request  body      UpdateAppointmentStatusRequest  true  "status change"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.CancellationReason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAppointmentStatus):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
		case errors.Is(err, repository.ErrRecordNotFound):
			notFound(c, "Appointment not found")
		default:
			internalError(c, "Failed to update appointment status", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
	})
}

// Delete removes an appointment
// @Summary      Delete appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "appointment id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Appointment not found")
			return
		}
		internalError(c, "Failed to delete appointment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Appointment deleted",
	})
}
