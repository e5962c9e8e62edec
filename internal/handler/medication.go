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

// MedicationHandler medication record endpoints
type MedicationHandler struct {
	svc *service.MedicationService
}

// NewMedicationHandler creates the medication handler
func NewMedicationHandler(svc *service.MedicationService) *MedicationHandler {
	return &MedicationHandler{svc: svc}
}

// CreateMedicationRequest new prescription
type CreateMedicationRequest struct {
	PatientID    string       `json:"patient_id" binding:"required"`
	PrescriberID string       `json:"prescriber_id,omitempty"`
	Code         string       `json:"code,omitempty"`
	Display      string       `json:"display" binding:"required"`
	Form         string       `json:"form,omitempty"`
	Strength     string       `json:"strength,omitempty"`
	Dosage       model.Dosage `json:"dosage" binding:"required"`
	DateWritten  *time.Time   `json:"date_written,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// UpdateMedicationStatusRequest status transition
type UpdateMedicationStatusRequest struct {
	Status model.MedicationStatus `json:"status" binding:"required"`
}

// Create records a prescription
// @Summary      Create medication
// @Tags         medications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateMedicationRequest  true  "medication"
// @Success      201      {object}  model.Medication
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/v1/medications [post]
func (h *MedicationHandler) Create(c *gin.Context) {
	var req CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	dateWritten := time.Now()
	if req.DateWritten != nil {
		dateWritten = *req.DateWritten
	}

	med := &model.Medication{
		PatientID:    req.PatientID,
		PrescriberID: req.PrescriberID,
		Code:         req.Code,
		Display:      req.Display,
		Form:         req.Form,
		Strength:     req.Strength,
		Dosage:       req.Dosage,
		DateWritten:  dateWritten,
		Notes:        req.Notes,
	}

	if err := h.svc.Create(c.Request.Context(), med); err != nil {
		if errors.Is(err, service.ErrInvalidMedicationStatus) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
			return
		}
		internalError(c, "Failed to create medication", err)
		return
	}

	c.JSON(http.StatusCreated, med)
}

// Get returns a medication record
// @Summary      Get medication
// @Tags         medications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "medication id"
// @Success      200  {object}  model.Medication
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/medications/{id} [get]
func (h *MedicationHandler) Get(c *gin.Context) {
	med, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Medication not found")
			return
		}
		internalError(c, "Failed to get medication", err)
		return
	}

	c.JSON(http.StatusOK, med)
}

// List lists a patient's medications
// @Summary      List medications
// @Tags         medications
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id  query     string  true   "patient id"
// @Param        status      query     string  false  "filter by status"
// @Param        limit       query     int     false  "page size"
// @Param        offset      query     int     false  "page offset"
// @Success      200         {object}  map[string]interface{}
// @Failure      400         {object}  model.ErrorResponse
// @Router       /api/v1/medications [get]
func (h *MedicationHandler) List(c *gin.Context) {
	patientID := c.Query("patient_id")
	if patientID == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40002,
			Message: "patient_id is required",
		})
		return
	}

	limit, offset := pagination(c)
	status := model.MedicationStatus(c.Query("status"))

	meds, err := h.svc.ListByPatient(c.Request.Context(), patientID, status, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMedicationStatus) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
			return
		}
		internalError(c, "Failed to list medications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"medications": meds,
		"total":       len(meds),
	})
}

// UpdateStatus transitions a medication's status
// @Summary      Update medication status
// @Tags         medications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "medication id"
// @Param        request  body      UpdateMedicationStatusRequest  true  "status change"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/medications/{id}/status [patch]
func (h *MedicationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateMedicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMedicationStatus):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
		case errors.Is(err, repository.ErrRecordNotFound):
			notFound(c, "Medication not found")
		default:
			internalError(c, "Failed to update medication status", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
	})
}

// Delete removes a medication record
// @Summary      Delete medication
// @Tags         medications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "medication id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/medications/{id} [delete]
func (h *MedicationHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Medication not found")
			return
		}
		internalError(c, "Failed to delete medication", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Medication deleted",
	})
}
