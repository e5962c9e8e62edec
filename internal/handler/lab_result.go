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

// LabResultHandler laboratory result endpoints
type LabResultHandler struct {
	svc *service.LabResultService
}

// NewLabResultHandler creates the lab result handler
func NewLabResultHandler(svc *service.LabResultService) *LabResultHandler {
	return &LabResultHandler{svc: svc}
}

// CreateLabResultRequest new lab result
type CreateLabResultRequest struct {
	PatientID      string                  `json:"patient_id" binding:"required"`
	EncounterID    string                  `json:"encounter_id,omitempty"`
	Identifier     []model.Identifier      `json:"identifier,omitempty"`
	Status         model.LabResultStatus   `json:"status,omitempty"`
	Category       []model.CodeableConcept `json:"category,omitempty"`
	Code           model.CodeableConcept   `json:"code" binding:"required"`
	PerformerIDs   []string                `json:"performer_ids,omitempty"`
	EffectiveAt    *time.Time              `json:"effective_at,omitempty"`
	Issued         *time.Time              `json:"issued,omitempty"`
	ValueQuantity  *model.Quantity         `json:"value_quantity,omitempty"`
	ValueString    string                  `json:"value_string,omitempty"`
	Interpretation []model.CodeableConcept `json:"interpretation,omitempty"`
	ReferenceRange []model.ReferenceRange  `json:"reference_range,omitempty"`
	Notes          []model.Annotation      `json:"notes,omitempty"`
}

// UpdateLabResultStatusRequest status transition
type UpdateLabResultStatusRequest struct {
	Status model.LabResultStatus `json:"status" binding:"required"`
}

// Create files a lab result
// @Summary      Create lab result
// @Tags         lab-results
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateLabResultRequest  true  "lab result"
// @Success      201      {object}  model.LabResult
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/v1/lab-results [post]
func (h *LabResultHandler) Create(c *gin.Context) {
	var req CreateLabResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	effectiveAt := time.Now()
	if req.EffectiveAt != nil {
		effectiveAt = *req.EffectiveAt
	}

	result := &model.LabResult{
		PatientID:      req.PatientID,
		EncounterID:    req.EncounterID,
		Identifier:     req.Identifier,
		Status:         req.Status,
		Category:       req.Category,
		Code:           req.Code,
		PerformerIDs:   req.PerformerIDs,
		EffectiveAt:    effectiveAt,
		Issued:         req.Issued,
		ValueQuantity:  req.ValueQuantity,
		ValueString:    req.ValueString,
		Interpretation: req.Interpretation,
		ReferenceRange: req.ReferenceRange,
		Notes:          req.Notes,
	}

	if err := h.svc.Create(c.Request.Context(), result); err != nil {
		if errors.Is(err, service.ErrInvalidLabResultStatus) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
			return
		}
		internalError(c, "Failed to create lab result", err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Get returns a lab result
// @Summary      Get lab result
// @Tags         lab-results
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "lab result id"
// @Success      200  {object}  model.LabResult
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/lab-results/{id} [get]
func (h *LabResultHandler) Get(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Lab result not found")
			return
		}
		internalError(c, "Failed to get lab result", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// List lists a patient's lab results
// @Summary      List lab results
// @Tags         lab-results
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id  query     string  true   "patient id"
// @Param        status      query     string  false  "filter by status"
// @Param        limit       query     int     false  "page size"
// @Param        offset      query     int     false  "page offset"
// @Success      200         {object}  map[string]interface{}
// @Failure      400         {object}  model.ErrorResponse
// @Router       /api/v1/lab-results [get]
func (h *LabResultHandler) List(c *gin.Context) {
	patientID := c.Query("patient_id")
	if patientID == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40002,
			Message: "patient_id is required",
		})
		return
	}

	limit, offset := pagination(c)
	status := model.LabResultStatus(c.Query("status"))

	results, err := h.svc.ListByPatient(c.Request.Context(), patientID, status, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLabResultStatus) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
			return
		}
		internalError(c, "Failed to list lab results", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   len(results),
	})
}

// UpdateStatus transitions a lab result's status
// @Summary      Update lab result status
// @Tags         lab-results
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "lab result id"
// @Param        request  body      UpdateLabResultStatusRequest  true  "status change"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/lab-results/{id}/status [patch]
func (h *LabResultHandler) UpdateStatus(c *gin.Context) {
	var req UpdateLabResultStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLabResultStatus):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
		case errors.Is(err, repository.ErrRecordNotFound):
			notFound(c, "Lab result not found")
		default:
			internalError(c, "Failed to update lab result status", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
	})
}

// Delete removes a lab result
// @Summary      Delete lab result
// @Tags         lab-results
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "lab result id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/lab-results/{id} [delete]
func (h *LabResultHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Lab result not found")
			return
		}
		internalError(c, "Failed to delete lab result", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lab result deleted",
	})
}
