package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"mediassist/internal/model"
	"mediassist/internal/repository"
	"mediassist/internal/service"
)

// MedicalRecordHandler clinical chart endpoints
type MedicalRecordHandler struct {
	svc *service.MedicalRecordService
}

// NewMedicalRecordHandler creates the medical record handler
func NewMedicalRecordHandler(svc *service.MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{svc: svc}
}

// CreateMedicalRecordRequest new chart entry
type CreateMedicalRecordRequest struct {
	PatientID      string                  `json:"patient_id" binding:"required"`
	EncounterID    string                  `json:"encounter_id,omitempty"`
	Type           model.RecordType        `json:"type" binding:"required"`
	Status         model.RecordStatus      `json:"status,omitempty"`
	Category       []model.CodeableConcept `json:"category,omitempty"`
	Code           model.CodeableConcept   `json:"code" binding:"required"`
	PerformerIDs   []string                `json:"performer_ids,omitempty"`
	EffectiveAt    *time.Time              `json:"effective_at,omitempty"`
	ValueQuantity  *model.Quantity         `json:"value_quantity,omitempty"`
	ValueString    string                  `json:"value_string,omitempty"`
	Interpretation []model.CodeableConcept `json:"interpretation,omitempty"`
	Notes          []model.Annotation      `json:"notes,omitempty"`
	RelatedIDs     []string                `json:"related_ids,omitempty"`
}

// UpdateMedicalRecordRequest partial chart entry update; nil fields are untouched
type UpdateMedicalRecordRequest struct {
	Status         *model.RecordStatus     `json:"status,omitempty"`
	ValueQuantity  *model.Quantity         `json:"value_quantity,omitempty"`
	ValueString    *string                 `json:"value_string,omitempty"`
	Interpretation []model.CodeableConcept `json:"interpretation,omitempty"`
	Notes          []model.Annotation      `json:"notes,omitempty"`
}

// Create files a chart entry
// @Summary      Create medical record
// @Tags         medical-records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateMedicalRecordRequest  true  "medical record"
// @Success      201      {object}  model.MedicalRecord
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/v1/medical-records [post]
func (h *MedicalRecordHandler) Create(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	effectiveAt := time.Now()
	if req.EffectiveAt != nil {
		effectiveAt = *req.EffectiveAt
	}

	record := &model.MedicalRecord{
		PatientID:      req.PatientID,
		EncounterID:    req.EncounterID,
		Type:           req.Type,
		Status:         req.Status,
		Category:       req.Category,
		Code:           req.Code,
		PerformerIDs:   req.PerformerIDs,
		EffectiveAt:    effectiveAt,
		ValueQuantity:  req.ValueQuantity,
		ValueString:    req.ValueString,
		Interpretation: req.Interpretation,
		Notes:          req.Notes,
		RelatedIDs:     req.RelatedIDs,
	}

	if err := h.svc.Create(c.Request.Context(), record); err != nil {
		if errors.Is(err, service.ErrInvalidRecordType) || errors.Is(err, service.ErrInvalidRecordStatus) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
			return
		}
		internalError(c, "Failed to create medical record", err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// Get returns a chart entry
// @Summary      Get medical record
// @Tags         medical-records
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "record id"
// @Success      200  {object}  model.MedicalRecord
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/medical-records/{id} [get]
func (h *MedicalRecordHandler) Get(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Medical record not found")
			return
		}
		internalError(c, "Failed to get medical record", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// List lists chart entries for a patient or an encounter
// @Summary      List medical records
// @Tags         medical-records
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id    query     string  false  "patient id"
// @Param        encounter_id  query     string  false  "encounter id"
// @Param        type          query     string  false  "filter by record type"
// @Param        status        query     string  false  "filter by status"
// @Param        start_date    query     string  false  "effective-time window start (RFC 3339)"
// @Param        end_date      query     string  false  "effective-time window end (RFC 3339)"
// @Param        limit         query     int     false  "page size"
// @Param        offset        query     int     false  "page offset"
// @Success      200           {object}  map[string]interface{}
// @Failure      400           {object}  model.ErrorResponse
// @Router       /api/v1/medical-records [get]
func (h *MedicalRecordHandler) List(c *gin.Context) {
	patientID := c.Query("patient_id")
	encounterID := c.Query("encounter_id")
	if patientID == "" && encounterID == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40002,
			Message: "patient_id or encounter_id is required",
		})
		return
	}

	limit, offset := pagination(c)

	var (
		records []*model.MedicalRecord
		total   int64
		err     error
	)
	if patientID != "" {
		filter := repository.MedicalRecordFilter{
			Type:   model.RecordType(c.Query("type")),
			Status: model.RecordStatus(c.Query("status")),
		}
		filter.Start, err = parseTimeQuery(c, "start_date")
		if err != nil {
			return
		}
		filter.End, err = parseTimeQuery(c, "end_date")
		if err != nil {
			return
		}

		records, total, err = h.svc.ListByPatient(c.Request.Context(), patientID, filter, limit, offset)
	} else {
		records, total, err = h.svc.ListByEncounter(c.Request.Context(), encounterID, limit, offset)
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidRecordType) || errors.Is(err, service.ErrInvalidRecordStatus) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
			return
		}
		internalError(c, "Failed to list medical records", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   total,
	})
}

// ListRelated lists the chart entries that reference a record
// @Summary      List related medical records
// @Tags         medical-records
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "record id"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/medical-records/{id}/related [get]
func (h *MedicalRecordHandler) ListRelated(c *gin.Context) {
	records, err := h.svc.ListRelated(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, "Failed to list related medical records", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   len(records),
	})
}

// Update applies a partial update to a chart entry
// @Summary      Update medical record
// @Tags         medical-records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "record id"
// @Param        request  body      UpdateMedicalRecordRequest  true  "fields to update"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/medical-records/{id} [put]
func (h *MedicalRecordHandler) Update(c *gin.Context) {
	var req UpdateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	fields := bson.M{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.ValueQuantity != nil {
		fields["value_quantity"] = req.ValueQuantity
	}
	if req.ValueString != nil {
		fields["value_string"] = *req.ValueString
	}
	if req.Interpretation != nil {
		fields["interpretation"] = req.Interpretation
	}
	if req.Notes != nil {
		fields["notes"] = req.Notes
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "No fields to update",
		})
		return
	}

	err := h.svc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRecordStatus):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
		case errors.Is(err, repository.ErrRecordNotFound):
			notFound(c, "Medical record not found")
		default:
			internalError(c, "Failed to update medical record", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Medical record updated",
	})
}

// Delete removes a chart entry
// @Summary      Delete medical record
// @Tags         medical-records
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "record id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/medical-records/{id} [delete]
func (h *MedicalRecordHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Medical record not found")
			return
		}
		internalError(c, "Failed to delete medical record", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Medical record deleted",
	})
}
