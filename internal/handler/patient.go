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

// PatientHandler patient record endpoints
type PatientHandler struct {
	svc *service.PatientService
}

// NewPatientHandler creates the patient handler
func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

// CreatePatientRequest new patient record
type CreatePatientRequest struct {
	Identifier []model.Identifier   `json:"identifier,omitempty"`
	Name       []model.HumanName    `json:"name" binding:"required,min=1"`
	Telecom    []model.ContactPoint `json:"telecom,omitempty"`
	Gender     model.Gender         `json:"gender,omitempty"`
	BirthDate  *time.Time           `json:"birth_date,omitempty"`
	Address    []model.Address      `json:"address,omitempty"`
}

// UpdatePatientRequest partial patient update; nil fields are untouched
type UpdatePatientRequest struct {
	Active    *bool                `json:"active,omitempty"`
	Name      []model.HumanName    `json:"name,omitempty"`
	Telecom   []model.ContactPoint `json:"telecom,omitempty"`
	Gender    model.Gender         `json:"gender,omitempty"`
	BirthDate *time.Time           `json:"birth_date,omitempty"`
	Address   []model.Address      `json:"address,omitempty"`
}

// Create registers a patient record
// @Summary      Create patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreatePatientRequest  true  "patient"
// @Success      201      {object}  model.Patient
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/v1/patients [post]
func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	gender := req.Gender
	if gender == "" {
		gender = model.GenderUnknown
	}

	patient := &model.Patient{
		Identifier: req.Identifier,
		Active:     true,
		Name:       req.Name,
		Telecom:    req.Telecom,
		Gender:     gender,
		BirthDate:  req.BirthDate,
		Address:    req.Address,
	}

	if err := h.svc.Create(c.Request.Context(), patient); err != nil {
		internalError(c, "Failed to create patient", err)
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// Get returns a patient record
// @Summary      Get patient
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "patient id"
// @Success      200  {object}  model.Patient
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/patients/{id} [get]
func (h *PatientHandler) Get(c *gin.Context) {
	patient, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Patient not found")
			return
		}
		internalError(c, "Failed to get patient", err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

// List returns patients with pagination
// @Summary      List patients
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "page size"
// @Param        offset  query     int  false  "page offset"
// @Success      200     {object}  map[string]interface{}
// @Router       /api/v1/patients [get]
func (h *PatientHandler) List(c *gin.Context) {
	limit, offset := pagination(c)

	patients, total, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		internalError(c, "Failed to list patients", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patients": patients,
		"total":    total,
	})
}

// Update applies a partial update to a patient record
// @Summary      Update patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "patient id"
// @Param        request  body      UpdatePatientRequest  true  "fields to update"
// @Success      200      {object}  map[string]string
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/patients/{id} [put]
func (h *PatientHandler) Update(c *gin.Context) {
	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	fields := bson.M{}
	if req.Active != nil {
		fields["active"] = *req.Active
	}
	if req.Name != nil {
		fields["name"] = req.Name
	}
	if req.Telecom != nil {
		fields["telecom"] = req.Telecom
	}
	if req.Gender != "" {
		fields["gender"] = req.Gender
	}
	if req.BirthDate != nil {
		fields["birth_date"] = req.BirthDate
	}
	if req.Address != nil {
		fields["address"] = req.Address
	}

	if err := h.svc.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Patient not found")
			return
		}
		internalError(c, "Failed to update patient", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Patient updated",
	})
}

// Delete removes a patient record
// @Summary      Delete patient
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "patient id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/patients/{id} [delete]
func (h *PatientHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Patient not found")
			return
		}
		internalError(c, "Failed to delete patient", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Patient deleted",
	})
}
