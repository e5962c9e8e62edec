package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"mediassist/internal/model"
	"mediassist/internal/repository"
	"mediassist/internal/service"
)

// ProviderHandler provider record endpoints
type ProviderHandler struct {
	svc *service.ProviderService
}

// NewProviderHandler creates the provider handler
func NewProviderHandler(svc *service.ProviderService) *ProviderHandler {
	return &ProviderHandler{svc: svc}
}

// CreateProviderRequest new provider record
type CreateProviderRequest struct {
	Identifier    []model.Identifier   `json:"identifier,omitempty"`
	Name          []model.HumanName    `json:"name" binding:"required,min=1"`
	Telecom       []model.ContactPoint `json:"telecom,omitempty"`
	Specialty     []string             `json:"specialty,omitempty"`
	Qualification []string             `json:"qualification,omitempty"`
}

// UpdateProviderRequest partial provider update; nil fields are untouched
type UpdateProviderRequest struct {
	Active        *bool                `json:"active,omitempty"`
	Name          []model.HumanName    `json:"name,omitempty"`
	Telecom       []model.ContactPoint `json:"telecom,omitempty"`
	Specialty     []string             `json:"specialty,omitempty"`
	Qualification []string             `json:"qualification,omitempty"`
}

// Create registers a provider record
// @Summary      Create provider
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateProviderRequest  true  "provider"
// @Success      201      {object}  model.Provider
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/v1/providers [post]
func (h *ProviderHandler) Create(c *gin.Context) {
	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	provider := &model.Provider{
		Identifier:    req.Identifier,
		Active:        true,
		Name:          req.Name,
		Telecom:       req.Telecom,
		Specialty:     req.Specialty,
		Qualification: req.Qualification,
	}

	if err := h.svc.Create(c.Request.Context(), provider); err != nil {
		internalError(c, "Failed to create provider", err)
		return
	}

	c.JSON(http.StatusCreated, provider)
}

// Get returns a provider record
// @Summary      Get provider
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "provider id"
// @Success      200  {object}  model.Provider
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/providers/{id} [get]
func (h *ProviderHandler) Get(c *gin.Context) {
	provider, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Provider not found")
			return
		}
		internalError(c, "Failed to get provider", err)
		return
	}

	c.JSON(http.StatusOK, provider)
}

// List returns providers, optionally filtered by specialty
// @Summary      List providers
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        specialty  query     string  false  "filter by specialty"
// @Param        limit      query     int     false  "page size"
// @Param        offset     query     int     false  "page offset"
// @Success      200        {object}  map[string]interface{}
// @Router       /api/v1/providers [get]
func (h *ProviderHandler) List(c *gin.Context) {
	limit, offset := pagination(c)

	providers, err := h.svc.List(c.Request.Context(), c.Query("specialty"), limit, offset)
	if err != nil {
		internalError(c, "Failed to list providers", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"providers": providers,
		"total":     len(providers),
	})
}

// Update applies a partial update to a provider record
// @Summary      Update provider
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "provider id"
// @Param        request  body      UpdateProviderRequest  true  "fields to update"
// @Success      200      {object}  map[string]string
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/providers/{id} [put]
func (h *ProviderHandler) Update(c *gin.Context) {
	var req UpdateProviderRequest
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
	if req.Specialty != nil {
		fields["specialty"] = req.Specialty
	}
	if req.Qualification != nil {
		fields["qualification"] = req.Qualification
	}

	if err := h.svc.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Provider not found")
			return
		}
		internalError(c, "Failed to update provider", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Provider updated",
	})
}

// Delete removes a provider record
// @Summary      Delete provider
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "provider id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/providers/{id} [delete]
func (h *ProviderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			notFound(c, "Provider not found")
			return
		}
		internalError(c, "Failed to delete provider", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Provider deleted",
	})
}
