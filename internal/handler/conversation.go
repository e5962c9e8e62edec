package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mediassist/internal/model"
	"mediassist/internal/model/auth"
	"mediassist/internal/repository"
	"mediassist/internal/service"
)

// ConversationHandler conversation management endpoints
type ConversationHandler struct {
	chatService *service.ChatService
}

// NewConversationHandler creates the conversation handler
func NewConversationHandler(chatService *service.ChatService) *ConversationHandler {
	return &ConversationHandler{chatService: chatService}
}

// Create starts a conversation seeded with an initial message
// @Summary      Create conversation
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      model.CreateConversationRequest  true  "creation request"
// @Success      201      {object}  model.Conversation
// @Failure      400      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /api/v1/conversations [post]
func (h *ConversationHandler) Create(c *gin.Context) {
	var req model.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, ok := subjectID(c)
	if !ok {
		return
	}

	conv, err := h.chatService.StartConversation(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, service.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
		default:
			internalError(c, "Failed to create conversation", err)
		}
		return
	}

	c.JSON(http.StatusCreated, conv)
}

// List lists the authenticated user's conversations
// @Summary      List conversations
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "page size"
// @Param        offset  query     int  false  "page offset"
// @Success      200     {object}  map[string]interface{}
// @Failure      500     {object}  model.ErrorResponse
// @Router       /api/v1/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		return
	}

	// only providers and admins may browse another subject's conversations
	if q := c.Query("subject_id"); q != "" {
		role := c.GetString("user_role")
		if role == string(auth.RoleProvider) || role == string(auth.RoleAdmin) {
			userID = q
		}
	}

	limit, offset := pagination(c)
	convs, err := h.chatService.ListConversations(c.Request.Context(), userID, limit, offset)
	if err != nil {
		internalError(c, "Failed to list conversations", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversations": convs,
		"total":         len(convs),
	})
}

// Get returns a conversation with its full message history
// @Summary      Get conversation
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "conversation id"
// @Success      200  {object}  model.Conversation
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/conversations/{id} [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	id := c.Param("id")

	conv, err := h.chatService.GetConversation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrConversationNotFound) {
			notFound(c, "Conversation not found")
			return
		}
		internalError(c, "Failed to get conversation", err)
		return
	}

	c.JSON(http.StatusOK, conv)
}

// UpdateStatus applies an explicit status change
// @Summary      Update conversation status
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                                 true  "conversation id"
// @Param        request  body      model.UpdateConversationStatusRequest  true  "status change"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/conversations/{id}/status [patch]
func (h *ConversationHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req model.UpdateConversationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.chatService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
		case errors.Is(err, repository.ErrConversationNotFound):
			notFound(c, "Conversation not found")
		default:
			internalError(c, "Failed to update conversation status", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
	})
}
