package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mediassist/internal/model"
	"mediassist/internal/repository"
	"mediassist/internal/service"
)

// ChatHandler symptom assessment chat endpoint
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates the chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat handles a chat message
// @Summary      Chat
// @Description  Send a message; without a conversation_id a new conversation is started
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      model.ChatRequest  true  "chat message"
// @Success      200      {object}  model.ChatResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /api/v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, ok := subjectID(c)
	if !ok {
		return
	}

	resp, err := h.chatService.Chat(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
		case errors.Is(err, repository.ErrConversationNotFound):
			notFound(c, "Conversation not found")
		default:
			internalError(c, "Failed to process message", err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
