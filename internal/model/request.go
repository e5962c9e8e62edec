package model

// ChatRequest inbound chat message
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// CreateConversationRequest creates a conversation seeded with an initial
// user message. Creation without a message is rejected.
type CreateConversationRequest struct {
	InitialMessage string               `json:"initial_message" binding:"required"`
	Category       ConversationCategory `json:"category,omitempty"`
}

// UpdateConversationStatusRequest explicit external status change
// (e.g. a provider closing the case)
type UpdateConversationStatusRequest struct {
	Status ConversationStatus `json:"status" binding:"required"`
}
