package model

// ChatResponse synthesized assistant reply
type ChatResponse struct {
	Response       string           `json:"response"`
	ConversationID string           `json:"conversation_id,omitempty"`
	Metadata       *MessageMetadata `json:"metadata,omitempty"`
}

// ErrorResponse error envelope shared by all APIs
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
