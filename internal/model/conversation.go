package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConversationCategory classifies what a conversation is about
type ConversationCategory string

const (
	CategorySymptomAssessment ConversationCategory = "symptom_assessment"
	CategoryMedicationQuery   ConversationCategory = "medication_query"
	CategoryGeneralHealth     ConversationCategory = "general_health"
	CategoryEmergencyTriage   ConversationCategory = "emergency_triage"
	CategoryFollowUp          ConversationCategory = "follow_up"
)

// IsValid reports whether the category is one of the known values
func (c ConversationCategory) IsValid() bool {
	switch c {
	case CategorySymptomAssessment, CategoryMedicationQuery, CategoryGeneralHealth,
		CategoryEmergencyTriage, CategoryFollowUp:
		return true
	}
	return false
}

// ConversationStatus lifecycle state of a conversation
type ConversationStatus string

const (
	StatusActive    ConversationStatus = "active"
	StatusCompleted ConversationStatus = "completed"
	StatusEscalated ConversationStatus = "escalated"
	StatusArchived  ConversationStatus = "archived"
)

// IsValid reports whether the status is one of the known values
func (s ConversationStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusEscalated, StatusArchived:
		return true
	}
	return false
}

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// TriageLevel coarse urgency bucket derived from an assistant response
type TriageLevel string

const (
	TriageEmergency TriageLevel = "emergency"
	TriageUrgent    TriageLevel = "urgent"
	TriageRoutine   TriageLevel = "routine"
)

// Conversation is the chat aggregate root.
// Messages are append-only; last_message_at always equals the timestamp of
// the most recently appended message.
type Conversation struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	SubjectID     string               `bson:"subject_id" json:"subject_id"`
	Category      ConversationCategory `bson:"category" json:"category"`
	Status        ConversationStatus   `bson:"status" json:"status"`
	Messages      []Message            `bson:"messages" json:"messages"`
	LastMessageAt time.Time            `bson:"last_message_at" json:"last_message_at"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"updated_at"`
}

// LastMessage returns the most recently appended message, or nil
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// Message is owned by its conversation and never referenced outside it
type Message struct {
	Role      string           `bson:"role" json:"role"`
	Content   string           `bson:"content" json:"content"`
	Timestamp time.Time        `bson:"timestamp" json:"timestamp"`
	Metadata  *MessageMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// MessageMetadata structured signals extracted from an assistant response.
// Severity and TriageLevel are derived together: both set or both absent.
type MessageMetadata struct {
	Symptoms         []string    `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	Severity         int         `bson:"severity,omitempty" json:"severity,omitempty"`
	TriageLevel      TriageLevel `bson:"triage_level,omitempty" json:"triage_level,omitempty"`
	SuggestedActions []string    `bson:"suggested_actions,omitempty" json:"suggested_actions,omitempty"`
}
