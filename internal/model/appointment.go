package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AppointmentStatus scheduling state
type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentArrived    AppointmentStatus = "arrived"
	AppointmentInProgress AppointmentStatus = "in-progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no-show"
)

// IsValid reports whether the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentArrived,
		AppointmentInProgress, AppointmentCompleted, AppointmentCancelled,
		AppointmentNoShow:
		return true
	}
	return false
}

// AppointmentPriority scheduling priority
type AppointmentPriority string

const (
	PriorityRoutine AppointmentPriority = "routine"
	PriorityUrgent  AppointmentPriority = "urgent"
	PriorityASAP    AppointmentPriority = "asap"
	PriorityStat    AppointmentPriority = "stat"
)

// Appointment a scheduled encounter between a patient and a provider
type Appointment struct {
	ID                 string              `bson:"_id,omitempty" json:"id"`
	PatientID          string              `bson:"patient_id" json:"patient_id"`
	ProviderID         string              `bson:"provider_id" json:"provider_id"`
	Status             AppointmentStatus   `bson:"status" json:"status"`
	Type               string              `bson:"type,omitempty" json:"type,omitempty"` // initial/follow-up/emergency/routine/specialist
	StartTime          time.Time           `bson:"start_time" json:"start_time"`
	EndTime            time.Time           `bson:"end_time" json:"end_time"`
	Reason             string              `bson:"reason,omitempty" json:"reason,omitempty"`
	Priority           AppointmentPriority `bson:"priority,omitempty" json:"priority,omitempty"`
	Notes              string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CancellationReason string              `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time           `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name
func (a *Appointment) Collection() string { return "appointments" }

// EnsureIndexes creates and maintains indexes
func (a *Appointment) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(a.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "start_time", Value: -1}},
			Options: options.Index().SetName("idx_patient_start"),
		},
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "start_time", Value: -1}},
			Options: options.Index().SetName("idx_provider_start"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
