package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LabResultStatus diagnostic result lifecycle
type LabResultStatus string

const (
	LabRegistered  LabResultStatus = "registered"
	LabPartial     LabResultStatus = "partial"
	LabPreliminary LabResultStatus = "preliminary"
	LabFinal       LabResultStatus = "final"
	LabAmended     LabResultStatus = "amended"
	LabCorrected   LabResultStatus = "corrected"
	LabCancelled   LabResultStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values
func (s LabResultStatus) IsValid() bool {
	switch s {
	case LabRegistered, LabPartial, LabPreliminary, LabFinal,
		LabAmended, LabCorrected, LabCancelled:
		return true
	}
	return false
}

// ReferenceRange normal bounds for a result value
type ReferenceRange struct {
	Low  *Quantity `bson:"low,omitempty" json:"low,omitempty"`
	High *Quantity `bson:"high,omitempty" json:"high,omitempty"`
	Text string    `bson:"text,omitempty" json:"text,omitempty"`
}

// LabResult a laboratory observation for a patient
type LabResult struct {
	ID             string            `bson:"_id,omitempty" json:"id"`
	PatientID      string            `bson:"patient_id" json:"patient_id"`
	EncounterID    string            `bson:"encounter_id,omitempty" json:"encounter_id,omitempty"`
	Identifier     []Identifier      `bson:"identifier,omitempty" json:"identifier,omitempty"`
	Status         LabResultStatus   `bson:"status" json:"status"`
	Category       []CodeableConcept `bson:"category,omitempty" json:"category,omitempty"`
	Code           CodeableConcept   `bson:"code" json:"code"`
	PerformerIDs   []string          `bson:"performer_ids,omitempty" json:"performer_ids,omitempty"`
	EffectiveAt    time.Time         `bson:"effective_at" json:"effective_at"`
	Issued         *time.Time        `bson:"issued,omitempty" json:"issued,omitempty"`
	ValueQuantity  *Quantity         `bson:"value_quantity,omitempty" json:"value_quantity,omitempty"`
	ValueString    string            `bson:"value_string,omitempty" json:"value_string,omitempty"`
	Interpretation []CodeableConcept `bson:"interpretation,omitempty" json:"interpretation,omitempty"`
	ReferenceRange []ReferenceRange  `bson:"reference_range,omitempty" json:"reference_range,omitempty"`
	Notes          []Annotation      `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name
func (l *LabResult) Collection() string { return "lab_results" }

// EnsureIndexes creates and maintains indexes
func (l *LabResult) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(l.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "effective_at", Value: -1}},
			Options: options.Index().SetName("idx_patient_effective"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
