package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MedicationStatus prescription state
type MedicationStatus string

const (
	MedicationActive       MedicationStatus = "active"
	MedicationDiscontinued MedicationStatus = "discontinued"
	MedicationCompleted    MedicationStatus = "completed"
	MedicationOnHold       MedicationStatus = "on-hold"
)

// IsValid reports whether the status is one of the known values
func (s MedicationStatus) IsValid() bool {
	switch s {
	case MedicationActive, MedicationDiscontinued, MedicationCompleted, MedicationOnHold:
		return true
	}
	return false
}

// DosageTiming how often a medication is taken
type DosageTiming struct {
	Frequency  int      `bson:"frequency" json:"frequency"`
	Period     int      `bson:"period" json:"period"`
	PeriodUnit string   `bson:"period_unit" json:"period_unit"` // h/d/wk
	TimeOfDay  []string `bson:"time_of_day,omitempty" json:"time_of_day,omitempty"`
	AsNeeded   bool     `bson:"as_needed,omitempty" json:"as_needed,omitempty"`
}

// Dosage instruction text plus structured timing
type Dosage struct {
	Text   string       `bson:"text" json:"text"`
	Timing DosageTiming `bson:"timing" json:"timing"`
	Route  string       `bson:"route,omitempty" json:"route,omitempty"`
}

// Medication a prescription attached to a patient
type Medication struct {
	ID           string           `bson:"_id,omitempty" json:"id"`
	PatientID    string           `bson:"patient_id" json:"patient_id"`
	PrescriberID string           `bson:"prescriber_id,omitempty" json:"prescriber_id,omitempty"`
	Code         string           `bson:"code,omitempty" json:"code,omitempty"`
	Display      string           `bson:"display" json:"display"`
	Form         string           `bson:"form,omitempty" json:"form,omitempty"`
	Strength     string           `bson:"strength,omitempty" json:"strength,omitempty"`
	Status       MedicationStatus `bson:"status" json:"status"`
	Dosage       Dosage           `bson:"dosage" json:"dosage"`
	DateWritten  time.Time        `bson:"date_written" json:"date_written"`
	Notes        string           `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name
func (m *Medication) Collection() string { return "medications" }

// EnsureIndexes creates and maintains indexes
func (m *Medication) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(m.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_patient_status"),
		},
		{
			Keys:    bson.D{{Key: "prescriber_id", Value: 1}},
			Options: options.Index().SetName("idx_prescriber"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
