package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecordType clinical record category
type RecordType string

const (
	RecordEncounter    RecordType = "encounter"
	RecordCondition    RecordType = "condition"
	RecordProcedure    RecordType = "procedure"
	RecordObservation  RecordType = "observation"
	RecordImmunization RecordType = "immunization"
	RecordAllergy      RecordType = "allergy"
)

// IsValid reports whether the type is one of the known values
func (t RecordType) IsValid() bool {
	switch t {
	case RecordEncounter, RecordCondition, RecordProcedure,
		RecordObservation, RecordImmunization, RecordAllergy:
		return true
	}
	return false
}

// RecordStatus clinical record state
type RecordStatus string

const (
	RecordActive   RecordStatus = "active"
	RecordInactive RecordStatus = "inactive"
	RecordResolved RecordStatus = "resolved"
	RecordError    RecordStatus = "error"
)

// IsValid reports whether the status is one of the known values
func (s RecordStatus) IsValid() bool {
	switch s {
	case RecordActive, RecordInactive, RecordResolved, RecordError:
		return true
	}
	return false
}

// Coding a code from a terminology system
type Coding struct {
	System  string `bson:"system" json:"system"`
	Code    string `bson:"code" json:"code"`
	Display string `bson:"display" json:"display"`
}

// CodeableConcept coded value with optional free text
type CodeableConcept struct {
	Coding []Coding `bson:"coding" json:"coding"`
	Text   string   `bson:"text,omitempty" json:"text,omitempty"`
}

// Quantity measured value with its unit
type Quantity struct {
	Value  float64 `bson:"value" json:"value"`
	Unit   string  `bson:"unit" json:"unit"`
	System string  `bson:"system,omitempty" json:"system,omitempty"`
	Code   string  `bson:"code,omitempty" json:"code,omitempty"`
}

// Annotation free-text note with provenance
type Annotation struct {
	Text     string     `bson:"text" json:"text"`
	AuthorID string     `bson:"author_id,omitempty" json:"author_id,omitempty"`
	Time     *time.Time `bson:"time,omitempty" json:"time,omitempty"`
}

// MedicalRecord a clinical entry in a patient's chart: an encounter,
// condition, procedure, observation, immunization or allergy. Observations
// carry a value (quantity or string) plus optional interpretation.
type MedicalRecord struct {
	ID             string            `bson:"_id,omitempty" json:"id"`
	PatientID      string            `bson:"patient_id" json:"patient_id"`
	EncounterID    string            `bson:"encounter_id,omitempty" json:"encounter_id,omitempty"`
	Type           RecordType        `bson:"type" json:"type"`
	Status         RecordStatus      `bson:"status" json:"status"`
	Category       []CodeableConcept `bson:"category,omitempty" json:"category,omitempty"`
	Code           CodeableConcept   `bson:"code" json:"code"`
	PerformerIDs   []string          `bson:"performer_ids,omitempty" json:"performer_ids,omitempty"`
	EffectiveAt    time.Time         `bson:"effective_at" json:"effective_at"`
	Issued         time.Time         `bson:"issued" json:"issued"`
	ValueQuantity  *Quantity         `bson:"value_quantity,omitempty" json:"value_quantity,omitempty"`
	ValueString    string            `bson:"value_string,omitempty" json:"value_string,omitempty"`
	Interpretation []CodeableConcept `bson:"interpretation,omitempty" json:"interpretation,omitempty"`
	Notes          []Annotation      `bson:"notes,omitempty" json:"notes,omitempty"`
	RelatedIDs     []string          `bson:"related_ids,omitempty" json:"related_ids,omitempty"`
	CreatedAt      time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name
func (m *MedicalRecord) Collection() string { return "medical_records" }

// EnsureIndexes creates and maintains indexes
func (m *MedicalRecord) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(m.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "effective_at", Value: -1}},
			Options: options.Index().SetName("idx_patient_effective"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_type_status"),
		},
		{
			Keys:    bson.D{{Key: "encounter_id", Value: 1}},
			Options: options.Index().SetName("idx_encounter"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
