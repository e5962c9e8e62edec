package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Gender administrative gender
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// HumanName name parts of a person
type HumanName struct {
	Use    string   `bson:"use,omitempty" json:"use,omitempty"`
	Family string   `bson:"family" json:"family"`
	Given  []string `bson:"given" json:"given"`
	Prefix []string `bson:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix []string `bson:"suffix,omitempty" json:"suffix,omitempty"`
}

// ContactPoint phone/email contact detail
type ContactPoint struct {
	System string `bson:"system" json:"system"` // phone/email
	Value  string `bson:"value" json:"value"`
	Use    string `bson:"use,omitempty" json:"use,omitempty"`
}

// Address postal address
type Address struct {
	Use        string   `bson:"use,omitempty" json:"use,omitempty"`
	Line       []string `bson:"line,omitempty" json:"line,omitempty"`
	City       string   `bson:"city,omitempty" json:"city,omitempty"`
	State      string   `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode string   `bson:"postal_code,omitempty" json:"postal_code,omitempty"`
	Country    string   `bson:"country,omitempty" json:"country,omitempty"`
}

// Identifier external identifier with its issuing system
type Identifier struct {
	System string `bson:"system" json:"system"`
	Value  string `bson:"value" json:"value"`
}

// Patient demographics record
type Patient struct {
	ID         string         `bson:"_id,omitempty" json:"id"`
	Identifier []Identifier   `bson:"identifier,omitempty" json:"identifier,omitempty"`
	Active     bool           `bson:"active" json:"active"`
	Name       []HumanName    `bson:"name" json:"name"`
	Telecom    []ContactPoint `bson:"telecom,omitempty" json:"telecom,omitempty"`
	Gender     Gender         `bson:"gender" json:"gender"`
	BirthDate  *time.Time     `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
	Address    []Address      `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name
func (p *Patient) Collection() string { return "patients" }

// EnsureIndexes creates and maintains indexes
func (p *Patient) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(p.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "identifier.system", Value: 1}, {Key: "identifier.value", Value: 1}},
			Options: options.Index().SetName("idx_identifier"),
		},
		{
			Keys:    bson.D{{Key: "name.family", Value: 1}},
			Options: options.Index().SetName("idx_family_name"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
