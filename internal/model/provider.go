package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Provider a practitioner who can own appointments and prescriptions
type Provider struct {
	ID            string         `bson:"_id,omitempty" json:"id"`
	Identifier    []Identifier   `bson:"identifier,omitempty" json:"identifier,omitempty"`
	Active        bool           `bson:"active" json:"active"`
	Name          []HumanName    `bson:"name" json:"name"`
	Telecom       []ContactPoint `bson:"telecom,omitempty" json:"telecom,omitempty"`
	Specialty     []string       `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Qualification []string       `bson:"qualification,omitempty" json:"qualification,omitempty"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name
func (p *Provider) Collection() string { return "providers" }

// EnsureIndexes creates and maintains indexes
func (p *Provider) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(p.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "specialty", Value: 1}, {Key: "active", Value: 1}},
			Options: options.Index().SetName("idx_specialty_active"),
		},
		{
			Keys:    bson.D{{Key: "name.family", Value: 1}},
			Options: options.Index().SetName("idx_family_name"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
