package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediassist/internal/model"
)

// EnsureIndexes creates indexes for all collections.
// Record entities implement the Model interface; conversation and auth
// collections are indexed here directly.
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&model.Patient{},
		&model.Provider{},
		&model.Appointment{},
		&model.Medication{},
		&model.MedicalRecord{},
		&model.LabResult{},
	}

	if err := EnsureAllIndexes(ctx, db, models...); err != nil {
		return err
	}

	// conversations collection
	convColl := db.Collection("conversations")
	convIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "subject_id", Value: 1}, bson.E{Key: "last_message_at", Value: -1}},
			Options: options.Index().SetName("idx_subject_last_message"),
		},
		{
			Keys:    bson.D{bson.E{Key: "category", Value: 1}, bson.E{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_category_status"),
		},
		{
			Keys:    bson.D{bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created"),
		},
	}

	if err := CreateIndexes(ctx, convColl, convIndexes); err != nil {
		return err
	}

	// users collection
	userColl := db.Collection("users")
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "username", Value: 1}},
			Options: options.Index().SetName("idx_username").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "role", Value: 1}, bson.E{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_role_status"),
		},
	}

	if err := CreateIndexes(ctx, userColl, userIndexes); err != nil {
		return err
	}

	// refresh_tokens collection
	refreshTokenColl := db.Collection("refresh_tokens")
	refreshTokenIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_user_id"),
		},
		{
			Keys:    bson.D{bson.E{Key: "token", Value: 1}},
			Options: options.Index().SetName("idx_token").SetUnique(true),
		},
		{
			// TTL index, expired tokens are removed automatically
			Keys:    bson.D{bson.E{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_expires_at").SetExpireAfterSeconds(0),
		},
	}

	return CreateIndexes(ctx, refreshTokenColl, refreshTokenIndexes)
}
