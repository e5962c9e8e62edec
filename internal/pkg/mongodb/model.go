package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Model is implemented by entities that manage their own indexes
type Model interface {
	// Collection returns the collection name
	Collection() string

	// EnsureIndexes creates and maintains the entity's indexes
	EnsureIndexes(ctx context.Context, db *mongo.Database) error
}

// EnsureAllIndexes creates indexes for all given models.
// Called once at startup.
func EnsureAllIndexes(ctx context.Context, db *mongo.Database, models ...Model) error {
	for _, model := range models {
		if err := model.EnsureIndexes(ctx, db); err != nil {
			return err
		}
	}
	return nil
}

// CreateIndexes helper for model implementations
func CreateIndexes(ctx context.Context, coll *mongo.Collection, indexes []mongo.IndexModel) error {
	if len(indexes) == 0 {
		return nil
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// CreateIndex helper for a single index
func CreateIndex(ctx context.Context, coll *mongo.Collection, index mongo.IndexModel) error {
	_, err := coll.Indexes().CreateOne(ctx, index)
	return err
}
