package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediassist/internal/model"
)

// ProviderRepo persists provider records
type ProviderRepo struct {
	collection *mongo.Collection
}

// NewProviderRepo creates the provider repository
func NewProviderRepo(db *mongo.Database) *ProviderRepo {
	return &ProviderRepo{
		collection: db.Collection("providers"),
	}
}

// Create inserts a provider
func (r *ProviderRepo) Create(ctx context.Context, provider *model.Provider) error {
	now := time.Now()
	provider.CreatedAt = now
	provider.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, provider)
	return err
}

// FindByID looks a provider up by id
func (r *ProviderRepo) FindByID(ctx context.Context, id string) (*model.Provider, error) {
	var provider model.Provider
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&provider)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &provider, nil
}

// List returns providers, optionally filtered by specialty
func (r *ProviderRepo) List(ctx context.Context, specialty string, limit, offset int64) ([]*model.Provider, error) {
	filter := bson.M{}
	if specialty != "" {
		filter["specialty"] = specialty
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "name.family", Value: 1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var providers []*model.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, err
	}

	return providers, nil
}

// Update replaces the updatable fields of a provider
func (r *ProviderRepo) Update(ctx context.Context, id string, update bson.M) error {
	if setDoc, ok := update["$set"].(bson.M); ok {
		setDoc["updated_at"] = time.Now()
	} else {
		update["$set"] = bson.M{"updated_at": time.Now()}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes a provider
func (r *ProviderRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
