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

// LabResultRepo persists laboratory results
type LabResultRepo struct {
	collection *mongo.Collection
}

// NewLabResultRepo creates the lab result repository
func NewLabResultRepo(db *mongo.Database) *LabResultRepo {
	return &LabResultRepo{
		collection: db.Collection("lab_results"),
	}
}

// Create inserts a lab result
func (r *LabResultRepo) Create(ctx context.Context, result *model.LabResult) error {
	now := time.Now()
	result.CreatedAt = now
	result.UpdatedAt = now
	if result.Status == "" {
		result.Status = model.LabRegistered
	}

	_, err := r.collection.InsertOne(ctx, result)
	return err
}

// FindByID looks a lab result up by id
func (r *LabResultRepo) FindByID(ctx context.Context, id string) (*model.LabResult, error) {
	var result model.LabResult
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

// ListByPatient lists a patient's lab results, newest effective first,
// optionally filtered by status
func (r *LabResultRepo) ListByPatient(ctx context.Context, patientID string, status model.LabResultStatus, limit, offset int64) ([]*model.LabResult, error) {
	filter := bson.M{"patient_id": patientID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "effective_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.LabResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// Update replaces the updatable fields of a lab result
func (r *LabResultRepo) Update(ctx context.Context, id string, update bson.M) error {
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

// Delete removes a lab result
func (r *LabResultRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
