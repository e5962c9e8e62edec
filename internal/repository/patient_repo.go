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

// ErrRecordNotFound is returned by record repositories on a miss
var ErrRecordNotFound = errors.New("record not found")

// PatientRepo persists patient records
type PatientRepo struct {
	collection *mongo.Collection
}

// NewPatientRepo creates the patient repository
func NewPatientRepo(db *mongo.Database) *PatientRepo {
	return &PatientRepo{
		collection: db.Collection("patients"),
	}
}

// Create inserts a patient
func (r *PatientRepo) Create(ctx context.Context, patient *model.Patient) error {
	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, patient)
	return err
}

// FindByID looks a patient up by id
func (r *PatientRepo) FindByID(ctx context.Context, id string) (*model.Patient, error) {
	var patient model.Patient
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &patient, nil
}

// List returns patients with pagination, newest first
func (r *PatientRepo) List(ctx context.Context, filter bson.M, limit, offset int64) ([]*model.Patient, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var patients []*model.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}

// Update replaces the updatable fields of a patient
func (r *PatientRepo) Update(ctx context.Context, id string, update bson.M) error {
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

// Delete removes a patient
func (r *PatientRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
