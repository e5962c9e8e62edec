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

// MedicationRepo persists medication records
type MedicationRepo struct {
	collection *mongo.Collection
}

// NewMedicationRepo creates the medication repository
func NewMedicationRepo(db *mongo.Database) *MedicationRepo {
	return &MedicationRepo{
		collection: db.Collection("medications"),
	}
}

// Create inserts a medication
func (r *MedicationRepo) Create(ctx context.Context, med *model.Medication) error {
	now := time.Now()
	med.CreatedAt = now
	med.UpdatedAt = now
	if med.Status == "" {
		med.Status = model.MedicationActive
	}

	_, err := r.collection.InsertOne(ctx, med)
	return err
}

// FindByID looks a medication up by id
func (r *MedicationRepo) FindByID(ctx context.Context, id string) (*model.Medication, error) {
	var med model.Medication
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&med)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &med, nil
}

// ListByPatient lists a patient's medications, optionally filtered by status
func (r *MedicationRepo) ListByPatient(ctx context.Context, patientID string, status model.MedicationStatus, limit, offset int64) ([]*model.Medication, error) {
	filter := bson.M{"patient_id": patientID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "date_written", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var meds []*model.Medication
	if err := cursor.All(ctx, &meds); err != nil {
		return nil, err
	}

	return meds, nil
}

// Update replaces the updatable fields of a medication
func (r *MedicationRepo) Update(ctx context.Context, id string, update bson.M) error {
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

// Delete removes a medication
func (r *MedicationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
