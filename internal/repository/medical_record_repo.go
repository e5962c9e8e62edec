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

// MedicalRecordFilter narrows a patient's chart listing
type MedicalRecordFilter struct {
	Type   model.RecordType
	Status model.RecordStatus
	Start  *time.Time
	End    *time.Time
}

// MedicalRecordRepo persists clinical chart entries
type MedicalRecordRepo struct {
	collection *mongo.Collection
}

// NewMedicalRecordRepo creates the medical record repository
func NewMedicalRecordRepo(db *mongo.Database) *MedicalRecordRepo {
	return &MedicalRecordRepo{
		collection: db.Collection("medical_records"),
	}
}

// Create inserts a chart entry
func (r *MedicalRecordRepo) Create(ctx context.Context, record *model.MedicalRecord) error {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.Status == "" {
		record.Status = model.RecordActive
	}
	if record.Issued.IsZero() {
		record.Issued = now
	}

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindByID looks a chart entry up by id
func (r *MedicalRecordRepo) FindByID(ctx context.Context, id string) (*model.MedicalRecord, error) {
	var record model.MedicalRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListByPatient lists a patient's chart entries, newest effective first,
// optionally narrowed by type, status and an effective-time window
func (r *MedicalRecordRepo) ListByPatient(ctx context.Context, patientID string, f MedicalRecordFilter, limit, offset int64) ([]*model.MedicalRecord, int64, error) {
	filter := bson.M{"patient_id": patientID}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Start != nil || f.End != nil {
		window := bson.M{}
		if f.Start != nil {
			window["$gte"] = *f.Start
		}
		if f.End != nil {
			window["$lte"] = *f.End
		}
		filter["effective_at"] = window
	}

	return r.list(ctx, filter, limit, offset)
}

// ListByEncounter lists the chart entries recorded during an encounter
func (r *MedicalRecordRepo) ListByEncounter(ctx context.Context, encounterID string, limit, offset int64) ([]*model.MedicalRecord, int64, error) {
	return r.list(ctx, bson.M{"encounter_id": encounterID}, limit, offset)
}

// ListRelated lists the chart entries that reference a record
func (r *MedicalRecordRepo) ListRelated(ctx context.Context, recordID string) ([]*model.MedicalRecord, error) {
	records, _, err := r.list(ctx, bson.M{"related_ids": recordID}, 0, 0)
	return records, err
}

func (r *MedicalRecordRepo) list(ctx context.Context, filter bson.M, limit, offset int64) ([]*model.MedicalRecord, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "effective_at", Value: -1}}).
		SetSkip(offset)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var records []*model.MedicalRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Update replaces the updatable fields of a chart entry
func (r *MedicalRecordRepo) Update(ctx context.Context, id string, update bson.M) error {
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

// Delete removes a chart entry
func (r *MedicalRecordRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
