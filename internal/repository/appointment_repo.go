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

// AppointmentRepo persists appointments
type AppointmentRepo struct {
	collection *mongo.Collection
}

// NewAppointmentRepo creates the appointment repository
func NewAppointmentRepo(db *mongo.Database) *AppointmentRepo {
	return &AppointmentRepo{
		collection: db.Collection("appointments"),
	}
}

// Create inserts an appointment
func (r *AppointmentRepo) Create(ctx context.Context, appt *model.Appointment) error {
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	if appt.Status == "" {
		appt.Status = model.AppointmentScheduled
	}

	_, err := r.collection.InsertOne(ctx, appt)
	return err
}

// FindByID looks an appointment up by id
func (r *AppointmentRepo) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &appt, nil
}

// ListByPatient lists a patient's appointments, most recent first
func (r *AppointmentRepo) ListByPatient(ctx context.Context, patientID string, limit, offset int64) ([]*model.Appointment, error) {
	return r.list(ctx, bson.M{"patient_id": patientID}, limit, offset)
}

// ListByProvider lists a provider's appointments, most recent first
func (r *AppointmentRepo) ListByProvider(ctx context.Context, providerID string, limit, offset int64) ([]*model.Appointment, error) {
	return r.list(ctx, bson.M{"provider_id": providerID}, limit, offset)
}

func (r *AppointmentRepo) list(ctx context.Context, filter bson.M, limit, offset int64) ([]*model.Appointment, error) {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "start_time", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []*model.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}

	return appts, nil
}

// UpdateStatus transitions an appointment's status, recording the
// cancellation reason when one is given
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus, cancellationReason string) error {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if cancellationReason != "" {
		set["cancellation_reason"] = cancellationReason
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Update replaces the updatable fields of an appointment
func (r *AppointmentRepo) Update(ctx context.Context, id string, update bson.M) error {
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

// Delete removes an appointment
func (r *AppointmentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
