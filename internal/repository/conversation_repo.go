package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediassist/internal/model"
)

// ErrConversationNotFound is returned when no conversation matches the id
var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepo persists chat conversations
type ConversationRepo struct {
	collection *mongo.Collection
}

// NewConversationRepo creates the conversation repository
func NewConversationRepo(db *mongo.Database) *ConversationRepo {
	return &ConversationRepo{
		collection: db.Collection("conversations"),
	}
}

// Create inserts a conversation. The caller seeds at least one message;
// an empty conversation is rejected here as a last line of defense.
func (r *ConversationRepo) Create(ctx context.Context, conv *model.Conversation) error {
	if len(conv.Messages) == 0 {
		return errors.New("conversation must be created with an initial message")
	}

	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	if conv.Status == "" {
		conv.Status = model.StatusActive
	}
	conv.LastMessageAt = conv.Messages[len(conv.Messages)-1].Timestamp

	result, err := r.collection.InsertOne(ctx, conv)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		conv.ID = oid
	}
	return nil
}

// FindByID looks a conversation up by its hex id
func (r *ConversationRepo) FindByID(ctx context.Context, id string) (*model.Conversation, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrConversationNotFound
	}

	var conv model.Conversation
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	return &conv, nil
}

// AppendExchange atomically appends a user/assistant message pair and
// updates last_message_at in one document update, so a failed write leaves
// nothing partially committed. When escalate is set the conversation
// status flips to escalated in the same update.
func (r *ConversationRepo) AppendExchange(ctx context.Context, id string, userMsg, assistantMsg model.Message, escalate bool) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrConversationNotFound
	}

	set := bson.M{
		"last_message_at": assistantMsg.Timestamp,
		"updated_at":      time.Now(),
	}
	if escalate {
		set["status"] = model.StatusEscalated
	}

	update := bson.M{
		"$push": bson.M{"messages": bson.M{"$each": []model.Message{userMsg, assistantMsg}}},
		"$set":  set,
	}

	result, err := r.collection.UpdateByID(ctx, objectID, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// ListBySubject lists a subject's conversations, most recent activity
// first, with messages projected out
func (r *ConversationRepo) ListBySubject(ctx context.Context, subjectID string, limit, offset int64) ([]*model.Conversation, error) {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "last_message_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset).
		SetProjection(bson.M{"messages": 0})

	cursor, err := r.collection.Find(ctx, bson.M{"subject_id": subjectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convs []*model.Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, err
	}

	return convs, nil
}

// UpdateStatus sets the conversation status (explicit external action,
// e.g. a provider completing or archiving the case)
func (r *ConversationRepo) UpdateStatus(ctx context.Context, id string, status model.ConversationStatus) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrConversationNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateByID(ctx, objectID, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrConversationNotFound
	}
	return nil
}
