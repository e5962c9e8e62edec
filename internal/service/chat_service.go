package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"mediassist/internal/ai"
	"mediassist/internal/model"
	"mediassist/internal/pkg/cache"
	"mediassist/internal/triage"
)

var (
	ErrEmptyMessage    = errors.New("message must not be empty")
	ErrInvalidStatus   = errors.New("invalid conversation status")
	ErrInvalidCategory = errors.New("invalid conversation category")
)

// ConversationStore is the persistence boundary of the chat service
type ConversationStore interface {
	Create(ctx context.Context, conv *model.Conversation) error
	FindByID(ctx context.Context, id string) (*model.Conversation, error)
	AppendExchange(ctx context.Context, id string, userMsg, assistantMsg model.Message, escalate bool) error
	ListBySubject(ctx context.Context, subjectID string, limit, offset int64) ([]*model.Conversation, error)
	UpdateStatus(ctx context.Context, id string, status model.ConversationStatus) error
}

// ConversationCache is the read-through cache boundary. A nil cache
// disables caching without branching at every call site beyond a nil
// check.
type ConversationCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ChatService runs the assessment pipeline: classify the user message,
// synthesize a response (AI when available, local templates otherwise),
// extract triage metadata, and persist the exchange.
type ChatService struct {
	store     ConversationStore
	cache     ConversationCache
	completer ai.Completer // nil when the AI path is disabled
	aiTimeout time.Duration
	locks     *keyedMutex
}

// NewChatService creates the chat service. completer may be nil.
func NewChatService(store ConversationStore, cc ConversationCache, completer ai.Completer, aiTimeout time.Duration) *ChatService {
	return &ChatService{
		store:     store,
		cache:     cc,
		completer: completer,
		aiTimeout: aiTimeout,
		locks:     newKeyedMutex(),
	}
}

// Chat handles an inbound chat message. With a conversation id the
// exchange is appended to that conversation; without one a new
// conversation is started. Appends to the same conversation are
// serialized so message order matches arrival order.
func (s *ChatService) Chat(ctx context.Context, subjectID string, req *model.ChatRequest) (*model.ChatResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if req.ConversationID == "" {
		conv, resp, err := s.startConversation(ctx, subjectID, text, model.CategorySymptomAssessment)
		if err != nil {
			return nil, err
		}
		resp.ConversationID = conv.ID.Hex()
		return resp, nil
	}

	unlock := s.locks.Lock(req.ConversationID)
	defer unlock()

	conv, err := s.store.FindByID(ctx, req.ConversationID)
	if err != nil {
		return nil, err
	}

	userMsg := model.Message{
		Role:      model.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	}

	content, meta := s.synthesize(ctx, conv.Messages, text)

	assistantMsg := model.Message{
		Role:      model.RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
		Metadata:  meta,
	}

	escalate := meta.TriageLevel == model.TriageEmergency
	if err := s.store.AppendExchange(ctx, req.ConversationID, userMsg, assistantMsg, escalate); err != nil {
		log.Error().Err(err).Str("conversation_id", req.ConversationID).Msg("failed to persist exchange")
		return nil, err
	}

	s.invalidate(ctx, req.ConversationID)

	return &model.ChatResponse{
		Response:       content,
		ConversationID: req.ConversationID,
		Metadata:       meta,
	}, nil
}

// StartConversation creates a conversation seeded with the initial user
// message and the synthesized first response.
func (s *ChatService) StartConversation(ctx context.Context, subjectID string, req *model.CreateConversationRequest) (*model.Conversation, error) {
	text := strings.TrimSpace(req.InitialMessage)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	category := req.Category
	if category == "" {
		category = model.CategorySymptomAssessment
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	conv, _, err := s.startConversation(ctx, subjectID, text, category)
	return conv, err
}

func (s *ChatService) startConversation(ctx context.Context, subjectID, text string, category model.ConversationCategory) (*model.Conversation, *model.ChatResponse, error) {
	userMsg := model.Message{
		Role:      model.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	}

	content, meta := s.synthesize(ctx, nil, text)

	assistantMsg := model.Message{
		Role:      model.RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
		Metadata:  meta,
	}

	status := model.StatusActive
	if meta.TriageLevel == model.TriageEmergency {
		status = model.StatusEscalated
	}

	conv := &model.Conversation{
		SubjectID: subjectID,
		Category:  category,
		Status:    status,
		Messages:  []model.Message{userMsg, assistantMsg},
	}

	if err := s.store.Create(ctx, conv); err != nil {
		log.Error().Err(err).Msg("failed to create conversation")
		return nil, nil, err
	}

	return conv, &model.ChatResponse{
		Response: content,
		Metadata: meta,
	}, nil
}

// synthesize produces the assistant reply for a user message. The AI
// completion runs under a bounded timeout; any failure falls back to the
// local template for the classified category, transparently to the
// caller. Metadata is extracted from the body before the disclaimer is
// appended.
func (s *ChatService) synthesize(ctx context.Context, history []model.Message, text string) (string, *model.MessageMetadata) {
	var body string

	if s.completer != nil {
		cctx, cancel := context.WithTimeout(ctx, s.aiTimeout)
		out, err := s.completer.Complete(cctx, history, text)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("completion failed, falling back to local templates")
		} else {
			body = out
		}
	}

	if body == "" {
		body = triage.TemplateBody(triage.Classify(text), text)
	}

	meta := triage.ExtractMetadata(body)
	return triage.WithDisclaimer(body), meta
}

// GetConversation reads a conversation, via the cache when possible
func (s *ChatService) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	if s.cache != nil {
		var cached model.Conversation
		if err := s.cache.Get(ctx, cache.ConversationCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	conv, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.ConversationCacheKey(id), conv, cache.ConversationCacheTTL); err != nil {
			log.Warn().Err(err).Str("conversation_id", id).Msg("failed to cache conversation")
		}
	}

	return conv, nil
}

// ListConversations lists a subject's conversations, most recent first
func (s *ChatService) ListConversations(ctx context.Context, subjectID string, limit, offset int64) ([]*model.Conversation, error) {
	return s.store.ListBySubject(ctx, subjectID, limit, offset)
}

// UpdateStatus applies an explicit status change, e.g. a provider
// completing or archiving the case
func (s *ChatService) UpdateStatus(ctx context.Context, id string, status model.ConversationStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *ChatService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.ConversationCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("conversation_id", id).Msg("failed to invalidate conversation cache")
	}
}
