package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mediassist/internal/model"
	"mediassist/internal/triage"
)

// memStore in-memory ConversationStore
type memStore struct {
	mu    sync.Mutex
	convs map[string]*model.Conversation
	fail  bool
}

func newMemStore() *memStore {
	return &memStore{convs: make(map[string]*model.Conversation)}
}

func (m *memStore) Create(_ context.Context, conv *model.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("store down")
	}
	conv.ID = primitive.NewObjectID()
	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	conv.LastMessageAt = conv.Messages[len(conv.Messages)-1].Timestamp
	cp := *conv
	m.convs[conv.ID.Hex()] = &cp
	return nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*model.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.convs[id]
	if !ok {
		return nil, errors.New("conversation not found")
	}
	cp := *conv
	cp.Messages = append([]model.Message(nil), conv.Messages...)
	return &cp, nil
}

func (m *memStore) AppendExchange(_ context.Context, id string, userMsg, assistantMsg model.Message, escalate bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("store down")
	}
	conv, ok := m.convs[id]
	if !ok {
		return errors.New("conversation not found")
	}
	conv.Messages = append(conv.Messages, userMsg, assistantMsg)
	conv.LastMessageAt = assistantMsg.Timestamp
	conv.UpdatedAt = time.Now()
	if escalate {
		conv.Status = model.StatusEscalated
	}
	return nil
}

func (m *memStore) ListBySubject(_ context.Context, subjectID string, _, _ int64) ([]*model.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Conversation
	for _, conv := range m.convs {
		if conv.SubjectID == subjectID {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id string, status model.ConversationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.convs[id]
	if !ok {
		return errors.New("conversation not found")
	}
	conv.Status = status
	return nil
}

// fakeCompleter scripted Completer
type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _ []model.Message, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestChatServiceTemplatePath(t *testing.T) {
	Convey("Given a chat service without an AI completer", t, func() {
		store := newMemStore()
		svc := NewChatService(store, nil, nil, time.Second)
		ctx := context.Background()

		Convey("A first message about fever starts a conversation", func() {
			resp, err := svc.Chat(ctx, "patient-1", &model.ChatRequest{Message: "I have a high fever since yesterday"})
			So(err, ShouldBeNil)
			So(resp.ConversationID, ShouldNotBeEmpty)
			So(resp.Response, ShouldContainSubstring, "fever")
			So(strings.HasSuffix(resp.Response, triage.Disclaimer), ShouldBeTrue)

			Convey("And the template path yields routine triage", func() {
				So(resp.Metadata.TriageLevel, ShouldEqual, model.TriageRoutine)
				So(resp.Metadata.Severity, ShouldEqual, triage.SeverityRoutine)
			})

			Convey("And both messages are persisted in arrival order", func() {
				conv, err := store.FindByID(ctx, resp.ConversationID)
				So(err, ShouldBeNil)
				So(conv.Messages, ShouldHaveLength, 2)
				So(conv.Messages[0].Role, ShouldEqual, model.RoleUser)
				So(conv.Messages[1].Role, ShouldEqual, model.RoleAssistant)
				So(conv.Messages[1].Timestamp.Before(conv.Messages[0].Timestamp), ShouldBeFalse)
				So(conv.LastMessageAt.Equal(conv.Messages[1].Timestamp), ShouldBeTrue)
				So(conv.Status, ShouldEqual, model.StatusActive)
			})

			Convey("And a follow-up appends to the same conversation", func() {
				resp2, err := svc.Chat(ctx, "patient-1", &model.ChatRequest{
					Message:        "now I also have a cough",
					ConversationID: resp.ConversationID,
				})
				So(err, ShouldBeNil)
				So(resp2.ConversationID, ShouldEqual, resp.ConversationID)
				So(resp2.Response, ShouldContainSubstring, "cough")

				conv, err := store.FindByID(ctx, resp.ConversationID)
				So(err, ShouldBeNil)
				So(conv.Messages, ShouldHaveLength, 4)
				So(conv.LastMessageAt.Equal(conv.Messages[3].Timestamp), ShouldBeTrue)
			})
		})

		Convey("A blank message is rejected without touching the store", func() {
			_, err := svc.Chat(ctx, "patient-1", &model.ChatRequest{Message: "   "})
			So(err, ShouldEqual, ErrEmptyMessage)
			So(store.convs, ShouldBeEmpty)
		})

		Convey("A message for an unknown conversation fails", func() {
			_, err := svc.Chat(ctx, "patient-1", &model.ChatRequest{
				Message:        "hello",
				ConversationID: primitive.NewObjectID().Hex(),
			})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestChatServiceAIPath(t *testing.T) {
	Convey("Given a chat service with an AI completer", t, func() {
		store := newMemStore()
		ctx := context.Background()

		Convey("When the completer succeeds its text becomes the reply body", func() {
			completer := &fakeCompleter{reply: "Symptoms: runny nose, sore throat. Rest and fluids should help."}
			svc := NewChatService(store, nil, completer, time.Second)

			resp, err := svc.Chat(ctx, "patient-1", &model.ChatRequest{Message: "I feel off today"})
			So(err, ShouldBeNil)
			So(completer.calls, ShouldEqual, 1)
			So(resp.Response, ShouldStartWith, "Symptoms: runny nose")
			So(strings.HasSuffix(resp.Response, triage.Disclaimer), ShouldBeTrue)

			Convey("And metadata comes from the completion body", func() {
				So(resp.Metadata.Symptoms, ShouldResemble, []string{"runny nose", "sore throat"})
				So(resp.Metadata.TriageLevel, ShouldEqual, model.TriageRoutine)
			})
		})

		Convey("When the completion flags an emergency the conversation escalates", func() {
			completer := &fakeCompleter{reply: "This is a medical emergency. Recommended actions: call an ambulance, do not drive yourself."}
			svc := NewChatService(store, nil, completer, time.Second)

			resp, err := svc.Chat(ctx, "patient-1", &model.ChatRequest{Message: "crushing chest pain and trouble breathing"})
			So(err, ShouldBeNil)
			So(resp.Metadata.TriageLevel, ShouldEqual, model.TriageEmergency)
			So(resp.Metadata.Severity, ShouldEqual, triage.SeverityEmergency)
			So(resp.Metadata.SuggestedActions, ShouldResemble, []string{"call an ambulance", "do not drive yourself"})

			conv, err := store.FindByID(ctx, resp.ConversationID)
			So(err, ShouldBeNil)
			So(conv.Status, ShouldEqual, model.StatusEscalated)

			Convey("And a routine follow-up leaves it escalated", func() {
				completer.reply = "Symptoms: mild soreness. Rest should be enough."
				resp2, err := svc.Chat(ctx, "patient-1", &model.ChatRequest{
					Message:        "feeling a bit better now",
					ConversationID: resp.ConversationID,
				})
				So(err, ShouldBeNil)
				So(resp2.Metadata.TriageLevel, ShouldEqual, model.TriageRoutine)

				conv, err := store.FindByID(ctx, resp.ConversationID)
				So(err, ShouldBeNil)
				So(conv.Status, ShouldEqual, model.StatusEscalated)
			})
		})

		Convey("When the completer fails the template fallback answers instead", func() {
			completer := &fakeCompleter{err: errors.New("upstream timeout")}
			svc := NewChatService(store, nil, completer, time.Second)

			resp, err := svc.Chat(ctx, "patient-1", &model.ChatRequest{Message: "my stomach hurts and I feel nausea"})
			So(err, ShouldBeNil)
			So(completer.calls, ShouldEqual, 1)
			So(resp.Response, ShouldContainSubstring, "Stomach Issues")
			So(strings.HasSuffix(resp.Response, triage.Disclaimer), ShouldBeTrue)
			So(resp.Metadata.TriageLevel, ShouldEqual, model.TriageRoutine)
		})
	})
}

func TestStartConversation(t *testing.T) {
	Convey("Given a chat service", t, func() {
		store := newMemStore()
		svc := NewChatService(store, nil, nil, time.Second)
		ctx := context.Background()

		Convey("StartConversation seeds user and assistant messages", func() {
			conv, err := svc.StartConversation(ctx, "patient-2", &model.CreateConversationRequest{
				InitialMessage: "pounding headache behind my eyes",
				Category:       model.CategorySymptomAssessment,
			})
			So(err, ShouldBeNil)
			So(conv.ID.IsZero(), ShouldBeFalse)
			So(conv.Messages, ShouldHaveLength, 2)
			So(conv.Messages[1].Content, ShouldContainSubstring, "headache")
			So(conv.Category, ShouldEqual, model.CategorySymptomAssessment)
			So(conv.Status, ShouldEqual, model.StatusActive)
		})

		Convey("An omitted category defaults to symptom assessment", func() {
			conv, err := svc.StartConversation(ctx, "patient-2", &model.CreateConversationRequest{
				InitialMessage: "general question about sleep",
			})
			So(err, ShouldBeNil)
			So(conv.Category, ShouldEqual, model.CategorySymptomAssessment)
		})

		Convey("An unknown category is rejected", func() {
			_, err := svc.StartConversation(ctx, "patient-2", &model.CreateConversationRequest{
				InitialMessage: "hello",
				Category:       model.ConversationCategory("gossip"),
			})
			So(err, ShouldEqual, ErrInvalidCategory)
		})

		Convey("An empty initial message is rejected", func() {
			_, err := svc.StartConversation(ctx, "patient-2", &model.CreateConversationRequest{InitialMessage: "  "})
			So(err, ShouldEqual, ErrEmptyMessage)
		})
	})
}

func TestUpdateConversationStatus(t *testing.T) {
	Convey("Given a persisted conversation", t, func() {
		store := newMemStore()
		svc := NewChatService(store, nil, nil, time.Second)
		ctx := context.Background()

		resp, err := svc.Chat(ctx, "patient-3", &model.ChatRequest{Message: "mild cough"})
		So(err, ShouldBeNil)

		Convey("A valid status change is applied", func() {
			err := svc.UpdateStatus(ctx, resp.ConversationID, model.StatusCompleted)
			So(err, ShouldBeNil)

			conv, err := store.FindByID(ctx, resp.ConversationID)
			So(err, ShouldBeNil)
			So(conv.Status, ShouldEqual, model.StatusCompleted)
		})

		Convey("An unknown status is rejected", func() {
			err := svc.UpdateStatus(ctx, resp.ConversationID, model.ConversationStatus("paused"))
			So(err, ShouldEqual, ErrInvalidStatus)
		})
	})
}

func TestConcurrentAppends(t *testing.T) {
	Convey("Concurrent appends to one conversation never interleave an exchange", t, func() {
		store := newMemStore()
		svc := NewChatService(store, nil, nil, time.Second)
		ctx := context.Background()

		resp, err := svc.Chat(ctx, "patient-4", &model.ChatRequest{Message: "fever and chills"})
		So(err, ShouldBeNil)

		const workers = 8
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				_, _ = svc.Chat(ctx, "patient-4", &model.ChatRequest{
					Message:        "still coughing",
					ConversationID: resp.ConversationID,
				})
			}()
		}
		wg.Wait()

		conv, err := store.FindByID(ctx, resp.ConversationID)
		So(err, ShouldBeNil)
		So(conv.Messages, ShouldHaveLength, 2+workers*2)

		// user/assistant pairs stay adjacent
		for i := 0; i < len(conv.Messages); i += 2 {
			So(conv.Messages[i].Role, ShouldEqual, model.RoleUser)
			So(conv.Messages[i+1].Role, ShouldEqual, model.RoleAssistant)
		}
		So(conv.LastMessageAt.Equal(conv.Messages[len(conv.Messages)-1].Timestamp), ShouldBeTrue)
	})
}
