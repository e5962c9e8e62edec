package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mediassist/internal/model"
	"mediassist/internal/model/auth"
	"mediassist/internal/pkg/ctxutil"
	"mediassist/internal/repository"
	"mediassist/internal/service"
	"mediassist/internal/triage"
)

// stubStore minimal in-memory ConversationStore for handler tests
type stubStore struct {
	convs map[string]*model.Conversation
}

func newStubStore() *stubStore {
	return &stubStore{convs: make(map[string]*model.Conversation)}
}

func (s *stubStore) Create(_ context.Context, conv *model.Conversation) error {
	conv.ID = primitive.NewObjectID()
	conv.LastMessageAt = conv.Messages[len(conv.Messages)-1].Timestamp
	s.convs[conv.ID.Hex()] = conv
	return nil
}

func (s *stubStore) FindByID(_ context.Context, id string) (*model.Conversation, error) {
	conv, ok := s.convs[id]
	if !ok {
		return nil, repository.ErrConversationNotFound
	}
	return conv, nil
}

func (s *stubStore) AppendExchange(_ context.Context, id string, userMsg, assistantMsg model.Message, escalate bool) error {
	conv, ok := s.convs[id]
	if !ok {
		return repository.ErrConversationNotFound
	}
	conv.Messages = append(conv.Messages, userMsg, assistantMsg)
	conv.LastMessageAt = assistantMsg.Timestamp
	if escalate {
		conv.Status = model.StatusEscalated
	}
	return nil
}

func (s *stubStore) ListBySubject(_ context.Context, subjectID string, _, _ int64) ([]*model.Conversation, error) {
	var out []*model.Conversation
	for _, conv := range s.convs {
		if conv.SubjectID == subjectID {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (s *stubStore) UpdateStatus(_ context.Context, id string, status model.ConversationStatus) error {
	conv, ok := s.convs[id]
	if !ok {
		return repository.ErrConversationNotFound
	}
	conv.Status = status
	return nil
}

// asUser injects a user id the way the auth middleware does
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func newChatRouter(store *stubStore, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	chatSvc := service.NewChatService(store, nil, nil, time.Second)
	chatHdl := NewChatHandler(chatSvc)
	convHdl := NewConversationHandler(chatSvc)

	group := engine.Group("/api/v1")
	if authed {
		group.Use(asUser("patient-1"))
	}
	group.POST("/chat", chatHdl.Chat)
	group.POST("/conversations", convHdl.Create)
	group.GET("/conversations/:id", convHdl.Get)

	return engine
}

func postJSON(engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	Convey("Given the chat endpoint", t, func() {
		store := newStubStore()
		engine := newChatRouter(store, true)

		Convey("A fever message returns the synthesized assessment", func() {
			w := postJSON(engine, "/api/v1/chat", model.ChatRequest{Message: "I have a fever of 101F"})
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp model.ChatResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.ConversationID, ShouldNotBeEmpty)
			So(resp.Response, ShouldContainSubstring, "Fever")
			So(strings.HasSuffix(resp.Response, triage.Disclaimer), ShouldBeTrue)
			So(resp.Metadata.TriageLevel, ShouldEqual, model.TriageRoutine)
		})

		Convey("A missing message field is a 400 with the shared envelope", func() {
			w := postJSON(engine, "/api/v1/chat", gin.H{})
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var errResp model.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &errResp), ShouldBeNil)
			So(errResp.Code, ShouldEqual, 40001)
		})

		Convey("A whitespace-only message is rejected", func() {
			w := postJSON(engine, "/api/v1/chat", model.ChatRequest{Message: "   "})
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An unknown conversation id is a 404", func() {
			w := postJSON(engine, "/api/v1/chat", model.ChatRequest{
				Message:        "hello again",
				ConversationID: primitive.NewObjectID().Hex(),
			})
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Without an authenticated user the chat endpoint refuses", t, func() {
		engine := newChatRouter(newStubStore(), false)

		w := postJSON(engine, "/api/v1/chat", model.ChatRequest{Message: "I have a cough"})
		So(w.Code, ShouldEqual, http.StatusUnauthorized)
	})
}

func TestConversationEndpoints(t *testing.T) {
	Convey("Given the conversation endpoints", t, func() {
		store := newStubStore()
		engine := newChatRouter(store, true)

		Convey("Creating a conversation seeds both messages", func() {
			w := postJSON(engine, "/api/v1/conversations", model.CreateConversationRequest{
				InitialMessage: "splitting headache since this morning",
			})
			So(w.Code, ShouldEqual, http.StatusCreated)

			var conv model.Conversation
			So(json.Unmarshal(w.Body.Bytes(), &conv), ShouldBeNil)
			So(conv.Messages, ShouldHaveLength, 2)
			So(conv.Category, ShouldEqual, model.CategorySymptomAssessment)

			Convey("And it can be fetched back", func() {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/"+conv.ID.Hex(), nil)
				rec := httptest.NewRecorder()
				engine.ServeHTTP(rec, req)
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("An empty initial message is a 400", func() {
			w := postJSON(engine, "/api/v1/conversations", gin.H{"initial_message": " "})
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestConversationListScope(t *testing.T) {
	Convey("Given conversations owned by two subjects", t, func() {
		store := newStubStore()
		chatSvc := service.NewChatService(store, nil, nil, time.Second)
		convHdl := NewConversationHandler(chatSvc)

		for subject, msg := range map[string]string{
			"patient-1": "itchy rash on my arm",
			"patient-2": "recurring migraines",
		} {
			_, err := chatSvc.StartConversation(context.Background(), subject,
				&model.CreateConversationRequest{InitialMessage: msg})
			So(err, ShouldBeNil)
		}

		newListRouter := func(userID string, role auth.UserRole) *gin.Engine {
			gin.SetMode(gin.TestMode)
			engine := gin.New()
			engine.Use(asUser(userID), func(c *gin.Context) {
				c.Set("user_role", string(role))
			})
			engine.GET("/api/v1/conversations", convHdl.List)
			return engine
		}

		listSubjects := func(engine *gin.Engine, query string) []string {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations"+query, nil)
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Conversations []*model.Conversation `json:"conversations"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)

			var subjects []string
			for _, conv := range body.Conversations {
				subjects = append(subjects, conv.SubjectID)
			}
			return subjects
		}

		Convey("A patient passing subject_id still only sees their own", func() {
			engine := newListRouter("patient-1", auth.RolePatient)
			So(listSubjects(engine, "?subject_id=patient-2"), ShouldResemble, []string{"patient-1"})
		})

		Convey("A provider passing subject_id sees that subject's", func() {
			engine := newListRouter("provider-1", auth.RoleProvider)
			So(listSubjects(engine, "?subject_id=patient-2"), ShouldResemble, []string{"patient-2"})
		})

		Convey("Without subject_id a provider sees their own empty list", func() {
			engine := newListRouter("provider-1", auth.RoleProvider)
			So(listSubjects(engine, ""), ShouldBeNil)
		})
	})
}
