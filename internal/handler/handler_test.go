package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvrjc/campusbot/internal/engine"
	"github.com/rvrjc/campusbot/internal/intent"
	"github.com/rvrjc/campusbot/internal/model"
	natsclient "github.com/rvrjc/campusbot/internal/nats"
	"github.com/rvrjc/campusbot/internal/service"
	"github.com/rvrjc/campusbot/pkg/logger"
)

const fixture = `{
  "greetings": {"keywords": ["hello"], "response": "Hello! How can I help you today?", "sentiment": "positive", "links": []},
  "departments": {"keywords": ["departments", "branches"], "response": "We offer several departments: CSE, ECE and Civil.", "sentiment": "neutral", "links": [{"url": "https://example.edu/departments", "text": "Departments"}]},
  "cse_department": {"keywords": ["cse", "computer science"], "response": "The CSE department offers B.Tech and M.Tech programs.", "sentiment": "neutral", "links": []},
  "hostel": {"keywords": ["hostel"], "response": "Separate hostels are available.", "sentiment": "neutral", "links": []}
}`

type testServer struct {
	handler  http.Handler
	sessions *service.SessionService
}

func newTestServer(t *testing.T, maxLength int) *testServer {
	t.Helper()
	store, err := intent.Parse([]byte(fixture))
	require.NoError(t, err)
	eng, err := engine.New(store, engine.DefaultOptions())
	require.NoError(t, err)

	log := logger.Nop()
	sessions := service.NewSessionService(log)
	chat := service.NewChatService(eng, sessions, nil, log)

	h := NewRouter(Handlers{
		Health:   NewHealthHandler(nil, store.Len()),
		Chat:     NewChatHandler(chat, maxLength, log),
		Sessions: NewSessionHandler(sessions, log),
		Topics:   NewTopicsHandler(eng),
	}, []string{"*"}, log)

	return &testServer{handler: h, sessions: sessions}
}

func (s *testServer) do(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) chat(t *testing.T, sessionID, message string) model.ChatResponse {
	t.Helper()
	body, err := json.Marshal(model.ChatRequest{Message: message, SessionID: sessionID})
	require.NoError(t, err)
	rec := s.do(t, http.MethodPost, "/api/v1/chat", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestChat_Conversation(t *testing.T) {
	s := newTestServer(t, 0)

	first := s.chat(t, "", "hello")
	require.NotEmpty(t, first.SessionID)
	assert.Equal(t, "Hello! How can I help you today?", first.Response)
	assert.Equal(t, "smalltalk", first.Kind)
	assert.NotNil(t, first.Links)
	assert.False(t, first.IsFollowUp)

	dept := s.chat(t, first.SessionID, "which departments do you have")
	assert.Equal(t, first.SessionID, dept.SessionID)
	assert.Equal(t, "departments", dept.Intent)
	require.Len(t, dept.Links, 1)

	cse := s.chat(t, first.SessionID, "cse")
	assert.True(t, cse.IsFollowUp)
	assert.Equal(t, "cse_department", cse.Intent)
	assert.Equal(t, "follow_up", cse.Kind)

	rec := s.do(t, http.MethodGet, "/api/v1/sessions/"+first.SessionID+"/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history model.HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Equal(t, 6, history.Total)
	require.Len(t, history.Exchanges, 6)
	assert.Equal(t, model.SenderUser, history.Exchanges[4].Sender)
	assert.Equal(t, "cse", history.Exchanges[4].Message)
	assert.Equal(t, model.SenderBot, history.Exchanges[5].Sender)
}

func TestChat_EmptyMessageGetsClarification(t *testing.T) {
	s := newTestServer(t, 0)

	for _, msg := range []string{"", "   "} {
		resp := s.chat(t, "", msg)
		assert.Equal(t, engine.DefaultClarification, resp.Response)
		assert.Equal(t, "clarification", resp.Kind)
		assert.NotNil(t, resp.Links)
	}
}

func TestChat_BadRequests(t *testing.T) {
	s := newTestServer(t, 20)

	tests := []struct {
		name string
		body []byte
	}{
		{"malformed json", []byte(`{"message":`)},
		{"invalid utf8", []byte("{\"message\":\"hi \xff\"}")},
		{"too long", []byte(`{"message":"` + strings.Repeat("a", 21) + `"}`)},
		{"bad session id", []byte(`{"message":"hello","session_id":"nope"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/v1/chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestChat_Fallback(t *testing.T) {
	s := newTestServer(t, 0)

	resp := s.chat(t, "", "xyzzy")
	assert.Equal(t, "fallback", resp.Kind)
	assert.Contains(t, resp.Response, "departments")
	assert.Empty(t, resp.Intent)
}

func TestSessions(t *testing.T) {
	s := newTestServer(t, 0)
	unknown := service.NewSessionID()

	rec := s.do(t, http.MethodGet, "/api/v1/sessions/"+unknown+"/history", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/sessions/not-a-uuid/history", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/sessions/"+unknown, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	resp := s.chat(t, "", "hostel")
	rec = s.do(t, http.MethodDelete, "/api/v1/sessions/"+resp.SessionID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, s.sessions.Count())

	rec = s.do(t, http.MethodGet, "/api/v1/sessions/"+resp.SessionID+"/history", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTopics(t *testing.T) {
	s := newTestServer(t, 0)

	rec := s.do(t, http.MethodGet, "/api/v1/topics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.TopicsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"departments", "cse department", "hostel"}, resp.Topics)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 0)

	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"intents":4`)
}

func TestReady_NotReady(t *testing.T) {
	tests := []struct {
		name   string
		h      *HealthHandler
		reason string
	}{
		{"no intents", NewHealthHandler(nil, 0), "no intents loaded"},
		{"nats disconnected", NewHealthHandler(&natsclient.Client{}, 3), "NATS not connected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.reason)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, 0)
	s.chat(t, "", "hello")

	rec := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chat_requests_total")
}
