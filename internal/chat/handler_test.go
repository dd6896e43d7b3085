package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	lastConversationID string
	lastMessage        string
	reply              string
}

func (e *fakeEngine) Handle(_ context.Context, conversationID, message string) string {
	e.lastConversationID = conversationID
	e.lastMessage = message
	return e.reply
}

func TestChat_HappyPath(t *testing.T) {
	engine := &fakeEngine{reply: "We cover seven cities."}
	h := NewHandler(engine, nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(
		`{"message":"What cities do you cover?","conversation_id":"c42"}`))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "We cover seven cities.", resp.Response)
	assert.Equal(t, "c42", resp.ConversationID)
	assert.Equal(t, "c42", engine.lastConversationID)
	assert.Equal(t, "What cities do you cover?", engine.lastMessage)
}

func TestChat_DefaultsConversationID(t *testing.T) {
	engine := &fakeEngine{reply: "hi"}
	h := NewHandler(engine, nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "default", resp.ConversationID)
}

func TestChat_RejectsEmptyMessage(t *testing.T) {
	h := NewHandler(&fakeEngine{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"  "}`))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_RejectsMalformedBody(t *testing.T) {
	h := NewHandler(&fakeEngine{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	h := NewHandler(&fakeEngine{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
