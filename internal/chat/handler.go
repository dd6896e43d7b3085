// Package chat exposes the conversational engine over HTTP.
package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gharfix/gharfix-ai-platform/pkg/logging"
)

const maxMessageBytes = 4 << 10

// Engine is the conversational entry point the handler fronts.
type Engine interface {
	Handle(ctx context.Context, conversationID, message string) string
}

// Handler serves the chat endpoint.
type Handler struct {
	engine Engine
	logger *logging.Logger
}

func NewHandler(engine Engine, logger *logging.Logger) *Handler {
	if engine == nil {
		panic("chat: engine cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{engine: engine, logger: logger}
}

// ChatRequest is the inbound message payload.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

// ChatResponse is the reply payload.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

// Chat handles POST /chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	body := http.MaxBytesReader(w, r.Body, maxMessageBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.logger.Warn("rejected malformed chat request", "error", err.Error())
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "message is required"})
		return
	}
	if req.ConversationID == "" {
		req.ConversationID = "default"
	}

	answer := h.engine.Handle(r.Context(), req.ConversationID, req.Message)
	writeJSON(w, http.StatusOK, ChatResponse{
		Response:       answer,
		ConversationID: req.ConversationID,
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
