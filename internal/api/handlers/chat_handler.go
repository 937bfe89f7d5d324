package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/neoconsult/booking-assistant/internal/core/assistant"
)

// ChatHandler is the single chat surface of the assistant.
type ChatHandler struct {
	assistant *assistant.Assistant
	session   *assistant.Session
}

func NewChatHandler(a *assistant.Assistant, session *assistant.Session) *ChatHandler {
	return &ChatHandler{assistant: a, session: session}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	reply := h.assistant.HandleMessage(r.Context(), h.session, req.Message)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatResponse{Reply: reply})
}
