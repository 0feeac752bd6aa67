package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reminisce-backend/internal/models"
	"reminisce-backend/internal/services"
)

type ConversationHandler struct {
	conversations *services.ConversationService
}

func NewConversationHandler(conversations *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

func (h *ConversationHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if err := req.Validate(); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", vErr.Error(), r))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request", r))
		return
	}

	session, err := h.conversations.Start(r.Context(), &req)
	if err != nil {
		handleRepoError(w, r, err, "Patient not found")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// Get resolves the session tracking a Tavus conversation id.
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if conversationID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "conversationID is required", r))
		return
	}
	session, err := h.conversations.Lookup(r.Context(), conversationID)
	if err != nil {
		handleRepoError(w, r, err, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Activate is called when the patient has actually joined the video call.
func (h *ConversationHandler) Activate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(w, r, "sessionID")
	if !ok {
		return
	}
	session, err := h.conversations.Activate(r.Context(), sessionID)
	if err != nil {
		handleRepoError(w, r, err, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *ConversationHandler) End(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(w, r, "sessionID")
	if !ok {
		return
	}
	session, err := h.conversations.End(r.Context(), sessionID)
	if err != nil {
		handleRepoError(w, r, err, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, session)
}
