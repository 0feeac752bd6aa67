package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"reminisce-backend/internal/models"
	"reminisce-backend/internal/repository"
)

type TranscriptHandler struct {
	transcriptRepo *repository.TranscriptRepo
}

func NewTranscriptHandler(transcriptRepo *repository.TranscriptRepo) *TranscriptHandler {
	return &TranscriptHandler{transcriptRepo: transcriptRepo}
}

// ListByPatient returns the patient's transcripts, optionally filtered by
// a ?q= full-text search or a ?topic= key-topic filter.
func (h *TranscriptHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var (
		transcripts []*models.Transcript
		err         error
	)
	switch {
	case strings.TrimSpace(r.URL.Query().Get("q")) != "":
		transcripts, err = h.transcriptRepo.Search(r.Context(), patientID, strings.TrimSpace(r.URL.Query().Get("q")))
	case r.URL.Query().Get("topic") != "":
		transcripts, err = h.transcriptRepo.ListByTopic(r.Context(), patientID, r.URL.Query().Get("topic"))
	default:
		transcripts, err = h.transcriptRepo.ListByPatient(r.Context(), patientID)
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list transcripts", r))
		return
	}
	if transcripts == nil {
		transcripts = []*models.Transcript{}
	}
	writeJSON(w, http.StatusOK, transcripts)
}

// GetByConversation returns the analyzed transcript for a Tavus
// conversation id, which is what the video client holds during a call.
func (h *TranscriptHandler) GetByConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if conversationID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "conversationID is required", r))
		return
	}
	transcript, err := h.transcriptRepo.GetByConversationID(r.Context(), conversationID)
	if err != nil {
		handleRepoError(w, r, err, "Transcript not found")
		return
	}
	writeJSON(w, http.StatusOK, transcript)
}

func (h *TranscriptHandler) ListBySession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(w, r, "sessionID")
	if !ok {
		return
	}
	transcripts, err := h.transcriptRepo.ListBySession(r.Context(), sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list transcripts", r))
		return
	}
	if transcripts == nil {
		transcripts = []*models.Transcript{}
	}
	writeJSON(w, http.StatusOK, transcripts)
}
