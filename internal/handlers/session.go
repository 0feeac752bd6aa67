package handlers

import (
	"net/http"

	"reminisce-backend/internal/models"
	"reminisce-backend/internal/repository"
)

type SessionHandler struct {
	sessionRepo *repository.SessionRepo
}

func NewSessionHandler(sessionRepo *repository.SessionRepo) *SessionHandler {
	return &SessionHandler{sessionRepo: sessionRepo}
}

func (h *SessionHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	sessions, err := h.sessionRepo.ListByPatient(r.Context(), patientID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list sessions", r))
		return
	}
	if sessions == nil {
		sessions = []*models.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(w, r, "sessionID")
	if !ok {
		return
	}
	session, err := h.sessionRepo.GetByID(r.Context(), sessionID)
	if err != nil {
		handleRepoError(w, r, err, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, session)
}
