package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"reminisce-backend/internal/quiz"
	"reminisce-backend/internal/services"
)

type QuizHandler struct {
	runner *services.QuizRunner
}

func NewQuizHandler(runner *services.QuizRunner) *QuizHandler {
	return &QuizHandler{runner: runner}
}

// Build returns a freshly assembled quiz without starting a session.
// A patient with no usable memories gets an empty question list, not an
// error.
func (h *QuizHandler) Build(w http.ResponseWriter, r *http.Request) {
	patientID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	questions, err := h.runner.BuildQuestions(r.Context(), patientID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to build quiz", r))
		return
	}
	if questions == nil {
		questions = []quiz.Question{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"patient_id": patientID,
		"questions":  questions,
	})
}

func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatientID     uuid.UUID `json:"patient_id"`
		ScoringPolicy string    `json:"scoring_policy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PatientID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "patient_id is required", r))
		return
	}
	policy, err := services.ParseScoringPolicy(req.ScoringPolicy)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "scoring_policy must be \"flat\" or \"accuracy_speed\"", r))
		return
	}

	state, err := h.runner.Start(r.Context(), req.PatientID, policy)
	if err != nil {
		if errors.Is(err, services.ErrNoMemories) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResp("NO_QUESTIONS", "Patient has no memories that can produce quiz questions", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to start quiz", r))
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(w, r, "sessionID")
	if !ok {
		return
	}
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	state, err := h.runner.Answer(r.Context(), sessionID, req.Answer)
	if err != nil {
		h.writeRunnerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *QuizHandler) Next(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(w, r, "sessionID")
	if !ok {
		return
	}
	state, err := h.runner.Next(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, services.ErrResultNotSaved) {
			// The run finished but the result row did not land. The
			// caregiver still gets the final state so nothing is lost
			// on screen.
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"error": errorResp("SAVE_FAILED", "Quiz completed but the result could not be saved", r).Error,
				"state": state,
			})
			return
		}
		h.writeRunnerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *QuizHandler) Restart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(w, r, "sessionID")
	if !ok {
		return
	}
	state, err := h.runner.Restart(r.Context(), sessionID)
	if err != nil {
		h.writeRunnerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(w, r, "sessionID")
	if !ok {
		return
	}
	state, err := h.runner.Get(sessionID)
	if err != nil {
		h.writeRunnerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *QuizHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(w, r, "sessionID")
	if !ok {
		return
	}
	if err := h.runner.Abandon(sessionID); err != nil {
		h.writeRunnerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuizHandler) writeRunnerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrQuizNotFound):
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Quiz session not found", r))
	case errors.Is(err, quiz.ErrNotInProgress),
		errors.Is(err, quiz.ErrAlreadyAnswered),
		errors.Is(err, quiz.ErrNotAwaitingNext),
		errors.Is(err, quiz.ErrAlreadyStarted):
		writeJSON(w, http.StatusConflict, errorResp("INVALID_TRANSITION", err.Error(), r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}
