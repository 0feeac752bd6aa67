package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reminisce-backend/internal/models"
	"reminisce-backend/internal/services"
)

func newRequestWithURLParam(method, target, param, value string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(param, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

// ─── Patient Handler Tests ───

func TestPatientCreate_InvalidBody(t *testing.T) {
	h := NewPatientHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error code = %q", resp.Error.Code)
	}
}

func TestPatientCreate_MissingName(t *testing.T) {
	h := NewPatientHandler(nil)

	body, _ := json.Marshal(map[string]string{"preferred_name": "   "})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestPatientGet_InvalidID(t *testing.T) {
	h := NewPatientHandler(nil)

	req := newRequestWithURLParam(http.MethodGet, "/api/v1/patients/nope", "id", "nope", nil)
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

// ─── Quiz Handler Tests ───

func testQuizHandler() *QuizHandler {
	runner := services.NewQuizRunner(nil, nil, nil, services.QuizRunnerConfig{})
	return NewQuizHandler(runner)
}

func TestQuizGet_UnknownSession(t *testing.T) {
	h := testQuizHandler()
	id := uuid.NewString()

	req := newRequestWithURLParam(http.MethodGet, "/api/v1/quiz-sessions/"+id, "sessionID", id, nil)
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error.Code != "NOT_FOUND" {
		t.Errorf("error code = %q", resp.Error.Code)
	}
}

func TestQuizAnswer_UnknownSession(t *testing.T) {
	h := testQuizHandler()
	id := uuid.NewString()

	body, _ := json.Marshal(map[string]string{"answer": "At the beach"})
	req := newRequestWithURLParam(http.MethodPost, "/api/v1/quiz-sessions/"+id+"/answer", "sessionID", id, body)
	rr := httptest.NewRecorder()
	h.Answer(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestQuizStart_MissingPatientID(t *testing.T) {
	h := testQuizHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quiz-sessions", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	h.Start(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestQuizStart_UnknownScoringPolicy(t *testing.T) {
	h := testQuizHandler()

	body, _ := json.Marshal(map[string]string{
		"patient_id":     uuid.NewString(),
		"scoring_policy": "bonus_points",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quiz-sessions", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Start(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error code = %q", resp.Error.Code)
	}
}

// ─── Conversation Lookup Tests ───

func TestConversationGet_MissingConversationID(t *testing.T) {
	h := NewConversationHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/by-conversation/", nil)
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestTranscriptGetByConversation_MissingConversationID(t *testing.T) {
	h := NewTranscriptHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/by-conversation/", nil)
	rr := httptest.NewRecorder()
	h.GetByConversation(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

// ─── Conversation Request Validation ───

func TestStartConversationRequestValidate(t *testing.T) {
	patientID := uuid.New()

	tests := []struct {
		name    string
		req     models.StartConversationRequest
		wantErr bool
	}{
		{"defaults to general", models.StartConversationRequest{PatientID: patientID}, false},
		{"missing patient", models.StartConversationRequest{}, true},
		{"unknown type", models.StartConversationRequest{PatientID: patientID, SessionType: "karaoke"}, true},
		{"checkin without config", models.StartConversationRequest{PatientID: patientID, SessionType: models.SessionEmotionalCheckin}, true},
		{
			"checkin with config",
			models.StartConversationRequest{
				PatientID:   patientID,
				SessionType: models.SessionEmotionalCheckin,
				CheckIn:     &models.EmotionalCheckIn{FocusAreas: []string{"mood"}},
			},
			false,
		},
		{
			"bad focus area",
			models.StartConversationRequest{
				PatientID:   patientID,
				SessionType: models.SessionEmotionalCheckin,
				CheckIn:     &models.EmotionalCheckIn{FocusAreas: []string{"horoscope"}},
			},
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
