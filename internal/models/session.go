package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SessionType string

const (
	SessionGeneral          SessionType = "general"
	SessionMemoryFocused    SessionType = "memory_focused"
	SessionEmotionalCheckin SessionType = "emotional_checkin"
	SessionQuiz             SessionType = "quiz"
)

type SessionStatus string

const (
	SessionCreated   SessionStatus = "created"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// Session is one sitting with the companion avatar or one quiz run. Video
// sessions carry a Tavus conversation; quiz sessions carry result fields.
type Session struct {
	ID              uuid.UUID     `json:"id"`
	PatientID       uuid.UUID     `json:"patient_id"`
	SessionType     SessionType   `json:"session_type"`
	Status          SessionStatus `json:"status"`
	ConversationID  *string       `json:"conversation_id,omitempty"`
	ConversationURL *string       `json:"conversation_url,omitempty"`
	DurationSeconds int           `json:"duration_seconds"`

	Score          *int            `json:"score,omitempty"`
	TotalQuestions *int            `json:"total_questions,omitempty"`
	CorrectAnswers *int            `json:"correct_answers,omitempty"`
	QuestionsJSON  json.RawMessage `json:"questions,omitempty"`
	AnswersJSON    json.RawMessage `json:"answers,omitempty"`

	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type StartConversationRequest struct {
	PatientID   uuid.UUID         `json:"patient_id"`
	SessionType SessionType       `json:"session_type"`
	MemoryID    *uuid.UUID        `json:"memory_id"`
	CheckIn     *EmotionalCheckIn `json:"check_in"`
}

func (r *StartConversationRequest) Validate() error {
	if r.PatientID == uuid.Nil {
		return ErrValidation("patient_id is required")
	}
	switch r.SessionType {
	case SessionGeneral, SessionMemoryFocused, SessionEmotionalCheckin:
	case "":
		r.SessionType = SessionGeneral
	default:
		return ErrValidation("session_type must be general, memory_focused or emotional_checkin")
	}
	if r.SessionType == SessionEmotionalCheckin && r.CheckIn == nil {
		return ErrValidation("check_in is required for emotional_checkin sessions")
	}
	if r.CheckIn != nil {
		return r.CheckIn.Validate()
	}
	return nil
}
