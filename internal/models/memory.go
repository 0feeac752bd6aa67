package models

import (
	"time"

	"github.com/google/uuid"

	"reminisce-backend/internal/quiz"
)

// MemoryCard is one photo memory attached to a patient. Every field beyond
// the photo is optional; the quiz engine works with whatever is present.
type MemoryCard struct {
	ID               uuid.UUID  `json:"id"`
	PatientID        uuid.UUID  `json:"patient_id"`
	PhotoURL         string     `json:"photo_url"`
	DateTaken        *time.Time `json:"date_taken,omitempty"`
	Location         *string    `json:"location,omitempty"`
	Caption          *string    `json:"caption,omitempty"`
	EmotionalContext *string    `json:"emotional_context,omitempty"`
	PeopleInvolved   []string   `json:"people_involved,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// QuizMemory flattens the card into the engine's input shape.
func (m *MemoryCard) QuizMemory() quiz.Memory {
	q := quiz.Memory{
		ID:       m.ID.String(),
		PhotoURL: m.PhotoURL,
		People:   m.PeopleInvolved,
	}
	if m.DateTaken != nil {
		q.DateTaken = *m.DateTaken
	}
	if m.Location != nil {
		q.Location = *m.Location
	}
	if m.Caption != nil {
		q.Caption = *m.Caption
	}
	if m.EmotionalContext != nil {
		q.EmotionalContext = *m.EmotionalContext
	}
	return q
}

type CreateMemoryRequest struct {
	PhotoURL         string     `json:"photo_url"`
	DateTaken        *time.Time `json:"date_taken"`
	Location         *string    `json:"location"`
	Caption          *string    `json:"caption"`
	EmotionalContext *string    `json:"emotional_context"`
	PeopleInvolved   []string   `json:"people_involved"`
}

type UpdateMemoryRequest struct {
	PhotoURL         *string    `json:"photo_url"`
	DateTaken        *time.Time `json:"date_taken"`
	Location         *string    `json:"location"`
	Caption          *string    `json:"caption"`
	EmotionalContext *string    `json:"emotional_context"`
	PeopleInvolved   []string   `json:"people_involved"`
}
