package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PatientProfile captures who the patient is so conversation prompts and
// quizzes can be personalized.
type PatientProfile struct {
	ID                  uuid.UUID       `json:"id"`
	PreferredName       string          `json:"preferred_name"`
	FamilyRelationships json.RawMessage `json:"family_relationships,omitempty"`
	LifeEvents          json.RawMessage `json:"life_events,omitempty"`
	PersonalityTraits   []string        `json:"personality_traits,omitempty"`
	MedicalNotes        *string         `json:"medical_notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type CreatePatientRequest struct {
	PreferredName       string          `json:"preferred_name"`
	FamilyRelationships json.RawMessage `json:"family_relationships"`
	LifeEvents          json.RawMessage `json:"life_events"`
	PersonalityTraits   []string        `json:"personality_traits"`
	MedicalNotes        *string         `json:"medical_notes"`
}

type UpdatePatientRequest struct {
	PreferredName       *string         `json:"preferred_name"`
	FamilyRelationships json.RawMessage `json:"family_relationships"`
	LifeEvents          json.RawMessage `json:"life_events"`
	PersonalityTraits   []string        `json:"personality_traits"`
	MedicalNotes        *string         `json:"medical_notes"`
}

// PatientStats aggregates a patient's activity for the caregiver dashboard.
type PatientStats struct {
	TotalSessions        int        `json:"total_sessions"`
	TotalMemories        int        `json:"total_memories"`
	TotalQuizzes         int        `json:"total_quizzes"`
	AverageQuizScore     float64    `json:"average_quiz_score"`
	TotalTalkTimeSeconds int        `json:"total_talk_time_seconds"`
	LastSessionAt        *time.Time `json:"last_session_at,omitempty"`
}
