package models

import (
	"time"

	"github.com/google/uuid"
)

// Transcript is the processed record of one video conversation.
type Transcript struct {
	ID               uuid.UUID `json:"id"`
	SessionID        uuid.UUID `json:"session_id"`
	PatientID        uuid.UUID `json:"patient_id"`
	ConversationID   string    `json:"conversation_id"`
	FullText         string    `json:"full_text"`
	WordCount        int       `json:"word_count"`
	DurationSeconds  int       `json:"duration_seconds"`
	KeyTopics        []string  `json:"key_topics,omitempty"`
	MemoryReferences []string  `json:"memory_references,omitempty"`
	PositiveWords    int       `json:"positive_words"`
	NegativeWords    int       `json:"negative_words"`
	CreatedAt        time.Time `json:"created_at"`
}
