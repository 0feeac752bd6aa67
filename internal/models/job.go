package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Job tracks one background transcript-processing task. The row in Postgres
// is the source of truth; the Redis queue only carries the job ID.
type Job struct {
	ID             uuid.UUID `json:"id"`
	SessionID      uuid.UUID `json:"session_id"`
	PatientID      uuid.UUID `json:"patient_id"`
	ConversationID string    `json:"conversation_id"`
	Status         JobStatus `json:"status"`
	RetryCount     int       `json:"retry_count"`
	ErrorMessage   *string   `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
