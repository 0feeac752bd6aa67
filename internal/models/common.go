package models

// ValidationError marks a request that failed input validation so handlers
// can map it to a 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func ErrValidation(msg string) error { return &ValidationError{msg: msg} }

// APIError is the error body every endpoint returns.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// WSMessage is the envelope pushed to caregiver clients over the websocket
// and through Redis pub/sub.
type WSMessage struct {
	Type      string      `json:"type"`
	PatientID string      `json:"patient_id"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Websocket event types.
const (
	EventConnected        = "connected"
	EventSessionStarted   = "session_started"
	EventSessionEnded     = "session_ended"
	EventTranscriptReady  = "transcript_ready"
	EventTranscriptFailed = "transcript_failed"
	EventQuizStarted      = "quiz_started"
	EventQuizAnswered     = "quiz_answered"
	EventQuizCompleted    = "quiz_completed"
)
