package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTavusBaseURL = "https://tavusapi.com/v2"

// TavusConfig carries everything needed to talk to the Tavus video API.
// Nothing here is read from the environment directly; main wires it in.
type TavusConfig struct {
	APIKey    string
	ReplicaID string
	PersonaID string
	BaseURL   string
}

// TavusService is a thin client for the Tavus conversational video API.
type TavusService struct {
	cfg    TavusConfig
	client *http.Client
}

func NewTavusService(cfg TavusConfig) *TavusService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTavusBaseURL
	}
	return &TavusService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Conversation is the subset of the Tavus conversation object we use.
type Conversation struct {
	ConversationID   string `json:"conversation_id"`
	ConversationURL  string `json:"conversation_url"`
	ConversationName string `json:"conversation_name"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}

type conversationProperties struct {
	MaxCallDuration          int    `json:"max_call_duration"`
	ParticipantLeftTimeout   int    `json:"participant_left_timeout"`
	ParticipantAbsentTimeout int    `json:"participant_absent_timeout"`
	EnableRecording          bool   `json:"enable_recording"`
	EnableClosedCaptions     bool   `json:"enable_closed_captions"`
	ApplyGreenscreen         bool   `json:"apply_greenscreen"`
	Language                 string `json:"language"`
}

type createConversationRequest struct {
	ReplicaID             string                 `json:"replica_id"`
	PersonaID             string                 `json:"persona_id"`
	ConversationName      string                 `json:"conversation_name"`
	ConversationalContext string                 `json:"conversational_context"`
	CustomGreeting        string                 `json:"custom_greeting,omitempty"`
	Properties            conversationProperties `json:"properties"`
}

// CreateConversation starts a new video conversation seeded with the given
// prompt and greeting.
func (s *TavusService) CreateConversation(ctx context.Context, name, prompt, greeting string) (*Conversation, error) {
	body := createConversationRequest{
		ReplicaID:             s.cfg.ReplicaID,
		PersonaID:             s.cfg.PersonaID,
		ConversationName:      name,
		ConversationalContext: prompt,
		CustomGreeting:        greeting,
		Properties: conversationProperties{
			MaxCallDuration:          3600,
			ParticipantLeftTimeout:   60,
			ParticipantAbsentTimeout: 300,
			EnableRecording:          false,
			EnableClosedCaptions:     true,
			ApplyGreenscreen:         false,
			Language:                 "english",
		},
	}

	var conv Conversation
	if err := s.do(ctx, http.MethodPost, "/conversations", body, &conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return &conv, nil
}

func (s *TavusService) GetConversation(ctx context.Context, conversationID string) (*Conversation, error) {
	var conv Conversation
	if err := s.do(ctx, http.MethodGet, "/conversations/"+conversationID, nil, &conv); err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &conv, nil
}

// EndConversation asks Tavus to hang up. A conversation that already ended
// is not an error.
func (s *TavusService) EndConversation(ctx context.Context, conversationID string) error {
	err := s.do(ctx, http.MethodPost, "/conversations/"+conversationID+"/end", nil, nil)
	if err != nil {
		return fmt.Errorf("end conversation: %w", err)
	}
	return nil
}

// TranscriptSegment is one utterance in a raw Tavus transcript.
type TranscriptSegment struct {
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

type RawTranscript struct {
	ConversationID string              `json:"conversation_id"`
	Segments       []TranscriptSegment `json:"transcript"`
}

func (s *TavusService) GetTranscript(ctx context.Context, conversationID string) (*RawTranscript, error) {
	var raw RawTranscript
	if err := s.do(ctx, http.MethodGet, "/conversations/"+conversationID+"/transcripts", nil, &raw); err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}
	raw.ConversationID = conversationID
	return &raw, nil
}

func (s *TavusService) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.cfg.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", s.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("tavus API %s %s: status %d: %s", method, path, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
