package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"reminisce-backend/internal/models"
	"reminisce-backend/internal/repository"
)

// TranscriptQueue is the Redis list the worker pool consumes.
const TranscriptQueue = "queue:transcript-processing"

// ConversationService orchestrates video sessions: creating the Tavus
// conversation, tracking the session row, and queueing transcript
// processing when the conversation ends.
type ConversationService struct {
	tavus       *TavusService
	patientRepo *repository.PatientRepo
	memoryRepo  *repository.MemoryRepo
	sessionRepo *repository.SessionRepo
	jobRepo     *repository.JobRepo
	queue       *redis.Client
	pubsub      *redis.Client
}

func NewConversationService(
	tavus *TavusService,
	patientRepo *repository.PatientRepo,
	memoryRepo *repository.MemoryRepo,
	sessionRepo *repository.SessionRepo,
	jobRepo *repository.JobRepo,
	queue *redis.Client,
	pubsub *redis.Client,
) *ConversationService {
	return &ConversationService{
		tavus:       tavus,
		patientRepo: patientRepo,
		memoryRepo:  memoryRepo,
		sessionRepo: sessionRepo,
		jobRepo:     jobRepo,
		queue:       queue,
		pubsub:      pubsub,
	}
}

// Start creates a Tavus conversation seeded with a prompt built from the
// patient's profile and memories, and records a session row in created
// state.
func (s *ConversationService) Start(ctx context.Context, req *models.StartConversationRequest) (*models.Session, error) {
	patient, err := s.patientRepo.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}
	memories, err := s.memoryRepo.ListByPatient(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("load memories: %w", err)
	}

	var selected *models.MemoryCard
	if req.SessionType == models.SessionMemoryFocused && req.MemoryID != nil {
		selected, err = s.memoryRepo.GetByID(ctx, *req.MemoryID)
		if err != nil {
			return nil, fmt.Errorf("load memory: %w", err)
		}
	}

	var prompt string
	if req.SessionType == models.SessionEmotionalCheckin {
		prompt = BuildCheckInPrompt(patient, req.CheckIn, memories)
	} else {
		prompt = BuildConversationPrompt(patient, memories, selected)
	}

	name := fmt.Sprintf("%s - %s", patient.PreferredName, time.Now().Format("Jan 2 15:04"))
	conv, err := s.tavus.CreateConversation(ctx, name, prompt, DefaultGreeting)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		PatientID:       req.PatientID,
		SessionType:     req.SessionType,
		Status:          models.SessionCreated,
		ConversationID:  &conv.ConversationID,
		ConversationURL: &conv.ConversationURL,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Lookup resolves the session tracking a Tavus conversation. The video
// client only knows the conversation id once a call is running.
func (s *ConversationService) Lookup(ctx context.Context, conversationID string) (*models.Session, error) {
	return s.sessionRepo.GetByConversationID(ctx, conversationID)
}

// Activate marks the session live once the patient has joined the call.
func (s *ConversationService) Activate(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.MarkActive(ctx, sessionID); err != nil {
		return nil, err
	}
	PublishPatientUpdate(ctx, s.pubsub, session.PatientID, models.EventSessionStarted, map[string]string{
		"session_id": sessionID.String(),
	})
	return s.sessionRepo.GetByID(ctx, sessionID)
}

// End hangs up the Tavus conversation, closes the session row and queues a
// background job to fetch and analyze the transcript.
func (s *ConversationService) End(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.ConversationID != nil {
		if err := s.tavus.EndConversation(ctx, *session.ConversationID); err != nil {
			// The call may have ended on its own; keep going.
			log.Printf("end tavus conversation %s: %v", *session.ConversationID, err)
		}
	}

	now := time.Now()
	duration := 0
	if session.StartedAt != nil {
		duration = int(now.Sub(*session.StartedAt).Seconds())
	}
	if err := s.sessionRepo.Complete(ctx, sessionID, now, duration); err != nil {
		return nil, err
	}

	if session.ConversationID != nil {
		if err := s.enqueueTranscriptJob(ctx, session); err != nil {
			return nil, fmt.Errorf("enqueue transcript job: %w", err)
		}
	}

	PublishPatientUpdate(ctx, s.pubsub, session.PatientID, models.EventSessionEnded, map[string]any{
		"session_id":       sessionID.String(),
		"duration_seconds": duration,
	})
	return s.sessionRepo.GetByID(ctx, sessionID)
}

func (s *ConversationService) enqueueTranscriptJob(ctx context.Context, session *models.Session) error {
	job := &models.Job{
		SessionID:      session.ID,
		PatientID:      session.PatientID,
		ConversationID: *session.ConversationID,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return err
	}
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.queue.LPush(ctx, TranscriptQueue, data).Err()
}
