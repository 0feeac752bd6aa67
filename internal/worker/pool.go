package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"reminisce-backend/internal/models"
	"reminisce-backend/internal/repository"
	"reminisce-backend/internal/services"
)

const maxRetries = 3

// Pool runs the background transcript pipeline: pull a job off the Redis
// queue, fetch the raw transcript from Tavus, analyze it and store the
// result.
type Pool struct {
	redis          *redis.Client
	pubsub         *redis.Client
	tavus          *services.TavusService
	jobRepo        *repository.JobRepo
	transcriptRepo *repository.TranscriptRepo
	workerCount    int
	stopChan       chan struct{}
}

func NewPool(
	redisClient *redis.Client,
	pubsub *redis.Client,
	tavus *services.TavusService,
	jobRepo *repository.JobRepo,
	transcriptRepo *repository.TranscriptRepo,
	workerCount int,
) *Pool {
	return &Pool{
		redis:          redisClient,
		pubsub:         pubsub,
		tavus:          tavus,
		jobRepo:        jobRepo,
		transcriptRepo: transcriptRepo,
		workerCount:    workerCount,
		stopChan:       make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		result, err := p.redis.BLPop(ctx, 30*time.Second, services.TranscriptQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}
		if len(result) < 2 {
			continue
		}

		var job models.Job
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Worker %d: failed to parse job: %v", id, err)
			continue
		}

		// Try to acquire lock
		lockKey := fmt.Sprintf("job_lock:%s", job.ID.String())
		locked, err := p.redis.SetNX(ctx, lockKey, "1", 10*time.Minute).Result()
		if err != nil || !locked {
			continue // Another worker has this job
		}

		log.Printf("Worker %d: processing transcript job %s (conversation %s)", id, job.ID, job.ConversationID)
		p.jobRepo.UpdateStatus(ctx, job.ID, models.JobProcessing)

		if err := p.processTranscript(ctx, &job); err != nil {
			p.handleFailure(ctx, &job, err)
		} else {
			p.handleSuccess(ctx, &job)
		}

		p.redis.Del(ctx, lockKey)
	}
}

func (p *Pool) processTranscript(ctx context.Context, job *models.Job) error {
	raw, err := p.tavus.GetTranscript(ctx, job.ConversationID)
	if err != nil {
		return fmt.Errorf("fetch transcript: %w", err)
	}

	analysis := services.AnalyzeTranscript(raw)
	if analysis.WordCount == 0 {
		return fmt.Errorf("conversation %s has an empty transcript", job.ConversationID)
	}

	transcript := &models.Transcript{
		SessionID:        job.SessionID,
		PatientID:        job.PatientID,
		ConversationID:   job.ConversationID,
		FullText:         analysis.FullText,
		WordCount:        analysis.WordCount,
		DurationSeconds:  analysis.DurationSeconds,
		KeyTopics:        analysis.KeyTopics,
		MemoryReferences: analysis.MemoryReferences,
		PositiveWords:    analysis.PositiveWords,
		NegativeWords:    analysis.NegativeWords,
	}
	if err := p.transcriptRepo.Create(ctx, transcript); err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}

	services.PublishPatientUpdate(ctx, p.pubsub, job.PatientID, models.EventTranscriptReady, map[string]any{
		"session_id":    job.SessionID.String(),
		"transcript_id": transcript.ID.String(),
		"word_count":    transcript.WordCount,
		"key_topics":    transcript.KeyTopics,
	})
	return nil
}

func (p *Pool) handleSuccess(ctx context.Context, job *models.Job) {
	p.jobRepo.UpdateStatus(ctx, job.ID, models.JobCompleted)
	log.Printf("Job %s completed successfully", job.ID)
}

func (p *Pool) handleFailure(ctx context.Context, job *models.Job, err error) {
	job.RetryCount++
	errMsg := err.Error()

	if job.RetryCount < maxRetries {
		log.Printf("Job %s failed (attempt %d): %s, retrying", job.ID, job.RetryCount, errMsg)
		p.jobRepo.RecordFailure(ctx, job.ID, models.JobQueued, job.RetryCount, errMsg)

		// Re-queue after exponential backoff
		jobBytes, _ := json.Marshal(job)
		backoff := time.Duration(1<<uint(job.RetryCount)) * time.Second
		time.AfterFunc(backoff, func() {
			p.redis.LPush(context.Background(), services.TranscriptQueue, string(jobBytes))
		})
		return
	}

	log.Printf("Job %s failed permanently: %s", job.ID, errMsg)
	p.jobRepo.RecordFailure(ctx, job.ID, models.JobFailed, job.RetryCount, errMsg)

	services.PublishPatientUpdate(ctx, p.pubsub, job.PatientID, models.EventTranscriptFailed, map[string]any{
		"session_id": job.SessionID.String(),
		"error":      errMsg,
	})
}
