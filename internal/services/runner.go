package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"reminisce-backend/internal/models"
	"reminisce-backend/internal/quiz"
	"reminisce-backend/internal/repository"
)

var (
	ErrQuizNotFound   = errors.New("quiz session not found")
	ErrNoMemories     = errors.New("patient has no memories that can produce questions")
	ErrResultNotSaved = errors.New("quiz result was not saved")
)

// QuizRunnerConfig tunes live quiz sessions.
type QuizRunnerConfig struct {
	TimeLimitSeconds int
	MaxQuestions     int
	// NewSource overrides the per-session random source in tests.
	NewSource func() quiz.Source
}

// QuizRunner owns every in-flight quiz session. Each session gets a
// server-side countdown per question; when it fires the question is marked
// expired exactly as if the patient had run out of time on screen.
type QuizRunner struct {
	memoryRepo  *repository.MemoryRepo
	sessionRepo *repository.SessionRepo
	pubsub      *redis.Client
	cfg         QuizRunnerConfig
	now         func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*liveQuiz
}

type liveQuiz struct {
	id            uuid.UUID
	patientID     uuid.UUID
	session       *quiz.Session
	src           quiz.Source
	timer         *time.Timer
	startedAt     time.Time
	questionStart time.Time
}

func NewQuizRunner(memoryRepo *repository.MemoryRepo, sessionRepo *repository.SessionRepo, pubsub *redis.Client, cfg QuizRunnerConfig) *QuizRunner {
	if cfg.TimeLimitSeconds <= 0 {
		cfg.TimeLimitSeconds = quiz.DefaultTimeLimit
	}
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = quiz.DefaultMaxQuestions
	}
	if cfg.NewSource == nil {
		cfg.NewSource = quiz.NewSource
	}
	return &QuizRunner{
		memoryRepo:  memoryRepo,
		sessionRepo: sessionRepo,
		pubsub:      pubsub,
		cfg:         cfg,
		now:         time.Now,
		sessions:    make(map[uuid.UUID]*liveQuiz),
	}
}

// QuizState is the snapshot returned to the client after every operation.
type QuizState struct {
	SessionID        uuid.UUID      `json:"session_id"`
	PatientID        uuid.UUID      `json:"patient_id"`
	State            quiz.State     `json:"state"`
	QuestionIndex    int            `json:"question_index"`
	TotalQuestions   int            `json:"total_questions"`
	RemainingSeconds int            `json:"remaining_seconds"`
	CurrentQuestion  *quiz.Question `json:"current_question,omitempty"`
	LastAnswer       *quiz.Answer   `json:"last_answer,omitempty"`
	Feedback         string         `json:"feedback,omitempty"`
	Result           *quiz.Result   `json:"result,omitempty"`
}

// BuildQuestions assembles a quiz from the patient's memory cards without
// starting a live session. No usable memories yields an empty list.
func (r *QuizRunner) BuildQuestions(ctx context.Context, patientID uuid.UUID) ([]quiz.Question, error) {
	cards, err := r.memoryRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	memories := make([]quiz.Memory, 0, len(cards))
	for _, c := range cards {
		memories = append(memories, c.QuizMemory())
	}
	assembler := quiz.NewAssembler(r.cfg.NewSource(), r.cfg.MaxQuestions)
	return assembler.BuildQuiz(memories), nil
}

// ParseScoringPolicy maps a request-level policy name onto an engine
// policy. Empty selects the default accuracy+speed formula.
func ParseScoringPolicy(name string) (quiz.ScoringPolicy, error) {
	switch name {
	case "", "accuracy_speed":
		return quiz.AccuracySpeedScoring{}, nil
	case "flat":
		return quiz.FlatScoring{}, nil
	default:
		return nil, fmt.Errorf("unknown scoring policy %q", name)
	}
}

// Start builds a quiz for the patient and begins a live session on its
// first question. A nil policy selects the default.
func (r *QuizRunner) Start(ctx context.Context, patientID uuid.UUID, policy quiz.ScoringPolicy) (*QuizState, error) {
	questions, err := r.BuildQuestions(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoMemories
	}

	src := r.cfg.NewSource()
	session, err := quiz.NewSession(questions, quiz.SessionConfig{
		TimeLimitSeconds: r.cfg.TimeLimitSeconds,
		Policy:           policy,
	})
	if err != nil {
		return nil, err
	}
	if err := session.Start(); err != nil {
		return nil, err
	}

	lq := &liveQuiz{
		id:        uuid.New(),
		patientID: patientID,
		session:   session,
		src:       src,
		startedAt: r.now(),
	}

	r.mu.Lock()
	r.sessions[lq.id] = lq
	r.armTimer(lq)
	state := r.snapshot(lq)
	r.mu.Unlock()

	PublishPatientUpdate(ctx, r.pubsub, patientID, models.EventQuizStarted, state)
	return state, nil
}

// Answer grades the patient's selection for the current question and
// returns the avatar's spoken feedback alongside the new state.
func (r *QuizRunner) Answer(ctx context.Context, sessionID uuid.UUID, selected string) (*QuizState, error) {
	r.mu.Lock()
	lq, ok := r.sessions[sessionID]
	if !ok {
		r.mu.Unlock()
		return nil, ErrQuizNotFound
	}

	q := lq.session.CurrentQuestion()
	ans, err := lq.session.SubmitAnswer(selected)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	lq.stopTimer()

	state := r.snapshot(lq)
	state.LastAnswer = &ans
	state.Feedback = quiz.GenerateFeedback(ans.Correct, *q, selected, lq.src)
	r.mu.Unlock()

	PublishPatientUpdate(ctx, r.pubsub, lq.patientID, models.EventQuizAnswered, state)
	return state, nil
}

// Next advances past an answered question. Completing the last question
// persists the run as a session row and retires the live session.
func (r *QuizRunner) Next(ctx context.Context, sessionID uuid.UUID) (*QuizState, error) {
	r.mu.Lock()
	lq, ok := r.sessions[sessionID]
	if !ok {
		r.mu.Unlock()
		return nil, ErrQuizNotFound
	}

	if err := lq.session.Next(); err != nil {
		r.mu.Unlock()
		return nil, err
	}

	if lq.session.State() == quiz.StateCompleted {
		state := r.snapshot(lq)
		result := lq.session.Summary()
		state.Result = &result
		delete(r.sessions, sessionID)
		r.mu.Unlock()

		saveErr := r.persistResult(ctx, lq, &result)
		if saveErr != nil {
			log.Printf("✗ Failed to save quiz result for %s: %v", lq.patientID, saveErr)
			saveErr = fmt.Errorf("%w: %v", ErrResultNotSaved, saveErr)
		}
		PublishPatientUpdate(ctx, r.pubsub, lq.patientID, models.EventQuizCompleted, state)
		return state, saveErr
	}

	r.armTimer(lq)
	state := r.snapshot(lq)
	r.mu.Unlock()
	return state, nil
}

// Restart replays the same questions from the top.
func (r *QuizRunner) Restart(ctx context.Context, sessionID uuid.UUID) (*QuizState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lq, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrQuizNotFound
	}
	lq.stopTimer()
	lq.session.Restart()
	lq.startedAt = r.now()
	r.armTimer(lq)
	return r.snapshot(lq), nil
}

// Get returns the current state without touching it.
func (r *QuizRunner) Get(sessionID uuid.UUID) (*QuizState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lq, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrQuizNotFound
	}
	return r.snapshot(lq), nil
}

// Abandon discards a live session without saving anything.
func (r *QuizRunner) Abandon(sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lq, ok := r.sessions[sessionID]
	if !ok {
		return ErrQuizNotFound
	}
	lq.stopTimer()
	delete(r.sessions, sessionID)
	return nil
}

// Stop cancels every live session's timer. Called on shutdown.
func (r *QuizRunner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, lq := range r.sessions {
		lq.stopTimer()
		delete(r.sessions, id)
	}
}

// armTimer schedules expiry of the current question and marks when its
// countdown started. Caller holds the lock.
func (r *QuizRunner) armTimer(lq *liveQuiz) {
	lq.stopTimer()
	lq.questionStart = r.now()
	lq.timer = time.AfterFunc(time.Duration(r.cfg.TimeLimitSeconds)*time.Second, func() {
		r.expire(lq.id)
	})
}

func (lq *liveQuiz) stopTimer() {
	if lq.timer != nil {
		lq.timer.Stop()
		lq.timer = nil
	}
}

func (r *QuizRunner) expire(sessionID uuid.UUID) {
	r.mu.Lock()
	lq, ok := r.sessions[sessionID]
	if !ok {
		r.mu.Unlock()
		return
	}
	q := lq.session.CurrentQuestion()
	ans, err := lq.session.TimeExpire()
	if err != nil {
		// The answer won the race against the timer.
		r.mu.Unlock()
		return
	}
	state := r.snapshot(lq)
	state.LastAnswer = &ans
	state.Feedback = quiz.GenerateFeedback(false, *q, quiz.TimeUpAnswer, lq.src)
	r.mu.Unlock()

	PublishPatientUpdate(context.Background(), r.pubsub, lq.patientID, models.EventQuizAnswered, state)
}

// snapshot renders the session's current state. Caller holds the lock.
func (r *QuizRunner) snapshot(lq *liveQuiz) *QuizState {
	s := lq.session
	return &QuizState{
		SessionID:        lq.id,
		PatientID:        lq.patientID,
		State:            s.State(),
		QuestionIndex:    s.CurrentIndex(),
		TotalQuestions:   len(s.Questions()),
		RemainingSeconds: r.remaining(lq),
		CurrentQuestion:  s.CurrentQuestion(),
	}
}

// remaining derives the live countdown from the question's start time, so
// every snapshot reflects the clock rather than the last state transition.
func (r *QuizRunner) remaining(lq *liveQuiz) int {
	if lq.session.State() != quiz.StateInProgress {
		return 0
	}
	left := r.cfg.TimeLimitSeconds - int(r.now().Sub(lq.questionStart).Seconds())
	if left < 0 {
		return 0
	}
	return left
}

func (r *QuizRunner) persistResult(ctx context.Context, lq *liveQuiz, result *quiz.Result) error {
	questionsJSON, err := json.Marshal(lq.session.Questions())
	if err != nil {
		return err
	}
	answersJSON, err := json.Marshal(result.Answers)
	if err != nil {
		return err
	}

	now := time.Now()
	startedAt := lq.startedAt
	record := &models.Session{
		PatientID:       lq.patientID,
		SessionType:     models.SessionQuiz,
		Status:          models.SessionCompleted,
		DurationSeconds: result.TimeSpentSeconds,
		Score:           &result.Score,
		TotalQuestions:  &result.TotalQuestions,
		CorrectAnswers:  &result.CorrectAnswers,
		QuestionsJSON:   questionsJSON,
		AnswersJSON:     answersJSON,
		StartedAt:       &startedAt,
		EndedAt:         &now,
	}
	return r.sessionRepo.Create(ctx, record)
}
