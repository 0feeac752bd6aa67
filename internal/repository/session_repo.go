package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reminisce-backend/internal/models"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, s *models.Session) error {
	s.ID = uuid.New()
	if s.Status == "" {
		s.Status = models.SessionCreated
	}

	query := `INSERT INTO sessions (id, patient_id, session_type, status, conversation_id, conversation_url,
			duration_seconds, score, total_questions, correct_answers, questions_json, answers_json, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		s.ID, s.PatientID, s.SessionType, s.Status, s.ConversationID, s.ConversationURL,
		s.DurationSeconds, s.Score, s.TotalQuestions, s.CorrectAnswers, s.QuestionsJSON, s.AnswersJSON, s.StartedAt, s.EndedAt,
	).Scan(&s.CreatedAt)
}

const sessionColumns = `id, patient_id, session_type, status, conversation_id, conversation_url,
	duration_seconds, score, total_questions, correct_answers, questions_json, answers_json, started_at, ended_at, created_at`

func scanSession(row interface{ Scan(...any) error }) (*models.Session, error) {
	s := &models.Session{}
	err := row.Scan(
		&s.ID, &s.PatientID, &s.SessionType, &s.Status, &s.ConversationID, &s.ConversationURL,
		&s.DurationSeconds, &s.Score, &s.TotalQuestions, &s.CorrectAnswers, &s.QuestionsJSON, &s.AnswersJSON, &s.StartedAt, &s.EndedAt, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return scanSession(r.pool.QueryRow(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE id = $1", id))
}

func (r *SessionRepo) GetByConversationID(ctx context.Context, conversationID string) (*models.Session, error) {
	return scanSession(r.pool.QueryRow(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE conversation_id = $1", conversationID))
}

func (r *SessionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*models.Session, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE patient_id = $1 ORDER BY created_at DESC", patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// MarkActive flips a created session to active and stamps its start time.
func (r *SessionRepo) MarkActive(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE sessions SET status = $1, started_at = NOW() WHERE id = $2",
		models.SessionActive, id)
	return err
}

// Complete closes a session and records its final duration.
func (r *SessionRepo) Complete(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSeconds int) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE sessions SET status = $1, ended_at = $2, duration_seconds = $3 WHERE id = $4",
		models.SessionCompleted, endedAt, durationSeconds, id)
	return err
}
