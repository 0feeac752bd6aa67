package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reminisce-backend/internal/models"
)

type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

func (r *JobRepo) Create(ctx context.Context, j *models.Job) error {
	j.ID = uuid.New()
	j.Status = models.JobQueued

	query := `INSERT INTO jobs (id, session_id, patient_id, conversation_id, status)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		j.ID, j.SessionID, j.PatientID, j.ConversationID, j.Status,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
}

func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	j := &models.Job{}
	query := `SELECT id, session_id, patient_id, conversation_id, status, retry_count, error_message, created_at, updated_at
		FROM jobs WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.SessionID, &j.PatientID, &j.ConversationID, &j.Status, &j.RetryCount, &j.ErrorMessage, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *JobRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	return err
}

func (r *JobRepo) RecordFailure(ctx context.Context, id uuid.UUID, status models.JobStatus, retryCount int, errMsg string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE jobs SET status = $1, retry_count = $2, error_message = $3, updated_at = NOW() WHERE id = $4",
		status, retryCount, errMsg, id)
	return err
}
