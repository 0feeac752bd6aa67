package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reminisce-backend/internal/models"
)

type MemoryRepo struct {
	pool *pgxpool.Pool
}

func NewMemoryRepo(pool *pgxpool.Pool) *MemoryRepo {
	return &MemoryRepo{pool: pool}
}

func (r *MemoryRepo) Create(ctx context.Context, m *models.MemoryCard) error {
	m.ID = uuid.New()
	if m.PeopleInvolved == nil {
		m.PeopleInvolved = []string{}
	}

	query := `INSERT INTO memory_cards (id, patient_id, photo_url, date_taken, location, caption, emotional_context, people_involved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		m.ID, m.PatientID, m.PhotoURL, m.DateTaken, m.Location, m.Caption, m.EmotionalContext, m.PeopleInvolved,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *MemoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MemoryCard, error) {
	m := &models.MemoryCard{}
	query := `SELECT id, patient_id, photo_url, date_taken, location, caption, emotional_context, people_involved, created_at, updated_at
		FROM memory_cards WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.PatientID, &m.PhotoURL, &m.DateTaken, &m.Location, &m.Caption, &m.EmotionalContext, &m.PeopleInvolved, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MemoryRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*models.MemoryCard, error) {
	query := `SELECT id, patient_id, photo_url, date_taken, location, caption, emotional_context, people_involved, created_at, updated_at
		FROM memory_cards WHERE patient_id = $1 ORDER BY date_taken DESC NULLS LAST, created_at DESC`

	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*models.MemoryCard
	for rows.Next() {
		m := &models.MemoryCard{}
		err := rows.Scan(&m.ID, &m.PatientID, &m.PhotoURL, &m.DateTaken, &m.Location, &m.Caption, &m.EmotionalContext, &m.PeopleInvolved, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		cards = append(cards, m)
	}
	return cards, nil
}

func (r *MemoryRepo) Update(ctx context.Context, m *models.MemoryCard) error {
	if m.PeopleInvolved == nil {
		m.PeopleInvolved = []string{}
	}

	query := `UPDATE memory_cards
		SET photo_url = $1, date_taken = $2, location = $3, caption = $4, emotional_context = $5, people_involved = $6, updated_at = NOW()
		WHERE id = $7 RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		m.PhotoURL, m.DateTaken, m.Location, m.Caption, m.EmotionalContext, m.PeopleInvolved, m.ID,
	).Scan(&m.UpdatedAt)
}

func (r *MemoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM memory_cards WHERE id = $1", id)
	return err
}
