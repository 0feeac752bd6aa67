package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reminisce-backend/internal/models"
)

type PatientRepo struct {
	pool *pgxpool.Pool
}

func NewPatientRepo(pool *pgxpool.Pool) *PatientRepo {
	return &PatientRepo{pool: pool}
}

func (r *PatientRepo) Create(ctx context.Context, p *models.PatientProfile) error {
	p.ID = uuid.New()
	if p.FamilyRelationships == nil {
		p.FamilyRelationships = []byte("[]")
	}
	if p.LifeEvents == nil {
		p.LifeEvents = []byte("[]")
	}
	if p.PersonalityTraits == nil {
		p.PersonalityTraits = []string{}
	}

	query := `INSERT INTO patient_profiles (id, preferred_name, family_relationships, life_events, personality_traits, medical_notes)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		p.ID, p.PreferredName, p.FamilyRelationships, p.LifeEvents, p.PersonalityTraits, p.MedicalNotes,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PatientProfile, error) {
	p := &models.PatientProfile{}
	query := `SELECT id, preferred_name, family_relationships, life_events, personality_traits, medical_notes, created_at, updated_at
		FROM patient_profiles WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.PreferredName, &p.FamilyRelationships, &p.LifeEvents, &p.PersonalityTraits, &p.MedicalNotes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PatientRepo) List(ctx context.Context) ([]*models.PatientProfile, error) {
	query := `SELECT id, preferred_name, family_relationships, life_events, personality_traits, medical_notes, created_at, updated_at
		FROM patient_profiles ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []*models.PatientProfile
	for rows.Next() {
		p := &models.PatientProfile{}
		err := rows.Scan(&p.ID, &p.PreferredName, &p.FamilyRelationships, &p.LifeEvents, &p.PersonalityTraits, &p.MedicalNotes, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, nil
}

func (r *PatientRepo) Update(ctx context.Context, p *models.PatientProfile) error {
	if p.PersonalityTraits == nil {
		p.PersonalityTraits = []string{}
	}

	query := `UPDATE patient_profiles
		SET preferred_name = $1, family_relationships = $2, life_events = $3, personality_traits = $4, medical_notes = $5, updated_at = NOW()
		WHERE id = $6 RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		p.PreferredName, p.FamilyRelationships, p.LifeEvents, p.PersonalityTraits, p.MedicalNotes, p.ID,
	).Scan(&p.UpdatedAt)
}

// Stats aggregates the patient's activity across sessions, memories and
// quiz runs.
func (r *PatientRepo) Stats(ctx context.Context, id uuid.UUID) (*models.PatientStats, error) {
	stats := &models.PatientStats{}

	query := `SELECT
			COUNT(*) FILTER (WHERE session_type <> 'quiz'),
			COUNT(*) FILTER (WHERE session_type = 'quiz'),
			COALESCE(AVG(score) FILTER (WHERE session_type = 'quiz'), 0),
			COALESCE(SUM(duration_seconds) FILTER (WHERE session_type <> 'quiz'), 0),
			MAX(created_at)
		FROM sessions WHERE patient_id = $1 AND status = 'completed'`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&stats.TotalSessions, &stats.TotalQuizzes, &stats.AverageQuizScore, &stats.TotalTalkTimeSeconds, &stats.LastSessionAt,
	)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM memory_cards WHERE patient_id = $1", id,
	).Scan(&stats.TotalMemories)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Delete removes the patient and everything hanging off them in one
// transaction.
func (r *PatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, query := range []string{
		"DELETE FROM transcripts WHERE patient_id = $1",
		"DELETE FROM jobs WHERE patient_id = $1",
		"DELETE FROM sessions WHERE patient_id = $1",
		"DELETE FROM memory_cards WHERE patient_id = $1",
		"DELETE FROM patient_profiles WHERE id = $1",
	} {
		if _, err := tx.Exec(ctx, query, id); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
