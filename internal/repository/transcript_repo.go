package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reminisce-backend/internal/models"
)

type TranscriptRepo struct {
	pool *pgxpool.Pool
}

func NewTranscriptRepo(pool *pgxpool.Pool) *TranscriptRepo {
	return &TranscriptRepo{pool: pool}
}

func (r *TranscriptRepo) Create(ctx context.Context, t *models.Transcript) error {
	t.ID = uuid.New()
	if t.KeyTopics == nil {
		t.KeyTopics = []string{}
	}
	if t.MemoryReferences == nil {
		t.MemoryReferences = []string{}
	}

	query := `INSERT INTO transcripts (id, session_id, patient_id, conversation_id, full_text, word_count,
			duration_seconds, key_topics, memory_references, positive_words, negative_words)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		t.ID, t.SessionID, t.PatientID, t.ConversationID, t.FullText, t.WordCount,
		t.DurationSeconds, t.KeyTopics, t.MemoryReferences, t.PositiveWords, t.NegativeWords,
	).Scan(&t.CreatedAt)
}

const transcriptColumns = `id, session_id, patient_id, conversation_id, full_text, word_count,
	duration_seconds, key_topics, memory_references, positive_words, negative_words, created_at`

func scanTranscript(row interface{ Scan(...any) error }) (*models.Transcript, error) {
	t := &models.Transcript{}
	err := row.Scan(
		&t.ID, &t.SessionID, &t.PatientID, &t.ConversationID, &t.FullText, &t.WordCount,
		&t.DurationSeconds, &t.KeyTopics, &t.MemoryReferences, &t.PositiveWords, &t.NegativeWords, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TranscriptRepo) GetByConversationID(ctx context.Context, conversationID string) (*models.Transcript, error) {
	return scanTranscript(r.pool.QueryRow(ctx,
		"SELECT "+transcriptColumns+" FROM transcripts WHERE conversation_id = $1", conversationID))
}

func (r *TranscriptRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*models.Transcript, error) {
	return r.list(ctx,
		"SELECT "+transcriptColumns+" FROM transcripts WHERE patient_id = $1 ORDER BY created_at DESC", patientID)
}

func (r *TranscriptRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.Transcript, error) {
	return r.list(ctx,
		"SELECT "+transcriptColumns+" FROM transcripts WHERE session_id = $1 ORDER BY created_at DESC", sessionID)
}

// Search matches the query anywhere in the transcript text, case
// insensitively.
func (r *TranscriptRepo) Search(ctx context.Context, patientID uuid.UUID, q string) ([]*models.Transcript, error) {
	return r.list(ctx,
		"SELECT "+transcriptColumns+" FROM transcripts WHERE patient_id = $1 AND full_text ILIKE '%' || $2 || '%' ORDER BY created_at DESC",
		patientID, q)
}

func (r *TranscriptRepo) ListByTopic(ctx context.Context, patientID uuid.UUID, topic string) ([]*models.Transcript, error) {
	return r.list(ctx,
		"SELECT "+transcriptColumns+" FROM transcripts WHERE patient_id = $1 AND key_topics @> ARRAY[$2] ORDER BY created_at DESC",
		patientID, topic)
}

func (r *TranscriptRepo) list(ctx context.Context, query string, args ...any) ([]*models.Transcript, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transcripts []*models.Transcript
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, err
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, nil
}
