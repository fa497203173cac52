package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS quiz_history (
	id              UUID PRIMARY KEY,
	owner           TEXT NOT NULL,
	title           TEXT NOT NULL,
	file_name       TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	total_questions INT NOT NULL,
	score           INT,
	quiz            JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS quiz_history_owner_created_idx ON quiz_history (owner, created_at);
`

// PostgresStore persists history in postgres through a pgx pool. Capacity
// eviction runs inside the insert transaction, so insertion, eviction and
// deletion stay linearizable across concurrent writers.
type PostgresStore struct {
	pool     *pgxpool.Pool
	capacity int
}

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string, capacity int) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &PostgresStore{pool: pool, capacity: capacity}, nil
}

// Close closes the underlying pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Add(ctx context.Context, owner string, entry models.HistoryEntry) error {
	quizJSON, err := json.Marshal(entry.Quiz)
	if err != nil {
		return fmt.Errorf("failed to encode quiz: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO quiz_history (id, owner, title, file_name, created_at, total_questions, score, quiz)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, owner, entry.Title, entry.FileName, entry.CreatedAt, entry.TotalQuestions, entry.Score, quizJSON)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	// Oldest evicted first once the owner's list exceeds capacity.
	_, err = tx.Exec(ctx,
		`DELETE FROM quiz_history
		 WHERE owner = $1 AND id NOT IN (
			SELECT id FROM quiz_history
			WHERE owner = $1
			ORDER BY created_at DESC, id
			LIMIT $2
		 )`,
		owner, s.capacity)
	if err != nil {
		return fmt.Errorf("failed to evict old history entries: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) List(ctx context.Context, owner string) ([]models.HistorySummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, file_name, created_at, total_questions, score
		 FROM quiz_history
		 WHERE owner = $1
		 ORDER BY created_at DESC, id`,
		owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.HistorySummary, 0)
	for rows.Next() {
		var sum models.HistorySummary
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.FileName, &sum.CreatedAt, &sum.TotalQuestions, &sum.Score); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, owner string, id uuid.UUID) (*models.HistoryEntry, error) {
	var entry models.HistoryEntry
	var quizJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, title, file_name, created_at, total_questions, score, quiz
		 FROM quiz_history
		 WHERE owner = $1 AND id = $2`,
		owner, id).
		Scan(&entry.ID, &entry.Title, &entry.FileName, &entry.CreatedAt, &entry.TotalQuestions, &entry.Score, &quizJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError(fmt.Sprintf("no history entry with id %s", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history entry: %w", err)
	}

	if err := json.Unmarshal(quizJSON, &entry.Quiz); err != nil {
		return nil, fmt.Errorf("failed to decode stored quiz: %w", err)
	}
	return &entry, nil
}

func (s *PostgresStore) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM quiz_history WHERE owner = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("no history entry with id %s", id))
	}
	return nil
}

func (s *PostgresStore) UpdateScore(ctx context.Context, owner string, id uuid.UUID, score int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var total int
	err = tx.QueryRow(ctx,
		`SELECT total_questions FROM quiz_history WHERE owner = $1 AND id = $2 FOR UPDATE`,
		owner, id).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewNotFoundError(fmt.Sprintf("no history entry with id %s", id))
	}
	if err != nil {
		return fmt.Errorf("failed to load history entry: %w", err)
	}

	if score < 0 || score > total {
		return domain.NewInputError(fmt.Sprintf("score %d out of range [0,%d]", score, total))
	}

	if _, err := tx.Exec(ctx,
		`UPDATE quiz_history SET score = $1 WHERE owner = $2 AND id = $3`,
		score, owner, id); err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}

	return tx.Commit(ctx)
}
