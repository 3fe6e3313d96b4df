package database

import (
	"cmp"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLAttemptRepository stores ingest attempts in SQLite.
type SQLAttemptRepository struct {
	db  *DB
	now func() time.Time
}

func NewAttemptRepository(db *DB) *SQLAttemptRepository {
	return &SQLAttemptRepository{db: db, now: time.Now}
}

// RecordAttempt inserts attempt, assigning an ID and timestamp when missing.
func (r *SQLAttemptRepository) RecordAttempt(attempt Attempt) (string, error) {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = r.now()
	}

	_, err := r.db.Exec(`
		INSERT INTO ingest_attempts (id, url, recipe_id, strategy, status, error, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, attempt.ID, attempt.URL, attempt.RecipeID, attempt.Strategy, attempt.Status,
		attempt.Error, cmp.Or(attempt.Source, "cli"), attempt.CreatedAt.UTC())

	if err != nil {
		return "", fmt.Errorf("failed to record attempt: %w", err)
	}

	return attempt.ID, nil
}

// GetRecentAttempts returns up to limit attempts, newest first.
func (r *SQLAttemptRepository) GetRecentAttempts(limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	return r.query(`
		SELECT id, url, recipe_id, strategy, status, error, source, created_at
		FROM ingest_attempts
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
}

func (r *SQLAttemptRepository) GetAttemptsByURL(url string) ([]Attempt, error) {
	return r.query(`
		SELECT id, url, recipe_id, strategy, status, error, source, created_at
		FROM ingest_attempts
		WHERE url = ?
		ORDER BY created_at DESC, rowid DESC
	`, url)
}

// GetAttemptStats counts attempts per status.
func (r *SQLAttemptRepository) GetAttemptStats() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM ingest_attempts GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attempt stats: %w", err)
		}
		stats[status] = count
	}

	return stats, rows.Err()
}

func (r *SQLAttemptRepository) query(query string, args ...any) ([]Attempt, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.URL, &a.RecipeID, &a.Strategy, &a.Status, &a.Error, &a.Source, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempts: %w", err)
	}

	return attempts, nil
}
