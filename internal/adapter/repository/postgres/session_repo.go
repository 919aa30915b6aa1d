package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/holtback/holtback-backend/internal/domain"
)

// sessionRepository implements domain.SessionRepository
type sessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session holder repository
func NewSessionRepository(db *DB) domain.SessionRepository {
	return &sessionRepository{db: db}
}

// Read retrieves the session record for email
func (r *sessionRepository) Read(ctx context.Context, email string) (*domain.UserRecord, error) {
	query := `
		SELECT record
		FROM sessions
		WHERE email = $1
	`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, email).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var record domain.UserRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode session record: %w", err)
	}

	return &record, nil
}

// Write stores record under record.Email, replacing any previous entry
func (r *sessionRepository) Write(ctx context.Context, record *domain.UserRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}

	query := `
		INSERT INTO sessions (email, record)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE
		SET record = EXCLUDED.record, updated_at = now()
	`

	if _, err := r.db.ExecContext(ctx, query, record.Email, raw); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	return nil
}

// Clear removes the session entry for email, if any
func (r *sessionRepository) Clear(ctx context.Context, email string) error {
	query := `
		DELETE FROM sessions
		WHERE email = $1
	`

	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}
