package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/holtback/holtback-backend/internal/domain"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// userRepository implements domain.UserRepository
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new user record repository
func NewUserRepository(db *DB) domain.UserRepository {
	return &userRepository{db: db}
}

// List retrieves every user record
func (r *userRepository) List(ctx context.Context) ([]domain.UserRecord, error) {
	query := `
		SELECT record
		FROM users
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list user records: %w", err)
	}
	defer rows.Close()

	var records []domain.UserRecord
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan user record: %w", err)
		}
		var record domain.UserRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("failed to decode user record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed on user record rows: %w", err)
	}

	return records, nil
}

// GetByEmail retrieves a record by its email key
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	query := `
		SELECT record
		FROM users
		WHERE email = $1
	`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, email).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user record: %w", err)
	}

	var record domain.UserRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode user record: %w", err)
	}

	return &record, nil
}

// Create stores a new record
func (r *userRepository) Create(ctx context.Context, record *domain.UserRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}

	query := `
		INSERT INTO users (email, record)
		VALUES ($1, $2)
	`

	if _, err := r.db.ExecContext(ctx, query, record.Email, raw); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user record: %w", err)
	}

	return nil
}

// Update replaces the record stored under record.Email
func (r *userRepository) Update(ctx context.Context, record *domain.UserRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}

	query := `
		UPDATE users
		SET record = $2, updated_at = now()
		WHERE email = $1
	`

	result, err := r.db.ExecContext(ctx, query, record.Email, raw)
	if err != nil {
		return fmt.Errorf("failed to update user record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
