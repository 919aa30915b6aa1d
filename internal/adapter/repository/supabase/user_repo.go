// Package supabase backs the User Record Store with the Supabase REST API,
// for deployments where the records live in a hosted flat list instead of a
// local Postgres.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/supabase-go"

	"github.com/holtback/holtback-backend/internal/domain"
)

const usersTable = "users"

// UserRepository implements domain.UserRepository over Supabase.
type UserRepository struct {
	client *supabase.Client
}

// NewUserRepository creates a Supabase-backed user record repository.
func NewUserRepository(url, key string) (*UserRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &UserRepository{client: client}, nil
}

// List retrieves every user record
func (r *UserRepository) List(ctx context.Context) ([]domain.UserRecord, error) {
	data, _, err := r.client.From(usersTable).
		Select("*", "", false).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list user records: %w", err)
	}

	var records []domain.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse user records: %w", err)
	}
	return records, nil
}

// GetByEmail retrieves a record by its email key
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	data, _, err := r.client.From(usersTable).
		Select("*", "", false).
		Eq("email", email).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user record: %w", err)
	}

	var records []domain.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse user record: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &records[0], nil
}

// Create stores a new record
func (r *UserRepository) Create(ctx context.Context, record *domain.UserRecord) error {
	if _, err := r.GetByEmail(ctx, record.Email); err == nil {
		return domain.ErrEmailTaken
	}

	_, _, err := r.client.From(usersTable).
		Insert(record, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to create user record: %w", err)
	}
	return nil
}

// Update replaces the record stored under record.Email
func (r *UserRepository) Update(ctx context.Context, record *domain.UserRecord) error {
	data, _, err := r.client.From(usersTable).
		Update(record, "representation", "").
		Eq("email", record.Email).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update user record: %w", err)
	}

	var updated []domain.UserRecord
	if err := json.Unmarshal(data, &updated); err != nil {
		return fmt.Errorf("failed to parse updated user record: %w", err)
	}
	if len(updated) == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
