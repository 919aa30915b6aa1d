package domain

import "context"

// UserRepository defines the interface for the User Record Store. The store
// is keyed by email; implementations back it with Postgres or the remote
// Supabase list API.
type UserRepository interface {
	// List retrieves every user record
	List(ctx context.Context) ([]UserRecord, error)

	// GetByEmail retrieves a record by its email key
	// Returns ErrUserNotFound if no record exists
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)

	// Create stores a new record
	// Returns ErrEmailTaken if the email key is already present
	Create(ctx context.Context, record *UserRecord) error

	// Update replaces the record stored under record.Email
	// Returns ErrUserNotFound if no record exists under that key
	Update(ctx context.Context, record *UserRecord) error
}

// SessionRepository defines the interface for the Session Holder: the
// persisted slot carrying the currently authenticated user's record.
// Entries are set at login, rewritten after every settlement or deposit,
// and cleared at logout.
type SessionRepository interface {
	// Read retrieves the session record for email
	// Returns ErrNoSession if the user is not logged in
	Read(ctx context.Context, email string) (*UserRecord, error)

	// Write stores record under record.Email, replacing any previous entry
	Write(ctx context.Context, record *UserRecord) error

	// Clear removes the session entry for email, if any
	Clear(ctx context.Context, email string) error
}
