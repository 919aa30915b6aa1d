package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/holtback/holtback-backend/internal/domain"
	"github.com/holtback/holtback-backend/internal/security"
)

// LoginResult holds the issued session token and the logged-in record.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Record    *domain.UserRecord
}

// Service implements login, logout, and session lookup. Login writes the
// user's record into the Session Holder; logout clears it. This gives the
// session slot an explicit lifecycle instead of an ambient global.
type Service struct {
	Users    domain.UserRepository
	Sessions domain.SessionRepository
	Hasher   *security.Hasher
	Tokens   *security.TokenProvider
}

// NewService creates an auth Service instance.
func NewService(users domain.UserRepository, sessions domain.SessionRepository, hasher *security.Hasher, tokens *security.TokenProvider) *Service {
	return &Service{
		Users:    users,
		Sessions: sessions,
		Hasher:   hasher,
		Tokens:   tokens,
	}
}

// Login verifies the password, issues a session token, and writes the
// record into the Session Holder. Unknown emails and wrong passwords both
// return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	record, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.Hasher.Compare(record.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.Tokens.Issue(record.Email)
	if err != nil {
		return nil, err
	}

	if err := s.Sessions.Write(ctx, record); err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Record: record}, nil
}

// Logout clears the Session Holder entry for email.
func (s *Service) Logout(ctx context.Context, email string) error {
	return s.Sessions.Clear(ctx, email)
}

// Current returns the Session Holder record for email, or ErrNoSession.
func (s *Service) Current(ctx context.Context, email string) (*domain.UserRecord, error) {
	return s.Sessions.Read(ctx, email)
}
