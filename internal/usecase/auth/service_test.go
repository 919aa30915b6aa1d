package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/holtback/holtback-backend/internal/domain"
	"github.com/holtback/holtback-backend/internal/security"
)

// MockUserRepository is a mock implementation of UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.UserRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserRecord), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRecord), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, record *domain.UserRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, record *domain.UserRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of SessionRepository for testing
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Read(ctx context.Context, email string) (*domain.UserRecord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRecord), args.Error(1)
}

func (m *MockSessionRepository) Write(ctx context.Context, record *domain.UserRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSessionRepository) Clear(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

const userEmail = "user@example.com"

func newTestService(users domain.UserRepository, sessions domain.SessionRepository) *Service {
	hasher := &security.Hasher{Cost: bcrypt.MinCost}
	tokens := security.NewTokenProvider("test-secret", "holtback", time.Hour)
	return NewService(users, sessions, hasher, tokens)
}

func storedRecord(t *testing.T, password string) *domain.UserRecord {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.UserRecord{Email: userEmail, PasswordHash: string(hash)}
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	mockSessions := new(MockSessionRepository)
	service := newTestService(mockUsers, mockSessions)

	record := storedRecord(t, "secret1")
	mockUsers.On("GetByEmail", ctx, userEmail).Return(record, nil)
	mockSessions.On("Write", ctx, record).Return(nil)

	result, err := service.Login(ctx, "User@Example.com", "secret1")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	assert.Equal(t, userEmail, result.Record.Email)

	mockUsers.AssertExpectations(t)
	mockSessions.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	mockSessions := new(MockSessionRepository)
	service := newTestService(mockUsers, mockSessions)

	mockUsers.On("GetByEmail", ctx, userEmail).Return(storedRecord(t, "secret1"), nil)

	_, err := service.Login(ctx, userEmail, "wrong")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	mockSessions.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	// Unknown email and wrong password are indistinguishable to the caller.
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	service := newTestService(mockUsers, new(MockSessionRepository))

	mockUsers.On("GetByEmail", ctx, userEmail).Return(nil, domain.ErrUserNotFound)

	_, err := service.Login(ctx, userEmail, "secret1")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_StoreFailurePassesThrough(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	service := newTestService(mockUsers, new(MockSessionRepository))

	mockUsers.On("GetByEmail", ctx, userEmail).Return(nil, assert.AnError)

	_, err := service.Login(ctx, userEmail, "secret1")

	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogout_ClearsSession(t *testing.T) {
	ctx := context.Background()
	mockSessions := new(MockSessionRepository)
	service := newTestService(new(MockUserRepository), mockSessions)

	mockSessions.On("Clear", ctx, userEmail).Return(nil)

	require.NoError(t, service.Logout(ctx, userEmail))
	mockSessions.AssertExpectations(t)
}

func TestCurrent_NoSession(t *testing.T) {
	ctx := context.Background()
	mockSessions := new(MockSessionRepository)
	service := newTestService(new(MockUserRepository), mockSessions)

	mockSessions.On("Read", ctx, userEmail).Return(nil, domain.ErrNoSession)

	_, err := service.Current(ctx, userEmail)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}
