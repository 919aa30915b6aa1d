package transfer

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/holtback/holtback-backend/internal/domain"
)

// Config carries the verification secrets and policy knobs, injected instead
// of hardcoded: challenge answers, fee rate, attempt budget, store timeout.
type Config struct {
	ChallengeCode string
	AccessCode    string
	FeeRate       decimal.Decimal
	MaxAttempts   int
	StoreTimeout  time.Duration
}

// DefaultFeeRate is applied when no fee rate is configured: 10% of the
// user's total balance.
var DefaultFeeRate = decimal.NewFromFloat(0.10)

// DefaultStoreTimeout bounds settlement store writes so a hung upstream
// cannot leave the flow stuck in a loading state.
const DefaultStoreTimeout = 10 * time.Second

// Status is the session snapshot returned to the transport layer after each
// verification step.
type Status struct {
	Stage             domain.Stage
	AttemptsRemaining int
	LastError         string
}

// Service drives transfer verification and settlement. One verification
// session exists per authenticated user at a time; sessions are held in
// memory and discarded on abandon or process restart.
type Service struct {
	Users    domain.UserRepository
	Sessions domain.SessionRepository

	cfg Config

	mu     sync.Mutex
	active map[string]*domain.VerificationSession
}

// NewService creates a transfer Service. Zero-valued Config fields fall back
// to the documented defaults (code "123456", access "ACCESS123", 10% fee,
// 3 attempts, 10s store timeout).
func NewService(users domain.UserRepository, sessions domain.SessionRepository, cfg Config) *Service {
	if cfg.ChallengeCode == "" {
		cfg.ChallengeCode = "123456"
	}
	if cfg.AccessCode == "" {
		cfg.AccessCode = "ACCESS123"
	}
	if cfg.FeeRate.LessThanOrEqual(decimal.Zero) {
		cfg.FeeRate = DefaultFeeRate
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = domain.DefaultMaxAttempts
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = DefaultStoreTimeout
	}
	return &Service{
		Users:    users,
		Sessions: sessions,
		cfg:      cfg,
		active:   make(map[string]*domain.VerificationSession),
	}
}

// Begin validates the transfer form and starts verification. On validation
// failure the session stays at the form stage.
func (s *Service) Begin(ctx context.Context, email string, req domain.TransferRequest) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.active[email]
	if !ok {
		sess = domain.NewVerificationSession(s.cfg.MaxAttempts)
		s.active[email] = sess
	}
	if err := sess.Begin(req); err != nil {
		return snapshot(sess), err
	}
	return snapshot(sess), nil
}

// SubmitCode checks the 6-digit code at the code-challenge stage. A lockout
// has already reset the session to the form stage when LockoutError is
// returned.
func (s *Service) SubmitCode(ctx context.Context, email, code string) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.active[email]
	if !ok {
		return nil, domain.ErrNoVerification
	}
	err := sess.SubmitCode(code, s.cfg.ChallengeCode)
	return snapshot(sess), err
}

// SubmitAccessDetails checks the access string at the access-challenge stage.
func (s *Service) SubmitAccessDetails(ctx context.Context, email, value string) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.active[email]
	if !ok {
		return nil, domain.ErrNoVerification
	}
	err := sess.SubmitAccessDetails(value, s.cfg.AccessCode)
	return snapshot(sess), err
}

// FeeQuote computes the fee the user must acknowledge at fee-confirmation.
// The fee is FeeRate times the user's total balance at the time of the
// quote, not a fraction of the transfer amount.
func (s *Service) FeeQuote(ctx context.Context, email string) (decimal.Decimal, error) {
	record, err := s.Sessions.Read(ctx, email)
	if err != nil {
		return decimal.Zero, err
	}
	return record.Amount.Mul(s.cfg.FeeRate), nil
}

// ConfirmFee runs settlement for the pending request. On success the session
// reaches the success stage and the updated record is returned. On
// InsufficientBalance or PersistenceFailure the session stays at
// fee-confirmation with no attempt decrement, so settlement can be retried
// without repeating the challenges.
func (s *Service) ConfirmFee(ctx context.Context, email string) (*domain.UserRecord, error) {
	s.mu.Lock()
	sess, ok := s.active[email]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrNoVerification
	}
	if sess.Stage != domain.StageFee {
		s.mu.Unlock()
		return nil, domain.ErrStageMismatch
	}
	req := sess.Request
	s.mu.Unlock()

	record, err := s.Sessions.Read(ctx, email)
	if err != nil {
		return nil, err
	}

	updated, err := s.settle(ctx, record, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	err = sess.Complete()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// settle performs the debit: precondition check, fee computation, history
// entry, and write-through to both the User Record Store and the Session
// Holder under the configured timeout.
func (s *Service) settle(ctx context.Context, record *domain.UserRecord, req domain.TransferRequest) (*domain.UserRecord, error) {
	if req.Amount.GreaterThan(record.Amount) {
		return nil, domain.ErrInsufficientBalance
	}

	// Fee is a fraction of the total balance at confirmation time. This
	// mirrors the production rule verbatim even though it looks like it
	// should be a fraction of the transfer amount.
	fee := record.Amount.Mul(s.cfg.FeeRate)
	debited := req.Amount.Add(fee)

	entry := domain.NewDebitEntry(time.Now(), debited, req.Name)
	updated := record.WithDebit(debited, entry)

	writeCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	if err := s.Users.Update(writeCtx, &updated); err != nil {
		return nil, &domain.PersistenceFailure{Err: err}
	}
	if err := s.Sessions.Write(writeCtx, &updated); err != nil {
		return nil, &domain.PersistenceFailure{Err: err}
	}
	return &updated, nil
}

// Status reports the current verification snapshot for email.
func (s *Service) Status(email string) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.active[email]
	if !ok {
		return nil, domain.ErrNoVerification
	}
	return snapshot(sess), nil
}

// Abandon discards the in-memory session, as navigating away does. No
// compensating action is taken on the stores.
func (s *Service) Abandon(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, email)
}

func snapshot(sess *domain.VerificationSession) *Status {
	return &Status{
		Stage:             sess.Stage,
		AttemptsRemaining: sess.AttemptsRemaining,
		LastError:         sess.LastError,
	}
}
