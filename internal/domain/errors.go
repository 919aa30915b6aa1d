package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across usecases; the HTTP adapter maps them to status codes.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUserNotFound        = errors.New("user record not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNoSession           = errors.New("no active session")
	ErrNoVerification      = errors.New("no transfer verification in progress")
	ErrStageMismatch       = errors.New("operation not valid at the current verification stage")
)

// ValidationError reports a malformed or missing input field.
// It is surfaced inline and never causes a state transition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ChallengeFailure reports a wrong code or access value at a challenge stage.
// AttemptsLeft is the remaining attempt budget after this failure.
type ChallengeFailure struct {
	Stage        Stage
	AttemptsLeft int
	Message      string
}

func (e *ChallengeFailure) Error() string {
	return e.Message
}

// LockoutError is the outcome of exhausting the attempt budget at a challenge
// stage. The verification session has already been reset to the form stage
// when this is returned; all progress is discarded.
type LockoutError struct {
	Stage Stage
}

func (e *LockoutError) Error() string {
	return "account on hold due to failed verification attempts"
}

// PersistenceFailure wraps a store write that did not complete. Settlement
// stays retryable at the fee-confirmation stage when this is returned.
type PersistenceFailure struct {
	Err error
}

func (e *PersistenceFailure) Error() string {
	return fmt.Sprintf("failed to persist user record: %v", e.Err)
}

func (e *PersistenceFailure) Unwrap() error {
	return e.Err
}
