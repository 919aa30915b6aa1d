package domain

import "fmt"

// Stage is a step of the transfer verification sequence.
type Stage string

const (
	StageForm    Stage = "form"
	StageCode    Stage = "code-challenge"
	StageAccess  Stage = "access-challenge"
	StageFee     Stage = "fee-confirmation"
	StageSuccess Stage = "success"
)

// DefaultMaxAttempts is the per-stage attempt budget when none is configured.
const DefaultMaxAttempts = 3

// VerificationSession drives one transfer attempt through the fixed challenge
// sequence form -> code-challenge -> access-challenge -> fee-confirmation ->
// success. Each challenge stage carries its own attempt budget; exhausting it
// resets the whole session back to the form, discarding the pending request.
//
// The session is transient: it lives in memory for the duration of one
// transfer attempt and is discarded when the user abandons the flow.
type VerificationSession struct {
	Stage             Stage
	AttemptsRemaining int
	LastError         string
	Request           TransferRequest

	maxAttempts int
}

// NewVerificationSession returns a session at the form stage. maxAttempts
// values below 1 fall back to DefaultMaxAttempts.
func NewVerificationSession(maxAttempts int) *VerificationSession {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &VerificationSession{
		Stage:             StageForm,
		AttemptsRemaining: maxAttempts,
		maxAttempts:       maxAttempts,
	}
}

// Begin admits a transfer request and moves the session to the code
// challenge. A validation failure leaves the session at the form stage.
// Beginning again from any stage starts the attempt over.
func (s *VerificationSession) Begin(req TransferRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	s.Request = req
	s.Stage = StageCode
	s.AttemptsRemaining = s.maxAttempts
	s.LastError = ""
	return nil
}

// SubmitCode checks the emailed code at the code-challenge stage.
func (s *VerificationSession) SubmitCode(code, expected string) error {
	return s.challenge(StageCode, StageAccess, code, expected, "Incorrect code")
}

// SubmitAccessDetails checks the access string at the access-challenge stage.
func (s *VerificationSession) SubmitAccessDetails(value, expected string) error {
	return s.challenge(StageAccess, StageFee, value, expected, "Incorrect access details")
}

// Complete marks the session settled. Only valid at fee-confirmation.
func (s *VerificationSession) Complete() error {
	if s.Stage != StageFee {
		return ErrStageMismatch
	}
	s.Stage = StageSuccess
	s.LastError = ""
	return nil
}

// challenge applies the bounded-retry policy shared by both challenge
// stages: wrong submissions burn attempts at that stage only, and exhausting
// the budget throws the entire session back to the form with a fresh budget.
// A correct submission advances and restores the budget.
func (s *VerificationSession) challenge(at, next Stage, got, want, label string) error {
	if s.Stage != at {
		return ErrStageMismatch
	}

	if got != want {
		s.AttemptsRemaining--
		if s.AttemptsRemaining <= 0 {
			s.reset()
			return &LockoutError{Stage: at}
		}
		s.LastError = fmt.Sprintf("%s. %d attempt(s) left.", label, s.AttemptsRemaining)
		return &ChallengeFailure{Stage: at, AttemptsLeft: s.AttemptsRemaining, Message: s.LastError}
	}

	s.Stage = next
	s.AttemptsRemaining = s.maxAttempts
	s.LastError = ""
	return nil
}

// reset discards all progress: back to the form, full attempt budget, no
// pending request.
func (s *VerificationSession) reset() {
	s.Stage = StageForm
	s.AttemptsRemaining = s.maxAttempts
	s.LastError = ""
	s.Request = TransferRequest{}
}
