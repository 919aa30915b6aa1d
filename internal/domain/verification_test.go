package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCode   = "123456"
	testAccess = "ACCESS123"
)

func validRequest() TransferRequest {
	return TransferRequest{
		Name:          "Jane Receiver",
		Bank:          "First Bank",
		AccountNumber: "12345678",
		RoutingNumber: "87654321",
		Amount:        decimal.NewFromInt(200),
	}
}

func TestBegin_ValidRequestStartsCodeChallenge(t *testing.T) {
	sess := NewVerificationSession(3)

	err := sess.Begin(validRequest())

	require.NoError(t, err)
	assert.Equal(t, StageCode, sess.Stage)
	assert.Equal(t, 3, sess.AttemptsRemaining)
	assert.Empty(t, sess.LastError)
}

func TestBegin_InvalidRequestStaysAtForm(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TransferRequest)
	}{
		{"empty name", func(r *TransferRequest) { r.Name = "" }},
		{"empty bank", func(r *TransferRequest) { r.Bank = "" }},
		{"empty account number", func(r *TransferRequest) { r.AccountNumber = "" }},
		{"empty routing number", func(r *TransferRequest) { r.RoutingNumber = "" }},
		{"zero amount", func(r *TransferRequest) { r.Amount = decimal.Zero }},
		{"negative amount", func(r *TransferRequest) { r.Amount = decimal.NewFromInt(-5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewVerificationSession(3)
			req := validRequest()
			tt.mutate(&req)

			err := sess.Begin(req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, StageForm, sess.Stage)
		})
	}
}

func TestSubmitCode_CorrectAdvancesAndRestoresAttempts(t *testing.T) {
	sess := NewVerificationSession(3)
	require.NoError(t, sess.Begin(validRequest()))

	// Two wrong submissions followed by a correct one must advance normally
	err := sess.SubmitCode("000000", testCode)
	var challengeErr *ChallengeFailure
	require.ErrorAs(t, err, &challengeErr)
	assert.Equal(t, 2, challengeErr.AttemptsLeft)
	assert.Equal(t, "Incorrect code. 2 attempt(s) left.", sess.LastError)

	err = sess.SubmitCode("111111", testCode)
	require.ErrorAs(t, err, &challengeErr)
	assert.Equal(t, 1, challengeErr.AttemptsLeft)

	require.NoError(t, sess.SubmitCode(testCode, testCode))
	assert.Equal(t, StageAccess, sess.Stage)
	assert.Equal(t, 3, sess.AttemptsRemaining)
	assert.Empty(t, sess.LastError)
}

func TestSubmitCode_ThreeWrongSubmissionsLockOut(t *testing.T) {
	sess := NewVerificationSession(3)
	require.NoError(t, sess.Begin(validRequest()))

	var err error
	for i := 0; i < 2; i++ {
		err = sess.SubmitCode("000000", testCode)
		var challengeErr *ChallengeFailure
		require.ErrorAs(t, err, &challengeErr)
	}

	err = sess.SubmitCode("000000", testCode)

	var lockoutErr *LockoutError
	require.ErrorAs(t, err, &lockoutErr)
	assert.Equal(t, StageCode, lockoutErr.Stage)
	assert.Equal(t, StageForm, sess.Stage)
	assert.Equal(t, 3, sess.AttemptsRemaining)
	assert.Empty(t, sess.LastError)
	assert.Zero(t, sess.Request, "lockout must discard the pending request")
}

func TestSubmitAccessDetails_SamePolicyAsCodeChallenge(t *testing.T) {
	sess := NewVerificationSession(3)
	require.NoError(t, sess.Begin(validRequest()))
	require.NoError(t, sess.SubmitCode(testCode, testCode))

	err := sess.SubmitAccessDetails("WRONG", testAccess)
	var challengeErr *ChallengeFailure
	require.ErrorAs(t, err, &challengeErr)
	assert.Equal(t, "Incorrect access details. 2 attempt(s) left.", sess.LastError)

	require.NoError(t, sess.SubmitAccessDetails(testAccess, testAccess))
	assert.Equal(t, StageFee, sess.Stage)
	assert.Equal(t, 3, sess.AttemptsRemaining)
}

func TestSubmitAccessDetails_LockoutDiscardsCodeChallengeProgress(t *testing.T) {
	sess := NewVerificationSession(3)
	require.NoError(t, sess.Begin(validRequest()))
	require.NoError(t, sess.SubmitCode(testCode, testCode))

	for i := 0; i < 2; i++ {
		_ = sess.SubmitAccessDetails("WRONG", testAccess)
	}
	err := sess.SubmitAccessDetails("WRONG", testAccess)

	var lockoutErr *LockoutError
	require.ErrorAs(t, err, &lockoutErr)
	// The reset goes all the way back to the form, not to the failed stage
	assert.Equal(t, StageForm, sess.Stage)
}

func TestChallenge_WrongStageRejected(t *testing.T) {
	sess := NewVerificationSession(3)
	require.NoError(t, sess.Begin(validRequest()))

	err := sess.SubmitAccessDetails(testAccess, testAccess)
	assert.ErrorIs(t, err, ErrStageMismatch)

	err = sess.Complete()
	assert.ErrorIs(t, err, ErrStageMismatch)
}

func TestComplete_OnlyFromFeeConfirmation(t *testing.T) {
	sess := NewVerificationSession(3)
	require.NoError(t, sess.Begin(validRequest()))
	require.NoError(t, sess.SubmitCode(testCode, testCode))
	require.NoError(t, sess.SubmitAccessDetails(testAccess, testAccess))

	require.NoError(t, sess.Complete())
	assert.Equal(t, StageSuccess, sess.Stage)
}

func TestNewVerificationSession_ClampsAttemptBudget(t *testing.T) {
	sess := NewVerificationSession(0)
	assert.Equal(t, DefaultMaxAttempts, sess.AttemptsRemaining)
}
