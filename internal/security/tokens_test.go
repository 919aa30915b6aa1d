package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenProvider_IssueAndVerify(t *testing.T) {
	provider := NewTokenProvider("test-secret", "holtback", time.Hour)

	token, expiresAt, err := provider.Issue("user@example.com")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	email, err := provider.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestTokenProvider_WrongSecret(t *testing.T) {
	issuer := NewTokenProvider("secret-a", "holtback", time.Hour)
	verifier := NewTokenProvider("secret-b", "holtback", time.Hour)

	token, _, err := issuer.Issue("user@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenProvider_WrongIssuer(t *testing.T) {
	issuer := NewTokenProvider("test-secret", "someone-else", time.Hour)
	verifier := NewTokenProvider("test-secret", "holtback", time.Hour)

	token, _, err := issuer.Issue("user@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenProvider_Expired(t *testing.T) {
	provider := NewTokenProvider("test-secret", "holtback", -time.Minute)

	token, _, err := provider.Issue("user@example.com")
	require.NoError(t, err)

	_, err = provider.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenProvider_Garbage(t *testing.T) {
	provider := NewTokenProvider("test-secret", "holtback", time.Hour)

	_, err := provider.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
