package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"200", "200"},
		{"200.50", "200.50"},
		{"€1,234.56", "1234.56"},
		{"12.3.4", "12.34"},
		{"abc", ""},
		{"", ""},
		{"-50", "50"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeAmount(tt.raw))
		})
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("€200.50")
	require.NoError(t, err)
	assert.Equal(t, "200.50", amount.StringFixed(2))

	_, err = ParseAmount("no digits here")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "amount", validationErr.Field)

	_, err = ParseAmount(".")
	require.ErrorAs(t, err, &validationErr)
}

func TestTransferRequestValidate_PurposeOptional(t *testing.T) {
	req := validRequest()
	req.Purpose = ""
	assert.NoError(t, req.Validate())
}

func TestTransferRequestValidate_WhitespaceOnlyRejected(t *testing.T) {
	req := validRequest()
	req.Bank = "   "

	err := req.Validate()

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "bank", validationErr.Field)
}
