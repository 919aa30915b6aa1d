package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransferRequest holds the recipient details and amount collected by the
// transfer form. It is transient and never persisted on its own.
type TransferRequest struct {
	Name          string          `json:"name"`
	Bank          string          `json:"bank"`
	AccountNumber string          `json:"accountNumber"`
	RoutingNumber string          `json:"routingNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Purpose       string          `json:"purpose,omitempty"`
}

// Validate checks the form admission rules: every required field non-empty
// and a strictly positive amount. Purpose is optional.
func (r *TransferRequest) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", r.Name},
		{"bank", r.Bank},
		{"accountNumber", r.AccountNumber},
		{"routingNumber", r.RoutingNumber},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Reason: "must not be empty"}
		}
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}

	return nil
}

// SanitizeAmount reduces raw user input to digits and a single decimal
// separator, matching the form-level input filter. Everything else is
// dropped; a second decimal point and anything after a disallowed rune is
// simply omitted, not rejected.
func SanitizeAmount(raw string) string {
	var b strings.Builder
	seenPoint := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount sanitizes and parses a raw amount string from the form.
// Returns a ValidationError if nothing parseable remains.
func ParseAmount(raw string) (decimal.Decimal, error) {
	clean := SanitizeAmount(raw)
	if clean == "" || clean == "." {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	return amount, nil
}
