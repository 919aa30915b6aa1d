package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType represents the type of history entry
type EntryType string

const (
	EntryTypeDebit EntryType = "debit"
)

// DepositStatus represents the review state of a deposit
type DepositStatus string

const (
	DepositStatusPending  DepositStatus = "pending"
	DepositStatusApproved DepositStatus = "approved"
)

// DepositTypeMobileCheck is the deposit type created by the mobile check flow.
const DepositTypeMobileCheck = "mobile-check"

// DefaultAccountNumber is assigned to every new account at signup.
const DefaultAccountNumber int64 = 123456789000

// UserRecord is the authoritative per-customer record held in the User Record
// Store and mirrored into the Session Holder for the logged-in user. Updates
// are value-based: mutating operations return a new record via WithDebit or
// WithDeposit instead of editing in place.
//
// Profile attributes beyond Email, Amount, History and Deposits are opaque
// passengers to the transfer and deposit flows.
type UserRecord struct {
	Email          string          `json:"email"`
	FirstName      string          `json:"firstName"`
	MiddleName     string          `json:"middleName,omitempty"`
	LastName       string          `json:"lastName"`
	SSN            string          `json:"ssn"`
	Address        string          `json:"address"`
	Gender         string          `json:"gender"`
	DOB            string          `json:"dob"`
	MaritalStatus  string          `json:"maritalStatus"`
	AccountType    string          `json:"accountType"`
	AccountSubType string          `json:"accountSubType"`
	AccountNumber  int64           `json:"accountNumber"`
	PINHash        string          `json:"pinHash"`
	PasswordHash   string          `json:"passwordHash"`
	ProfilePicture string          `json:"profilePicture,omitempty"`
	Signature      string          `json:"signature,omitempty"`
	FrontID        string          `json:"frontId,omitempty"`
	BackID         string          `json:"backId,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	History        []TransactionEntry `json:"history"`
	Deposits       []DepositEntry     `json:"deposits"`
}

// WithDebit returns a copy of the record with the balance reduced by debited
// and entry prepended to the history. The receiver is not modified and its
// history slice is not aliased.
func (u UserRecord) WithDebit(debited decimal.Decimal, entry TransactionEntry) UserRecord {
	updated := u
	updated.Amount = u.Amount.Sub(debited)

	history := make([]TransactionEntry, 0, len(u.History)+1)
	history = append(history, entry)
	history = append(history, u.History...)
	updated.History = history

	return updated
}

// WithDeposit returns a copy of the record with dep appended to the deposit
// list. The receiver is not modified.
func (u UserRecord) WithDeposit(dep DepositEntry) UserRecord {
	updated := u

	deposits := make([]DepositEntry, 0, len(u.Deposits)+1)
	deposits = append(deposits, u.Deposits...)
	deposits = append(deposits, dep)
	updated.Deposits = deposits

	return updated
}

// TransactionEntry is a single history line. Created exactly once per
// successful settlement, prepended to the history, never mutated afterwards.
type TransactionEntry struct {
	Date            string          `json:"date"` // YYYY-MM-DD
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Type            EntryType       `json:"type"`
	FormattedAmount string          `json:"formattedAmount"`
}

// NewDebitEntry builds the history entry for a settled transfer. amount is
// the total debited (transfer amount plus fee); recipient is the receiver's
// full name as entered on the form.
func NewDebitEntry(date time.Time, amount decimal.Decimal, recipient string) TransactionEntry {
	return TransactionEntry{
		Date:            date.Format("2006-01-02"),
		Amount:          amount,
		Description:     "Transfer to " + recipient,
		Type:            EntryTypeDebit,
		FormattedAmount: "€" + amount.StringFixed(2),
	}
}

// DepositEntry is a single deposit created by the mobile check flow.
type DepositEntry struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Status DepositStatus   `json:"status"`
	Type   string          `json:"type"`
	Image  string          `json:"image,omitempty"`
}

// NewMobileDeposit builds a pending mobile check deposit. image is the
// uploaded check image URL.
func NewMobileDeposit(date time.Time, amount decimal.Decimal, image string) DepositEntry {
	return DepositEntry{
		ID:     "DEP" + uuid.NewString(),
		Amount: amount,
		Date:   date.Format("Jan 2, 2006"),
		Status: DepositStatusPending,
		Type:   DepositTypeMobileCheck,
		Image:  image,
	}
}
