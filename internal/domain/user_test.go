package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDebitEntry(t *testing.T) {
	date := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	entry := NewDebitEntry(date, decimal.NewFromFloat(300), "Jane Receiver")

	assert.Equal(t, "2026-03-15", entry.Date)
	assert.Equal(t, "Transfer to Jane Receiver", entry.Description)
	assert.Equal(t, EntryTypeDebit, entry.Type)
	assert.Equal(t, "€300.00", entry.FormattedAmount)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(300)))
}

func TestWithDebit_PrependsEntryAndReducesBalance(t *testing.T) {
	existing := NewDebitEntry(time.Now(), decimal.NewFromInt(50), "Old Recipient")
	record := UserRecord{
		Email:   "user@example.com",
		Amount:  decimal.NewFromInt(1000),
		History: []TransactionEntry{existing},
	}

	entry := NewDebitEntry(time.Now(), decimal.NewFromInt(300), "Jane Receiver")
	updated := record.WithDebit(decimal.NewFromInt(300), entry)

	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(700)))
	require.Len(t, updated.History, 2)
	assert.Equal(t, "Transfer to Jane Receiver", updated.History[0].Description)
	assert.Equal(t, "Transfer to Old Recipient", updated.History[1].Description)

	// The receiver must be untouched
	assert.True(t, record.Amount.Equal(decimal.NewFromInt(1000)))
	require.Len(t, record.History, 1)
}

func TestWithDebit_DoesNotAliasHistory(t *testing.T) {
	record := UserRecord{
		Email:  "user@example.com",
		Amount: decimal.NewFromInt(1000),
	}

	first := record.WithDebit(decimal.NewFromInt(10), NewDebitEntry(time.Now(), decimal.NewFromInt(10), "A"))
	second := first.WithDebit(decimal.NewFromInt(10), NewDebitEntry(time.Now(), decimal.NewFromInt(10), "B"))

	assert.Equal(t, "Transfer to A", first.History[0].Description)
	assert.Equal(t, "Transfer to B", second.History[0].Description)
	assert.Equal(t, "Transfer to A", second.History[1].Description)
}

func TestWithDeposit_AppendsInOrder(t *testing.T) {
	record := UserRecord{Email: "user@example.com"}

	first := NewMobileDeposit(time.Now(), decimal.NewFromInt(100), "https://img/1.png")
	second := NewMobileDeposit(time.Now(), decimal.NewFromInt(200), "https://img/2.png")

	updated := record.WithDeposit(first).WithDeposit(second)

	require.Len(t, updated.Deposits, 2)
	assert.Equal(t, first.ID, updated.Deposits[0].ID)
	assert.Equal(t, second.ID, updated.Deposits[1].ID)
	assert.Empty(t, record.Deposits)
}

func TestNewMobileDeposit(t *testing.T) {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	dep := NewMobileDeposit(date, decimal.NewFromInt(150), "https://img/check.png")

	assert.True(t, strings.HasPrefix(dep.ID, "DEP"))
	assert.Equal(t, "Jan 5, 2026", dep.Date)
	assert.Equal(t, DepositStatusPending, dep.Status)
	assert.Equal(t, DepositTypeMobileCheck, dep.Type)
	assert.Equal(t, "https://img/check.png", dep.Image)
}
