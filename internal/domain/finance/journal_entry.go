package finance

import (
	"strings"
	"time"

	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// JournalStatus represents the posting state of a journal entry
type JournalStatus string

const (
	JournalStatusDraft  JournalStatus = "draft"
	JournalStatusPosted JournalStatus = "posted"
	JournalStatusVoid   JournalStatus = "void"
)

// IsValid checks if the status is a valid JournalStatus
func (s JournalStatus) IsValid() bool {
	switch s {
	case JournalStatusDraft, JournalStatusPosted, JournalStatusVoid:
		return true
	}
	return false
}

// String returns the string representation of JournalStatus
func (s JournalStatus) String() string {
	return string(s)
}

// JournalEntry is a single line of the general journal
type JournalEntry struct {
	shared.BaseEntity
	EntryNumber string
	EntryDate   time.Time
	AccountCode string
	AccountName string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Reference   string
	Status      JournalStatus
}

// NewJournalEntry creates a draft journal entry
func NewJournalEntry(entryNumber, accountCode string, entryDate time.Time) *JournalEntry {
	return &JournalEntry{
		BaseEntity:  shared.NewBaseEntity(),
		EntryNumber: strings.TrimSpace(entryNumber),
		AccountCode: strings.TrimSpace(accountCode),
		EntryDate:   entryDate,
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
		Status:      JournalStatusDraft,
	}
}

// Validate checks required fields and the debit/credit rule:
// both sides non-negative and exactly one of them positive.
func (j *JournalEntry) Validate() error {
	if j.EntryNumber == "" {
		return shared.NewValidationError("entry_number is required")
	}
	if j.AccountCode == "" {
		return shared.NewValidationError("account_code is required")
	}
	if j.EntryDate.IsZero() {
		return shared.NewValidationError("entry_date is required")
	}
	if !j.Status.IsValid() {
		return shared.NewValidationError("status must be one of draft, posted, void")
	}
	if j.Debit.IsNegative() || j.Credit.IsNegative() {
		return shared.NewValidationError("debit and credit cannot be negative")
	}
	if j.Debit.IsPositive() == j.Credit.IsPositive() {
		return shared.NewValidationError("exactly one of debit or credit must be greater than zero")
	}
	return nil
}

// Amount returns the signed amount, debit positive
func (j *JournalEntry) Amount() decimal.Decimal {
	return j.Debit.Sub(j.Credit)
}
