package finance

import (
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateJournalEntryRequest represents a request to create a journal entry
type CreateJournalEntryRequest struct {
	EntryNumber string           `json:"entry_number" binding:"required,max=50"`
	EntryDate   string           `json:"entry_date" binding:"required"`
	AccountCode string           `json:"account_code" binding:"required,max=50"`
	AccountName string           `json:"account_name" binding:"max=200"`
	Description string           `json:"description"`
	Debit       *decimal.Decimal `json:"debit"`
	Credit      *decimal.Decimal `json:"credit"`
	Reference   string           `json:"reference" binding:"max=100"`
	Status      string           `json:"status" binding:"omitempty,oneof=draft posted void"`
}

// UpdateJournalEntryRequest represents a partial update of a journal entry
type UpdateJournalEntryRequest struct {
	EntryNumber *string          `json:"entry_number" binding:"omitempty,max=50"`
	EntryDate   *string          `json:"entry_date"`
	AccountCode *string          `json:"account_code" binding:"omitempty,max=50"`
	AccountName *string          `json:"account_name" binding:"omitempty,max=200"`
	Description *string          `json:"description"`
	Debit       *decimal.Decimal `json:"debit"`
	Credit      *decimal.Decimal `json:"credit"`
	Reference   *string          `json:"reference" binding:"omitempty,max=100"`
	Status      *string          `json:"status" binding:"omitempty,oneof=draft posted void"`
}

// JournalEntryListFilter represents the list query of journal entries
type JournalEntryListFilter struct {
	ListQuery
	DateRangeQuery
	Status      string `form:"status" binding:"omitempty,oneof=draft posted void"`
	AccountCode string `form:"account_code"`
}

// JournalEntryResponse represents a journal entry in API responses
type JournalEntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	EntryNumber string          `json:"entry_number"`
	EntryDate   string          `json:"entry_date"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Reference   string          `json:"reference"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToJournalEntryResponse converts a domain JournalEntry to JournalEntryResponse
func ToJournalEntryResponse(e *finance.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:          e.ID,
		EntryNumber: e.EntryNumber,
		EntryDate:   FormatDate(e.EntryDate),
		AccountCode: e.AccountCode,
		AccountName: e.AccountName,
		Description: e.Description,
		Debit:       e.Debit,
		Credit:      e.Credit,
		Reference:   e.Reference,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
