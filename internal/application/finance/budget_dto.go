package finance

import (
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest represents a request to create a budget.
// RevisedAmount defaults to OriginalAmount.
type CreateBudgetRequest struct {
	Name            string           `json:"name" binding:"required,max=200"`
	Department      string           `json:"department" binding:"max=100"`
	Category        string           `json:"category" binding:"max=100"`
	FiscalYear      int              `json:"fiscal_year" binding:"required,min=1900,max=9999"`
	Period          string           `json:"period" binding:"max=20"`
	OriginalAmount  *decimal.Decimal `json:"original_amount" binding:"required"`
	RevisedAmount   *decimal.Decimal `json:"revised_amount"`
	ActualAmount    *decimal.Decimal `json:"actual_amount"`
	CommittedAmount *decimal.Decimal `json:"committed_amount"`
	Notes           string           `json:"notes"`
}

// UpdateBudgetRequest represents a partial update of a budget
type UpdateBudgetRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=200"`
	Department      *string          `json:"department" binding:"omitempty,max=100"`
	Category        *string          `json:"category" binding:"omitempty,max=100"`
	FiscalYear      *int             `json:"fiscal_year" binding:"omitempty,min=1900,max=9999"`
	Period          *string          `json:"period" binding:"omitempty,max=20"`
	OriginalAmount  *decimal.Decimal `json:"original_amount"`
	RevisedAmount   *decimal.Decimal `json:"revised_amount"`
	ActualAmount    *decimal.Decimal `json:"actual_amount"`
	CommittedAmount *decimal.Decimal `json:"committed_amount"`
	Notes           *string          `json:"notes"`
}

// BudgetListFilter represents the list query of budgets
type BudgetListFilter struct {
	ListQuery
	FiscalYear *int   `form:"fiscal_year"`
	Department string `form:"department"`
	Category   string `form:"category"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Department         string          `json:"department"`
	Category           string          `json:"category"`
	FiscalYear         int             `json:"fiscal_year"`
	Period             string          `json:"period"`
	OriginalAmount     decimal.Decimal `json:"original_amount"`
	RevisedAmount      decimal.Decimal `json:"revised_amount"`
	ActualAmount       decimal.Decimal `json:"actual_amount"`
	CommittedAmount    decimal.Decimal `json:"committed_amount"`
	TotalUtilised      decimal.Decimal `json:"total_utilised"`
	UtilisationPercent decimal.Decimal `json:"utilisation_percent"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	OverBudget         bool            `json:"over_budget"`
	Notes              string          `json:"notes"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToBudgetResponse converts a domain Budget to BudgetResponse
func ToBudgetResponse(b *finance.Budget) BudgetResponse {
	return BudgetResponse{
		ID:                 b.ID,
		Name:               b.Name,
		Department:         b.Department,
		Category:           b.Category,
		FiscalYear:         b.FiscalYear,
		Period:             b.Period,
		OriginalAmount:     b.OriginalAmount,
		RevisedAmount:      b.RevisedAmount,
		ActualAmount:       b.ActualAmount,
		CommittedAmount:    b.CommittedAmount,
		TotalUtilised:      b.TotalUtilised,
		UtilisationPercent: b.UtilisationPercent,
		RemainingAmount:    b.RemainingAmount,
		OverBudget:         b.IsOverBudget(),
		Notes:              b.Notes,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
