package finance

import (
	"strings"

	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Budget is a spending allowance for a department or category in a fiscal year
type Budget struct {
	shared.BaseEntity
	Name            string
	Department      string
	Category        string
	FiscalYear      int
	Period          string
	OriginalAmount  decimal.Decimal
	RevisedAmount   decimal.Decimal
	ActualAmount    decimal.Decimal
	CommittedAmount decimal.Decimal
	Notes           string

	TotalUtilised      decimal.Decimal
	UtilisationPercent decimal.Decimal
	RemainingAmount    decimal.Decimal
}

// NewBudget creates a budget. The revised amount starts equal to the original.
func NewBudget(name string, fiscalYear int, originalAmount decimal.Decimal) (*Budget, error) {
	b := &Budget{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            strings.TrimSpace(name),
		FiscalYear:      fiscalYear,
		OriginalAmount:  originalAmount,
		RevisedAmount:   originalAmount,
		ActualAmount:    decimal.Zero,
		CommittedAmount: decimal.Zero,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.Recalculate()
	return b, nil
}

// Validate checks required fields and amounts
func (b *Budget) Validate() error {
	if b.Name == "" {
		return shared.NewValidationError("name is required")
	}
	if b.FiscalYear < 1900 || b.FiscalYear > 9999 {
		return shared.NewValidationError("fiscal_year must be a four digit year")
	}
	if b.OriginalAmount.IsNegative() || b.RevisedAmount.IsNegative() {
		return shared.NewValidationError("budget amounts cannot be negative")
	}
	if b.ActualAmount.IsNegative() || b.CommittedAmount.IsNegative() {
		return shared.NewValidationError("actual and committed amounts cannot be negative")
	}
	return nil
}

// Recalculate refreshes utilisation. Utilisation is measured against the
// revised amount.
func (b *Budget) Recalculate() {
	b.TotalUtilised = b.ActualAmount.Add(b.CommittedAmount).Round(2)
	b.UtilisationPercent = calc.Percent(b.TotalUtilised, b.RevisedAmount)
	b.RemainingAmount = b.RevisedAmount.Sub(b.TotalUtilised).Round(2)
}

// IsOverBudget returns true when utilisation exceeds the revised amount
func (b *Budget) IsOverBudget() bool {
	return b.TotalUtilised.GreaterThan(b.RevisedAmount)
}
