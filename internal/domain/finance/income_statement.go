package finance

import (
	"time"

	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// IncomeStatement is a profit and loss statement for a period
type IncomeStatement struct {
	shared.BaseEntity
	PeriodStart       time.Time
	PeriodEnd         time.Time
	Revenue           decimal.Decimal
	CostOfGoodsSold   decimal.Decimal
	OperatingExpenses decimal.Decimal
	InterestExpense   decimal.Decimal
	OtherIncome       decimal.Decimal
	TaxExpense        decimal.Decimal
	Notes             string

	GrossProfit     decimal.Decimal
	OperatingIncome decimal.Decimal
	IncomeBeforeTax decimal.Decimal
	NetIncome       decimal.Decimal
	GrossMargin     decimal.Decimal
	OperatingMargin decimal.Decimal
	NetMargin       decimal.Decimal
}

// NewIncomeStatement creates an income statement for a period
func NewIncomeStatement(start, end time.Time, revenue decimal.Decimal) (*IncomeStatement, error) {
	s := &IncomeStatement{
		BaseEntity:  shared.NewBaseEntity(),
		PeriodStart: start,
		PeriodEnd:   end,
		Revenue:     revenue,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.Recalculate()
	return s, nil
}

// Validate checks the period and that revenue is not negative
func (s *IncomeStatement) Validate() error {
	if err := validatePeriod(s.PeriodStart, s.PeriodEnd); err != nil {
		return err
	}
	if s.Revenue.IsNegative() {
		return shared.NewValidationError("revenue cannot be negative")
	}
	return nil
}

// Recalculate refreshes profit lines and margins. Margins are percentages of revenue.
func (s *IncomeStatement) Recalculate() {
	s.GrossProfit = total(s.Revenue, s.CostOfGoodsSold.Neg())
	s.OperatingIncome = total(s.GrossProfit, s.OperatingExpenses.Neg())
	s.IncomeBeforeTax = total(s.OperatingIncome, s.OtherIncome, s.InterestExpense.Neg())
	s.NetIncome = total(s.IncomeBeforeTax, s.TaxExpense.Neg())
	s.GrossMargin = calc.Percent(s.GrossProfit, s.Revenue)
	s.OperatingMargin = calc.Percent(s.OperatingIncome, s.Revenue)
	s.NetMargin = calc.Percent(s.NetIncome, s.Revenue)
}
