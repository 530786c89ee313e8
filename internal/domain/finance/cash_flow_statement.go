package finance

import (
	"time"

	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CashFlowActivities are the raw lines of a cash flow statement.
// Outflows are entered as positive numbers.
type CashFlowActivities struct {
	NetIncome             decimal.Decimal
	Depreciation          decimal.Decimal
	WorkingCapitalChanges decimal.Decimal
	OtherOperating        decimal.Decimal
	CapitalExpenditures   decimal.Decimal
	InvestmentProceeds    decimal.Decimal
	OtherInvesting        decimal.Decimal
	DebtIssued            decimal.Decimal
	DebtRepaid            decimal.Decimal
	DividendsPaid         decimal.Decimal
	OtherFinancing        decimal.Decimal
}

// CashFlowStatement reports actual cash movements over a period
type CashFlowStatement struct {
	shared.BaseEntity
	PeriodStart   time.Time
	PeriodEnd     time.Time
	BeginningCash decimal.Decimal
	CashFlowActivities
	Notes string

	OperatingCashFlow decimal.Decimal
	InvestingCashFlow decimal.Decimal
	FinancingCashFlow decimal.Decimal
	NetChangeInCash   decimal.Decimal
	EndingCash        decimal.Decimal
}

// NewCashFlowStatement creates a statement for a period
func NewCashFlowStatement(start, end time.Time, activities CashFlowActivities) (*CashFlowStatement, error) {
	s := &CashFlowStatement{
		BaseEntity:         shared.NewBaseEntity(),
		PeriodStart:        start,
		PeriodEnd:          end,
		CashFlowActivities: activities,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.Recalculate()
	return s, nil
}

// Validate checks the reporting period
func (s *CashFlowStatement) Validate() error {
	return validatePeriod(s.PeriodStart, s.PeriodEnd)
}

// Recalculate refreshes the section totals and ending cash
func (s *CashFlowStatement) Recalculate() {
	a := s.CashFlowActivities
	s.OperatingCashFlow = total(a.NetIncome, a.Depreciation, a.WorkingCapitalChanges, a.OtherOperating)
	s.InvestingCashFlow = total(a.InvestmentProceeds, a.OtherInvesting, a.CapitalExpenditures.Neg())
	s.FinancingCashFlow = total(a.DebtIssued, a.OtherFinancing, a.DebtRepaid.Neg(), a.DividendsPaid.Neg())
	s.NetChangeInCash = total(s.OperatingCashFlow, s.InvestingCashFlow, s.FinancingCashFlow)
	s.EndingCash = total(s.BeginningCash, s.NetChangeInCash)
}

func validatePeriod(start, end time.Time) error {
	if start.IsZero() {
		return shared.NewValidationError("period_start is required")
	}
	if end.IsZero() {
		return shared.NewValidationError("period_end is required")
	}
	if end.Before(start) {
		return shared.NewValidationError("period_end cannot be before period_start")
	}
	return nil
}
