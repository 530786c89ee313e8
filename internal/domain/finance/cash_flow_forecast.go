package finance

import (
	"strings"
	"time"

	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CashFlowForecast projects cash in and out of one period
type CashFlowForecast struct {
	shared.BaseEntity
	Period           string
	ForecastDate     *time.Time
	BeginningBalance decimal.Decimal
	calc.Receipts
	calc.Payments
	Notes string

	TotalReceipts      decimal.Decimal
	TotalPayments      decimal.Decimal
	NetCashChange      decimal.Decimal
	EndingCashPosition decimal.Decimal
	CashShortfall      bool
}

// NewCashFlowForecast creates a forecast for a period
func NewCashFlowForecast(period string, beginningBalance decimal.Decimal) (*CashFlowForecast, error) {
	f := &CashFlowForecast{
		BaseEntity:       shared.NewBaseEntity(),
		Period:           strings.TrimSpace(period),
		BeginningBalance: beginningBalance,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.Recalculate(calc.DefaultCashShortfallThreshold)
	return f, nil
}

// Validate checks required fields
func (f *CashFlowForecast) Validate() error {
	if f.Period == "" {
		return shared.NewValidationError("period is required")
	}
	if len(f.Period) > 20 {
		return shared.NewValidationError("period cannot exceed 20 characters")
	}
	return nil
}

// Recalculate refreshes totals and the shortfall flag against threshold
func (f *CashFlowForecast) Recalculate(threshold decimal.Decimal) {
	f.TotalReceipts = calc.CalculateTotalReceipts(f.Receipts)
	f.TotalPayments = calc.CalculateTotalCashPayments(f.Payments)
	f.NetCashChange = calc.CalculateNetCashChange(f.TotalReceipts, f.TotalPayments)
	f.EndingCashPosition = calc.CalculateMonthEndingCashPosition(f.BeginningBalance, f.NetCashChange)
	f.CashShortfall = calc.HasCashShortfallBelow(f.EndingCashPosition, threshold)
}
