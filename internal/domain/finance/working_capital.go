package finance

import (
	"time"

	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// WorkingCapitalLines are the current asset and liability lines
type WorkingCapitalLines struct {
	Cash                    decimal.Decimal
	AccountsReceivable      decimal.Decimal
	Inventory               decimal.Decimal
	OtherCurrentAssets      decimal.Decimal
	AccountsPayable         decimal.Decimal
	ShortTermDebt           decimal.Decimal
	AccruedLiabilities      decimal.Decimal
	OtherCurrentLiabilities decimal.Decimal
}

// WorkingCapital is a liquidity snapshot at a date
type WorkingCapital struct {
	shared.BaseEntity
	AsOfDate time.Time
	WorkingCapitalLines
	Notes string

	TotalCurrentAssets      decimal.Decimal
	TotalCurrentLiabilities decimal.Decimal
	NetWorkingCapital       decimal.Decimal
	CurrentRatio            decimal.Decimal
	QuickRatio              decimal.Decimal
}

// NewWorkingCapital creates a snapshot for the given date
func NewWorkingCapital(asOf time.Time, lines WorkingCapitalLines) (*WorkingCapital, error) {
	wc := &WorkingCapital{
		BaseEntity:          shared.NewBaseEntity(),
		AsOfDate:            asOf,
		WorkingCapitalLines: lines,
	}
	if err := wc.Validate(); err != nil {
		return nil, err
	}
	wc.Recalculate()
	return wc, nil
}

// Validate checks required fields
func (wc *WorkingCapital) Validate() error {
	if wc.AsOfDate.IsZero() {
		return shared.NewValidationError("as_of_date is required")
	}
	return nil
}

// Recalculate refreshes totals and ratios. The quick ratio excludes inventory.
func (wc *WorkingCapital) Recalculate() {
	l := wc.WorkingCapitalLines
	wc.TotalCurrentAssets = total(l.Cash, l.AccountsReceivable, l.Inventory, l.OtherCurrentAssets)
	wc.TotalCurrentLiabilities = total(l.AccountsPayable, l.ShortTermDebt, l.AccruedLiabilities, l.OtherCurrentLiabilities)
	wc.NetWorkingCapital = total(wc.TotalCurrentAssets, wc.TotalCurrentLiabilities.Neg())
	wc.CurrentRatio = calc.Ratio(wc.TotalCurrentAssets, wc.TotalCurrentLiabilities)
	wc.QuickRatio = calc.Ratio(wc.TotalCurrentAssets.Sub(l.Inventory), wc.TotalCurrentLiabilities)
}
