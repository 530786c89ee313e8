package finance

import (
	"time"

	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BalanceSheetLines are the raw line items of a balance sheet
type BalanceSheetLines struct {
	Cash                    decimal.Decimal
	AccountsReceivable      decimal.Decimal
	Inventory               decimal.Decimal
	PrepaidExpenses         decimal.Decimal
	OtherCurrentAssets      decimal.Decimal
	FixedAssets             decimal.Decimal
	OtherAssets             decimal.Decimal
	AccountsPayable         decimal.Decimal
	ShortTermDebt           decimal.Decimal
	AccruedLiabilities      decimal.Decimal
	OtherCurrentLiabilities decimal.Decimal
	LongTermDebt            decimal.Decimal
	OtherLiabilities        decimal.Decimal
	OwnerEquity             decimal.Decimal
	RetainedEarnings        decimal.Decimal
}

// BalanceSheet is a statement of financial position at a date
type BalanceSheet struct {
	shared.BaseEntity
	AsOfDate time.Time
	BalanceSheetLines
	Notes string

	TotalCurrentAssets      decimal.Decimal
	TotalAssets             decimal.Decimal
	TotalCurrentLiabilities decimal.Decimal
	TotalLiabilities        decimal.Decimal
	TotalEquity             decimal.Decimal
	IsBalanced              bool
}

// NewBalanceSheet creates a balance sheet for the given date
func NewBalanceSheet(asOf time.Time, lines BalanceSheetLines) (*BalanceSheet, error) {
	bs := &BalanceSheet{
		BaseEntity:        shared.NewBaseEntity(),
		AsOfDate:          asOf,
		BalanceSheetLines: lines,
	}
	if err := bs.Validate(); err != nil {
		return nil, err
	}
	bs.Recalculate()
	return bs, nil
}

// Validate checks required fields
func (bs *BalanceSheet) Validate() error {
	if bs.AsOfDate.IsZero() {
		return shared.NewValidationError("as_of_date is required")
	}
	return nil
}

// Recalculate refreshes the totals and the balance check
func (bs *BalanceSheet) Recalculate() {
	l := bs.BalanceSheetLines
	bs.TotalCurrentAssets = total(l.Cash, l.AccountsReceivable, l.Inventory, l.PrepaidExpenses, l.OtherCurrentAssets)
	bs.TotalAssets = total(bs.TotalCurrentAssets, l.FixedAssets, l.OtherAssets)
	bs.TotalCurrentLiabilities = total(l.AccountsPayable, l.ShortTermDebt, l.AccruedLiabilities, l.OtherCurrentLiabilities)
	bs.TotalLiabilities = total(bs.TotalCurrentLiabilities, l.LongTermDebt, l.OtherLiabilities)
	bs.TotalEquity = total(l.OwnerEquity, l.RetainedEarnings)
	bs.IsBalanced = bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity))
}

func total(values ...decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Round(2)
}
