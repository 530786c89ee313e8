package calc

import "github.com/shopspring/decimal"

// DefaultCashShortfallThreshold is the ending cash position below which a
// forecast period is flagged
var DefaultCashShortfallThreshold = decimal.NewFromInt(10000)

// Receipts are the cash inflows of a forecast period
type Receipts struct {
	CashSales                  decimal.Decimal
	CollectionsFromReceivables decimal.Decimal
	LoanProceeds               decimal.Decimal
	AssetSales                 decimal.Decimal
	InvestmentIncome           decimal.Decimal
	OtherReceipts              decimal.Decimal
}

// Payments are the cash outflows of a forecast period
type Payments struct {
	InventoryPurchases  decimal.Decimal
	Payroll             decimal.Decimal
	Rent                decimal.Decimal
	Utilities           decimal.Decimal
	LoanPayments        decimal.Decimal
	TaxPayments         decimal.Decimal
	CapitalExpenditures decimal.Decimal
	OperatingExpenses   decimal.Decimal
	OtherPayments       decimal.Decimal
}

// CalculateTotalReceipts sums the six receipt fields
func CalculateTotalReceipts(r Receipts) decimal.Decimal {
	return sum(
		r.CashSales,
		r.CollectionsFromReceivables,
		r.LoanProceeds,
		r.AssetSales,
		r.InvestmentIncome,
		r.OtherReceipts,
	).Round(moneyPlaces)
}

// CalculateTotalCashPayments sums the nine payment fields
func CalculateTotalCashPayments(p Payments) decimal.Decimal {
	return sum(
		p.InventoryPurchases,
		p.Payroll,
		p.Rent,
		p.Utilities,
		p.LoanPayments,
		p.TaxPayments,
		p.CapitalExpenditures,
		p.OperatingExpenses,
		p.OtherPayments,
	).Round(moneyPlaces)
}

// CalculateNetCashChange returns receipts - payments rounded to cents
func CalculateNetCashChange(receipts, payments decimal.Decimal) decimal.Decimal {
	return receipts.Sub(payments).Round(moneyPlaces)
}

// CalculateMonthEndingCashPosition returns beginning + netChange rounded to cents
func CalculateMonthEndingCashPosition(beginningBalance, netChange decimal.Decimal) decimal.Decimal {
	return beginningBalance.Add(netChange).Round(moneyPlaces)
}

// HasCashShortfall reports whether cashPosition is strictly below the default threshold
func HasCashShortfall(cashPosition decimal.Decimal) bool {
	return HasCashShortfallBelow(cashPosition, DefaultCashShortfallThreshold)
}

// HasCashShortfallBelow reports whether cashPosition is strictly below threshold
func HasCashShortfallBelow(cashPosition, threshold decimal.Decimal) bool {
	return cashPosition.LessThan(threshold)
}

func sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
