package finance

import (
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ForecastLines are the optional receipt and payment lines of a forecast.
// Blank or non-numeric lines count as zero. On update an omitted line keeps
// the stored value.
type ForecastLines struct {
	CashSales                  *calc.Amount `json:"cash_sales"`
	CollectionsFromReceivables *calc.Amount `json:"collections_from_receivables"`
	LoanProceeds               *calc.Amount `json:"loan_proceeds"`
	AssetSales                 *calc.Amount `json:"asset_sales"`
	InvestmentIncome           *calc.Amount `json:"investment_income"`
	OtherReceipts              *calc.Amount `json:"other_receipts"`

	InventoryPurchases  *calc.Amount `json:"inventory_purchases"`
	Payroll             *calc.Amount `json:"payroll"`
	Rent                *calc.Amount `json:"rent"`
	Utilities           *calc.Amount `json:"utilities"`
	LoanPayments        *calc.Amount `json:"loan_payments"`
	TaxPayments         *calc.Amount `json:"tax_payments"`
	CapitalExpenditures *calc.Amount `json:"capital_expenditures"`
	OperatingExpenses   *calc.Amount `json:"operating_expenses"`
	OtherPayments       *calc.Amount `json:"other_payments"`
}

func (l ForecastLines) apply(r *calc.Receipts, p *calc.Payments) {
	setAmount(&r.CashSales, l.CashSales)
	setAmount(&r.CollectionsFromReceivables, l.CollectionsFromReceivables)
	setAmount(&r.LoanProceeds, l.LoanProceeds)
	setAmount(&r.AssetSales, l.AssetSales)
	setAmount(&r.InvestmentIncome, l.InvestmentIncome)
	setAmount(&r.OtherReceipts, l.OtherReceipts)

	setAmount(&p.InventoryPurchases, l.InventoryPurchases)
	setAmount(&p.Payroll, l.Payroll)
	setAmount(&p.Rent, l.Rent)
	setAmount(&p.Utilities, l.Utilities)
	setAmount(&p.LoanPayments, l.LoanPayments)
	setAmount(&p.TaxPayments, l.TaxPayments)
	setAmount(&p.CapitalExpenditures, l.CapitalExpenditures)
	setAmount(&p.OperatingExpenses, l.OperatingExpenses)
	setAmount(&p.OtherPayments, l.OtherPayments)
}

// CreateCashFlowForecastRequest represents a request to create a forecast
type CreateCashFlowForecastRequest struct {
	Period           string       `json:"period" binding:"required,max=20"`
	ForecastDate     string       `json:"forecast_date"`
	BeginningBalance *calc.Amount `json:"beginning_balance"`
	ForecastLines
	Notes string `json:"notes"`
}

// UpdateCashFlowForecastRequest represents a partial update of a forecast
type UpdateCashFlowForecastRequest struct {
	Period           *string      `json:"period" binding:"omitempty,max=20"`
	ForecastDate     *string      `json:"forecast_date"`
	BeginningBalance *calc.Amount `json:"beginning_balance"`
	ForecastLines
	Notes *string `json:"notes"`
}

// CashFlowForecastListFilter represents the list query of forecasts
type CashFlowForecastListFilter struct {
	ListQuery
	Period    string `form:"period"`
	Shortfall *bool  `form:"shortfall"`
}

// CashFlowForecastResponse represents a forecast in API responses
type CashFlowForecastResponse struct {
	ID               uuid.UUID       `json:"id"`
	Period           string          `json:"period"`
	ForecastDate     *string         `json:"forecast_date"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`

	CashSales                  decimal.Decimal `json:"cash_sales"`
	CollectionsFromReceivables decimal.Decimal `json:"collections_from_receivables"`
	LoanProceeds               decimal.Decimal `json:"loan_proceeds"`
	AssetSales                 decimal.Decimal `json:"asset_sales"`
	InvestmentIncome           decimal.Decimal `json:"investment_income"`
	OtherReceipts              decimal.Decimal `json:"other_receipts"`

	InventoryPurchases  decimal.Decimal `json:"inventory_purchases"`
	Payroll             decimal.Decimal `json:"payroll"`
	Rent                decimal.Decimal `json:"rent"`
	Utilities           decimal.Decimal `json:"utilities"`
	LoanPayments        decimal.Decimal `json:"loan_payments"`
	TaxPayments         decimal.Decimal `json:"tax_payments"`
	CapitalExpenditures decimal.Decimal `json:"capital_expenditures"`
	OperatingExpenses   decimal.Decimal `json:"operating_expenses"`
	OtherPayments       decimal.Decimal `json:"other_payments"`

	TotalReceipts      decimal.Decimal `json:"total_receipts"`
	TotalPayments      decimal.Decimal `json:"total_payments"`
	NetCashChange      decimal.Decimal `json:"net_cash_change"`
	EndingCashPosition decimal.Decimal `json:"ending_cash_position"`
	CashShortfall      bool            `json:"cash_shortfall"`
	Notes              string          `json:"notes"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToCashFlowForecastResponse converts a domain CashFlowForecast to its response
func ToCashFlowForecastResponse(f *finance.CashFlowForecast) CashFlowForecastResponse {
	return CashFlowForecastResponse{
		ID:               f.ID,
		Period:           f.Period,
		ForecastDate:     formatOptionalDate(f.ForecastDate),
		BeginningBalance: f.BeginningBalance,

		CashSales:                  f.CashSales,
		CollectionsFromReceivables: f.CollectionsFromReceivables,
		LoanProceeds:               f.LoanProceeds,
		AssetSales:                 f.AssetSales,
		InvestmentIncome:           f.InvestmentIncome,
		OtherReceipts:              f.OtherReceipts,

		InventoryPurchases:  f.InventoryPurchases,
		Payroll:             f.Payroll,
		Rent:                f.Rent,
		Utilities:           f.Utilities,
		LoanPayments:        f.LoanPayments,
		TaxPayments:         f.TaxPayments,
		CapitalExpenditures: f.CapitalExpenditures,
		OperatingExpenses:   f.OperatingExpenses,
		OtherPayments:       f.OtherPayments,

		TotalReceipts:      f.TotalReceipts,
		TotalPayments:      f.TotalPayments,
		NetCashChange:      f.NetCashChange,
		EndingCashPosition: f.EndingCashPosition,
		CashShortfall:      f.CashShortfall,
		Notes:              f.Notes,
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}
