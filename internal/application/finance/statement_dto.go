package finance

import (
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementListFilter is the list query of dated statements
type StatementListFilter struct {
	ListQuery
	DateRangeQuery
}

func (f StatementListFilter) toDomain() (finance.StatementFilter, error) {
	dates, err := f.Range()
	if err != nil {
		return finance.StatementFilter{}, err
	}
	return finance.StatementFilter{Filter: f.ListQuery.Filter(), Date: dates}, nil
}

// --- Balance sheets ---

// BalanceSheetLinesRequest are the optional lines of a balance sheet
type BalanceSheetLinesRequest struct {
	Cash                    *decimal.Decimal `json:"cash"`
	AccountsReceivable      *decimal.Decimal `json:"accounts_receivable"`
	Inventory               *decimal.Decimal `json:"inventory"`
	PrepaidExpenses         *decimal.Decimal `json:"prepaid_expenses"`
	OtherCurrentAssets      *decimal.Decimal `json:"other_current_assets"`
	FixedAssets             *decimal.Decimal `json:"fixed_assets"`
	OtherAssets             *decimal.Decimal `json:"other_assets"`
	AccountsPayable         *decimal.Decimal `json:"accounts_payable"`
	ShortTermDebt           *decimal.Decimal `json:"short_term_debt"`
	AccruedLiabilities      *decimal.Decimal `json:"accrued_liabilities"`
	OtherCurrentLiabilities *decimal.Decimal `json:"other_current_liabilities"`
	LongTermDebt            *decimal.Decimal `json:"long_term_debt"`
	OtherLiabilities        *decimal.Decimal `json:"other_liabilities"`
	OwnerEquity             *decimal.Decimal `json:"owner_equity"`
	RetainedEarnings        *decimal.Decimal `json:"retained_earnings"`
}

func (r BalanceSheetLinesRequest) apply(l *finance.BalanceSheetLines) {
	setDecimal(&l.Cash, r.Cash)
	setDecimal(&l.AccountsReceivable, r.AccountsReceivable)
	setDecimal(&l.Inventory, r.Inventory)
	setDecimal(&l.PrepaidExpenses, r.PrepaidExpenses)
	setDecimal(&l.OtherCurrentAssets, r.OtherCurrentAssets)
	setDecimal(&l.FixedAssets, r.FixedAssets)
	setDecimal(&l.OtherAssets, r.OtherAssets)
	setDecimal(&l.AccountsPayable, r.AccountsPayable)
	setDecimal(&l.ShortTermDebt, r.ShortTermDebt)
	setDecimal(&l.AccruedLiabilities, r.AccruedLiabilities)
	setDecimal(&l.OtherCurrentLiabilities, r.OtherCurrentLiabilities)
	setDecimal(&l.LongTermDebt, r.LongTermDebt)
	setDecimal(&l.OtherLiabilities, r.OtherLiabilities)
	setDecimal(&l.OwnerEquity, r.OwnerEquity)
	setDecimal(&l.RetainedEarnings, r.RetainedEarnings)
}

// CreateBalanceSheetRequest represents a request to create a balance sheet
type CreateBalanceSheetRequest struct {
	AsOfDate string `json:"as_of_date" binding:"required"`
	BalanceSheetLinesRequest
	Notes string `json:"notes"`
}

// UpdateBalanceSheetRequest represents a partial update of a balance sheet
type UpdateBalanceSheetRequest struct {
	AsOfDate *string `json:"as_of_date"`
	BalanceSheetLinesRequest
	Notes *string `json:"notes"`
}

// BalanceSheetResponse represents a balance sheet in API responses
type BalanceSheetResponse struct {
	ID                      uuid.UUID       `json:"id"`
	AsOfDate                string          `json:"as_of_date"`
	Cash                    decimal.Decimal `json:"cash"`
	AccountsReceivable      decimal.Decimal `json:"accounts_receivable"`
	Inventory               decimal.Decimal `json:"inventory"`
	PrepaidExpenses         decimal.Decimal `json:"prepaid_expenses"`
	OtherCurrentAssets      decimal.Decimal `json:"other_current_assets"`
	FixedAssets             decimal.Decimal `json:"fixed_assets"`
	OtherAssets             decimal.Decimal `json:"other_assets"`
	AccountsPayable         decimal.Decimal `json:"accounts_payable"`
	ShortTermDebt           decimal.Decimal `json:"short_term_debt"`
	AccruedLiabilities      decimal.Decimal `json:"accrued_liabilities"`
	OtherCurrentLiabilities decimal.Decimal `json:"other_current_liabilities"`
	LongTermDebt            decimal.Decimal `json:"long_term_debt"`
	OtherLiabilities        decimal.Decimal `json:"other_liabilities"`
	OwnerEquity             decimal.Decimal `json:"owner_equity"`
	RetainedEarnings        decimal.Decimal `json:"retained_earnings"`
	TotalCurrentAssets      decimal.Decimal `json:"total_current_assets"`
	TotalAssets             decimal.Decimal `json:"total_assets"`
	TotalCurrentLiabilities decimal.Decimal `json:"total_current_liabilities"`
	TotalLiabilities        decimal.Decimal `json:"total_liabilities"`
	TotalEquity             decimal.Decimal `json:"total_equity"`
	IsBalanced              bool            `json:"is_balanced"`
	Notes                   string          `json:"notes"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// ToBalanceSheetResponse converts a domain BalanceSheet to its response
func ToBalanceSheetResponse(bs *finance.BalanceSheet) BalanceSheetResponse {
	return BalanceSheetResponse{
		ID:                      bs.ID,
		AsOfDate:                FormatDate(bs.AsOfDate),
		Cash:                    bs.Cash,
		AccountsReceivable:      bs.AccountsReceivable,
		Inventory:               bs.Inventory,
		PrepaidExpenses:         bs.PrepaidExpenses,
		OtherCurrentAssets:      bs.OtherCurrentAssets,
		FixedAssets:             bs.FixedAssets,
		OtherAssets:             bs.OtherAssets,
		AccountsPayable:         bs.AccountsPayable,
		ShortTermDebt:           bs.ShortTermDebt,
		AccruedLiabilities:      bs.AccruedLiabilities,
		OtherCurrentLiabilities: bs.OtherCurrentLiabilities,
		LongTermDebt:            bs.LongTermDebt,
		OtherLiabilities:        bs.OtherLiabilities,
		OwnerEquity:             bs.OwnerEquity,
		RetainedEarnings:        bs.RetainedEarnings,
		TotalCurrentAssets:      bs.TotalCurrentAssets,
		TotalAssets:             bs.TotalAssets,
		TotalCurrentLiabilities: bs.TotalCurrentLiabilities,
		TotalLiabilities:        bs.TotalLiabilities,
		TotalEquity:             bs.TotalEquity,
		IsBalanced:              bs.IsBalanced,
		Notes:                   bs.Notes,
		CreatedAt:               bs.CreatedAt,
		UpdatedAt:               bs.UpdatedAt,
	}
}

// --- Cash flow statements ---

// CashFlowActivitiesRequest are the optional activity lines of a cash flow statement
type CashFlowActivitiesRequest struct {
	NetIncome             *decimal.Decimal `json:"net_income"`
	Depreciation          *decimal.Decimal `json:"depreciation"`
	WorkingCapitalChanges *decimal.Decimal `json:"working_capital_changes"`
	OtherOperating        *decimal.Decimal `json:"other_operating"`
	CapitalExpenditures   *decimal.Decimal `json:"capital_expenditures"`
	InvestmentProceeds    *decimal.Decimal `json:"investment_proceeds"`
	OtherInvesting        *decimal.Decimal `json:"other_investing"`
	DebtIssued            *decimal.Decimal `json:"debt_issued"`
	DebtRepaid            *decimal.Decimal `json:"debt_repaid"`
	DividendsPaid         *decimal.Decimal `json:"dividends_paid"`
	OtherFinancing        *decimal.Decimal `json:"other_financing"`
}

func (r CashFlowActivitiesRequest) apply(a *finance.CashFlowActivities) {
	setDecimal(&a.NetIncome, r.NetIncome)
	setDecimal(&a.Depreciation, r.Depreciation)
	setDecimal(&a.WorkingCapitalChanges, r.WorkingCapitalChanges)
	setDecimal(&a.OtherOperating, r.OtherOperating)
	setDecimal(&a.CapitalExpenditures, r.CapitalExpenditures)
	setDecimal(&a.InvestmentProceeds, r.InvestmentProceeds)
	setDecimal(&a.OtherInvesting, r.OtherInvesting)
	setDecimal(&a.DebtIssued, r.DebtIssued)
	setDecimal(&a.DebtRepaid, r.DebtRepaid)
	setDecimal(&a.DividendsPaid, r.DividendsPaid)
	setDecimal(&a.OtherFinancing, r.OtherFinancing)
}

// CreateCashFlowStatementRequest represents a request to create a cash flow statement
type CreateCashFlowStatementRequest struct {
	PeriodStart   string           `json:"period_start" binding:"required"`
	PeriodEnd     string           `json:"period_end" binding:"required"`
	BeginningCash *decimal.Decimal `json:"beginning_cash"`
	CashFlowActivitiesRequest
	Notes string `json:"notes"`
}

// UpdateCashFlowStatementRequest represents a partial update of a cash flow statement
type UpdateCashFlowStatementRequest struct {
	PeriodStart   *string          `json:"period_start"`
	PeriodEnd     *string          `json:"period_end"`
	BeginningCash *decimal.Decimal `json:"beginning_cash"`
	CashFlowActivitiesRequest
	Notes *string `json:"notes"`
}

// CashFlowStatementResponse represents a cash flow statement in API responses
type CashFlowStatementResponse struct {
	ID                    uuid.UUID       `json:"id"`
	PeriodStart           string          `json:"period_start"`
	PeriodEnd             string          `json:"period_end"`
	BeginningCash         decimal.Decimal `json:"beginning_cash"`
	NetIncome             decimal.Decimal `json:"net_income"`
	Depreciation          decimal.Decimal `json:"depreciation"`
	WorkingCapitalChanges decimal.Decimal `json:"working_capital_changes"`
	OtherOperating        decimal.Decimal `json:"other_operating"`
	CapitalExpenditures   decimal.Decimal `json:"capital_expenditures"`
	InvestmentProceeds    decimal.Decimal `json:"investment_proceeds"`
	OtherInvesting        decimal.Decimal `json:"other_investing"`
	DebtIssued            decimal.Decimal `json:"debt_issued"`
	DebtRepaid            decimal.Decimal `json:"debt_repaid"`
	DividendsPaid         decimal.Decimal `json:"dividends_paid"`
	OtherFinancing        decimal.Decimal `json:"other_financing"`
	OperatingCashFlow     decimal.Decimal `json:"operating_cash_flow"`
	InvestingCashFlow     decimal.Decimal `json:"investing_cash_flow"`
	FinancingCashFlow     decimal.Decimal `json:"financing_cash_flow"`
	NetChangeInCash       decimal.Decimal `json:"net_change_in_cash"`
	EndingCash            decimal.Decimal `json:"ending_cash"`
	Notes                 string          `json:"notes"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ToCashFlowStatementResponse converts a domain CashFlowStatement to its response
func ToCashFlowStatementResponse(s *finance.CashFlowStatement) CashFlowStatementResponse {
	return CashFlowStatementResponse{
		ID:                    s.ID,
		PeriodStart:           FormatDate(s.PeriodStart),
		PeriodEnd:             FormatDate(s.PeriodEnd),
		BeginningCash:         s.BeginningCash,
		NetIncome:             s.NetIncome,
		Depreciation:          s.Depreciation,
		WorkingCapitalChanges: s.WorkingCapitalChanges,
		OtherOperating:        s.OtherOperating,
		CapitalExpenditures:   s.CapitalExpenditures,
		InvestmentProceeds:    s.InvestmentProceeds,
		OtherInvesting:        s.OtherInvesting,
		DebtIssued:            s.DebtIssued,
		DebtRepaid:            s.DebtRepaid,
		DividendsPaid:         s.DividendsPaid,
		OtherFinancing:        s.OtherFinancing,
		OperatingCashFlow:     s.OperatingCashFlow,
		InvestingCashFlow:     s.InvestingCashFlow,
		FinancingCashFlow:     s.FinancingCashFlow,
		NetChangeInCash:       s.NetChangeInCash,
		EndingCash:            s.EndingCash,
		Notes:                 s.Notes,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

// --- Income statements ---

// CreateIncomeStatementRequest represents a request to create an income statement
type CreateIncomeStatementRequest struct {
	PeriodStart       string           `json:"period_start" binding:"required"`
	PeriodEnd         string           `json:"period_end" binding:"required"`
	Revenue           *decimal.Decimal `json:"revenue" binding:"required"`
	CostOfGoodsSold   *decimal.Decimal `json:"cost_of_goods_sold"`
	OperatingExpenses *decimal.Decimal `json:"operating_expenses"`
	InterestExpense   *decimal.Decimal `json:"interest_expense"`
	OtherIncome       *decimal.Decimal `json:"other_income"`
	TaxExpense        *decimal.Decimal `json:"tax_expense"`
	Notes             string           `json:"notes"`
}

// UpdateIncomeStatementRequest represents a partial update of an income statement
type UpdateIncomeStatementRequest struct {
	PeriodStart       *string          `json:"period_start"`
	PeriodEnd         *string          `json:"period_end"`
	Revenue           *decimal.Decimal `json:"revenue"`
	CostOfGoodsSold   *decimal.Decimal `json:"cost_of_goods_sold"`
	OperatingExpenses *decimal.Decimal `json:"operating_expenses"`
	InterestExpense   *decimal.Decimal `json:"interest_expense"`
	OtherIncome       *decimal.Decimal `json:"other_income"`
	TaxExpense        *decimal.Decimal `json:"tax_expense"`
	Notes             *string          `json:"notes"`
}

// IncomeStatementResponse represents an income statement in API responses
type IncomeStatementResponse struct {
	ID                uuid.UUID       `json:"id"`
	PeriodStart       string          `json:"period_start"`
	PeriodEnd         string          `json:"period_end"`
	Revenue           decimal.Decimal `json:"revenue"`
	CostOfGoodsSold   decimal.Decimal `json:"cost_of_goods_sold"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	InterestExpense   decimal.Decimal `json:"interest_expense"`
	OtherIncome       decimal.Decimal `json:"other_income"`
	TaxExpense        decimal.Decimal `json:"tax_expense"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	OperatingIncome   decimal.Decimal `json:"operating_income"`
	IncomeBeforeTax   decimal.Decimal `json:"income_before_tax"`
	NetIncome         decimal.Decimal `json:"net_income"`
	GrossMargin       decimal.Decimal `json:"gross_margin"`
	OperatingMargin   decimal.Decimal `json:"operating_margin"`
	NetMargin         decimal.Decimal `json:"net_margin"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToIncomeStatementResponse converts a domain IncomeStatement to its response
func ToIncomeStatementResponse(s *finance.IncomeStatement) IncomeStatementResponse {
	return IncomeStatementResponse{
		ID:                s.ID,
		PeriodStart:       FormatDate(s.PeriodStart),
		PeriodEnd:         FormatDate(s.PeriodEnd),
		Revenue:           s.Revenue,
		CostOfGoodsSold:   s.CostOfGoodsSold,
		OperatingExpenses: s.OperatingExpenses,
		InterestExpense:   s.InterestExpense,
		OtherIncome:       s.OtherIncome,
		TaxExpense:        s.TaxExpense,
		GrossProfit:       s.GrossProfit,
		OperatingIncome:   s.OperatingIncome,
		IncomeBeforeTax:   s.IncomeBeforeTax,
		NetIncome:         s.NetIncome,
		GrossMargin:       s.GrossMargin,
		OperatingMargin:   s.OperatingMargin,
		NetMargin:         s.NetMargin,
		Notes:             s.Notes,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// --- Working capital ---

// WorkingCapitalLinesRequest are the optional lines of a working capital snapshot
type WorkingCapitalLinesRequest struct {
	Cash                    *decimal.Decimal `json:"cash"`
	AccountsReceivable      *decimal.Decimal `json:"accounts_receivable"`
	Inventory               *decimal.Decimal `json:"inventory"`
	OtherCurrentAssets      *decimal.Decimal `json:"other_current_assets"`
	AccountsPayable         *decimal.Decimal `json:"accounts_payable"`
	ShortTermDebt           *decimal.Decimal `json:"short_term_debt"`
	AccruedLiabilities      *decimal.Decimal `json:"accrued_liabilities"`
	OtherCurrentLiabilities *decimal.Decimal `json:"other_current_liabilities"`
}

func (r WorkingCapitalLinesRequest) apply(l *finance.WorkingCapitalLines) {
	setDecimal(&l.Cash, r.Cash)
	setDecimal(&l.AccountsReceivable, r.AccountsReceivable)
	setDecimal(&l.Inventory, r.Inventory)
	setDecimal(&l.OtherCurrentAssets, r.OtherCurrentAssets)
	setDecimal(&l.AccountsPayable, r.AccountsPayable)
	setDecimal(&l.ShortTermDebt, r.ShortTermDebt)
	setDecimal(&l.AccruedLiabilities, r.AccruedLiabilities)
	setDecimal(&l.OtherCurrentLiabilities, r.OtherCurrentLiabilities)
}

// CreateWorkingCapitalRequest represents a request to create a working capital snapshot
type CreateWorkingCapitalRequest struct {
	AsOfDate string `json:"as_of_date" binding:"required"`
	WorkingCapitalLinesRequest
	Notes string `json:"notes"`
}

// UpdateWorkingCapitalRequest represents a partial update of a working capital snapshot
type UpdateWorkingCapitalRequest struct {
	AsOfDate *string `json:"as_of_date"`
	WorkingCapitalLinesRequest
	Notes *string `json:"notes"`
}

// WorkingCapitalResponse represents a working capital snapshot in API responses
type WorkingCapitalResponse struct {
	ID                      uuid.UUID       `json:"id"`
	AsOfDate                string          `json:"as_of_date"`
	Cash                    decimal.Decimal `json:"cash"`
	AccountsReceivable      decimal.Decimal `json:"accounts_receivable"`
	Inventory               decimal.Decimal `json:"inventory"`
	OtherCurrentAssets      decimal.Decimal `json:"other_current_assets"`
	AccountsPayable         decimal.Decimal `json:"accounts_payable"`
	ShortTermDebt           decimal.Decimal `json:"short_term_debt"`
	AccruedLiabilities      decimal.Decimal `json:"accrued_liabilities"`
	OtherCurrentLiabilities decimal.Decimal `json:"other_current_liabilities"`
	TotalCurrentAssets      decimal.Decimal `json:"total_current_assets"`
	TotalCurrentLiabilities decimal.Decimal `json:"total_current_liabilities"`
	WorkingCapital          decimal.Decimal `json:"working_capital"`
	CurrentRatio            decimal.Decimal `json:"current_ratio"`
	QuickRatio              decimal.Decimal `json:"quick_ratio"`
	Notes                   string          `json:"notes"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// ToWorkingCapitalResponse converts a domain WorkingCapital to its response
func ToWorkingCapitalResponse(wc *finance.WorkingCapital) WorkingCapitalResponse {
	return WorkingCapitalResponse{
		ID:                      wc.ID,
		AsOfDate:                FormatDate(wc.AsOfDate),
		Cash:                    wc.Cash,
		AccountsReceivable:      wc.AccountsReceivable,
		Inventory:               wc.Inventory,
		OtherCurrentAssets:      wc.OtherCurrentAssets,
		AccountsPayable:         wc.AccountsPayable,
		ShortTermDebt:           wc.ShortTermDebt,
		AccruedLiabilities:      wc.AccruedLiabilities,
		OtherCurrentLiabilities: wc.OtherCurrentLiabilities,
		TotalCurrentAssets:      wc.TotalCurrentAssets,
		TotalCurrentLiabilities: wc.TotalCurrentLiabilities,
		WorkingCapital:          wc.NetWorkingCapital,
		CurrentRatio:            wc.CurrentRatio,
		QuickRatio:              wc.QuickRatio,
		Notes:                   wc.Notes,
		CreatedAt:               wc.CreatedAt,
		UpdatedAt:               wc.UpdatedAt,
	}
}
