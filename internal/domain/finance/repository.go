package finance

import (
	"context"
	"time"

	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateRange bounds a date column. Nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// JournalEntryFilter defines filtering options for journal entry queries
type JournalEntryFilter struct {
	shared.Filter
	Status      *JournalStatus
	AccountCode string
	EntryDate   DateRange
}

// JournalEntryRepository defines persistence for journal entries
type JournalEntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*JournalEntry, error)
	FindAll(ctx context.Context, filter JournalEntryFilter) ([]JournalEntry, error)
	Count(ctx context.Context, filter JournalEntryFilter) (int64, error)
	Save(ctx context.Context, entry *JournalEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvoiceFilter defines filtering options shared by payable and receivable queries
type InvoiceFilter struct {
	shared.Filter
	Status       *calc.PaymentStatus
	Counterparty string // vendor or customer name, substring match
	DueDate      DateRange
}

// InvoiceSummary aggregates open invoices as of a date
type InvoiceSummary struct {
	Count         int64
	OpenCount     int64
	TotalAmount   decimal.Decimal
	Outstanding   decimal.Decimal
	OverdueCount  int64
	OverdueAmount decimal.Decimal
}

// AccountPayableRepository defines persistence for payables.
// Overdue queries are evaluated against asOf rather than the stored status.
type AccountPayableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AccountPayable, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]AccountPayable, error)
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)
	Save(ctx context.Context, payable *AccountPayable) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindOverdue returns open payables due before the day of asOf
	FindOverdue(ctx context.Context, asOf time.Time) ([]AccountPayable, error)
	// FindDueBetween returns open payables due within [from, to] inclusive
	FindDueBetween(ctx context.Context, from, to time.Time) ([]AccountPayable, error)
	// FindOpen returns every payable with a balance
	FindOpen(ctx context.Context) ([]AccountPayable, error)
	// Summarize aggregates payables as of asOf
	Summarize(ctx context.Context, asOf time.Time) (*InvoiceSummary, error)
}

// AccountReceivableRepository defines persistence for receivables.
// Overdue queries are evaluated against asOf rather than the stored status.
type AccountReceivableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AccountReceivable, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]AccountReceivable, error)
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)
	Save(ctx context.Context, receivable *AccountReceivable) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindOverdue(ctx context.Context, asOf time.Time) ([]AccountReceivable, error)
	FindDueBetween(ctx context.Context, from, to time.Time) ([]AccountReceivable, error)
	FindOpen(ctx context.Context) ([]AccountReceivable, error)
	Summarize(ctx context.Context, asOf time.Time) (*InvoiceSummary, error)
}

// StatementFilter filters dated statements (balance sheets, cash flow and
// income statements, working capital) by their reporting date
type StatementFilter struct {
	shared.Filter
	Date DateRange
}

// BalanceSheetRepository defines persistence for balance sheets
type BalanceSheetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BalanceSheet, error)
	FindAll(ctx context.Context, filter StatementFilter) ([]BalanceSheet, error)
	Count(ctx context.Context, filter StatementFilter) (int64, error)
	Save(ctx context.Context, sheet *BalanceSheet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BudgetFilter defines filtering options for budget queries
type BudgetFilter struct {
	shared.Filter
	FiscalYear *int
	Department string
	Category   string
}

// BudgetTotals aggregates budgets
type BudgetTotals struct {
	Count     int64
	Original  decimal.Decimal
	Revised   decimal.Decimal
	Utilised  decimal.Decimal
	Remaining decimal.Decimal
}

// BudgetRepository defines persistence for budgets
type BudgetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	FindAll(ctx context.Context, filter BudgetFilter) ([]Budget, error)
	Count(ctx context.Context, filter BudgetFilter) (int64, error)
	Save(ctx context.Context, budget *Budget) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindUtilisedAtLeast returns budgets whose utilisation percent is >= percent
	FindUtilisedAtLeast(ctx context.Context, percent decimal.Decimal) ([]Budget, error)
	// Totals aggregates all budgets, optionally restricted to a fiscal year
	Totals(ctx context.Context, fiscalYear *int) (*BudgetTotals, error)
}

// CashFlowForecastFilter defines filtering options for forecast queries
type CashFlowForecastFilter struct {
	shared.Filter
	Period    string
	Shortfall *bool
}

// CashFlowForecastRepository defines persistence for cash flow forecasts
type CashFlowForecastRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CashFlowForecast, error)
	FindAll(ctx context.Context, filter CashFlowForecastFilter) ([]CashFlowForecast, error)
	Count(ctx context.Context, filter CashFlowForecastFilter) (int64, error)
	Save(ctx context.Context, forecast *CashFlowForecast) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindEndingBelow returns forecasts whose ending cash position is < threshold
	FindEndingBelow(ctx context.Context, threshold decimal.Decimal) ([]CashFlowForecast, error)
	// FindLatest returns the forecast with the greatest period
	FindLatest(ctx context.Context) (*CashFlowForecast, error)
}

// CashFlowStatementRepository defines persistence for cash flow statements
type CashFlowStatementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CashFlowStatement, error)
	FindAll(ctx context.Context, filter StatementFilter) ([]CashFlowStatement, error)
	Count(ctx context.Context, filter StatementFilter) (int64, error)
	Save(ctx context.Context, statement *CashFlowStatement) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// IncomeStatementRepository defines persistence for income statements
type IncomeStatementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*IncomeStatement, error)
	FindAll(ctx context.Context, filter StatementFilter) ([]IncomeStatement, error)
	Count(ctx context.Context, filter StatementFilter) (int64, error)
	Save(ctx context.Context, statement *IncomeStatement) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindLatest returns the statement with the latest period end
	FindLatest(ctx context.Context) (*IncomeStatement, error)
}

// PurchaseOrderFilter defines filtering options for purchase order queries
type PurchaseOrderFilter struct {
	shared.Filter
	Status     *PurchaseOrderStatus
	VendorName string
	OrderDate  DateRange
}

// PurchaseOrderRepository defines persistence for purchase orders
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter PurchaseOrderFilter) ([]PurchaseOrder, error)
	Count(ctx context.Context, filter PurchaseOrderFilter) (int64, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseReportFilter defines filtering options for expense report queries
type ExpenseReportFilter struct {
	shared.Filter
	Status       *ExpenseReportStatus
	EmployeeName string
	Category     string
	ReportDate   DateRange
}

// ExpenseReportRepository defines persistence for expense reports
type ExpenseReportRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseReport, error)
	FindAll(ctx context.Context, filter ExpenseReportFilter) ([]ExpenseReport, error)
	Count(ctx context.Context, filter ExpenseReportFilter) (int64, error)
	Save(ctx context.Context, report *ExpenseReport) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkingCapitalRepository defines persistence for working capital snapshots
type WorkingCapitalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkingCapital, error)
	FindAll(ctx context.Context, filter StatementFilter) ([]WorkingCapital, error)
	Count(ctx context.Context, filter StatementFilter) (int64, error)
	Save(ctx context.Context, snapshot *WorkingCapital) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindLatest returns the snapshot with the latest as_of_date
	FindLatest(ctx context.Context) (*WorkingCapital, error)
}
