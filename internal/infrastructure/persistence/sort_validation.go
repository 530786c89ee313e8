package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// baseSortFields are present on every table
var baseSortFields = []string{"id", "created_at", "updated_at"}

func sortFields(fields ...string) map[string]bool {
	allowed := make(map[string]bool, len(fields)+len(baseSortFields))
	for _, f := range baseSortFields {
		allowed[f] = true
	}
	for _, f := range fields {
		allowed[f] = true
	}
	return allowed
}

// JournalEntrySortFields contains allowed sort fields for journal entries
var JournalEntrySortFields = sortFields(
	"entry_number", "entry_date", "account_code", "account_name", "debit", "credit", "status",
)

// InvoiceSortFields contains allowed sort fields shared by payables and receivables
var InvoiceSortFields = sortFields(
	"invoice_number", "invoice_date", "due_date", "total_amount", "amount_paid", "balance_due", "status",
)

// AccountPayableSortFields contains allowed sort fields for accounts payable
var AccountPayableSortFields = merge(InvoiceSortFields, "vendor_name", "category")

// AccountReceivableSortFields contains allowed sort fields for accounts receivable
var AccountReceivableSortFields = merge(InvoiceSortFields, "customer_name")

// BalanceSheetSortFields contains allowed sort fields for balance sheets
var BalanceSheetSortFields = sortFields("as_of_date", "total_assets", "total_liabilities", "total_equity")

// BudgetSortFields contains allowed sort fields for budgets
var BudgetSortFields = sortFields(
	"name", "department", "category", "fiscal_year", "revised_amount", "total_utilised",
	"utilisation_percent", "remaining_amount",
)

// CashFlowForecastSortFields contains allowed sort fields for cash flow forecasts
var CashFlowForecastSortFields = sortFields(
	"period", "forecast_date", "total_receipts", "total_payments", "net_cash_change", "ending_cash_position",
)

// CashFlowStatementSortFields contains allowed sort fields for cash flow statements
var CashFlowStatementSortFields = sortFields("period_start", "period_end", "net_change_in_cash", "ending_cash")

// IncomeStatementSortFields contains allowed sort fields for income statements
var IncomeStatementSortFields = sortFields("period_start", "period_end", "revenue", "net_income", "net_margin")

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = sortFields(
	"po_number", "vendor_name", "order_date", "expected_date", "total_amount", "status",
)

// ExpenseReportSortFields contains allowed sort fields for expense reports
var ExpenseReportSortFields = sortFields(
	"employee_name", "department", "report_date", "category", "amount", "status",
)

// WorkingCapitalSortFields contains allowed sort fields for working capital snapshots
var WorkingCapitalSortFields = sortFields(
	"as_of_date", "working_capital", "current_ratio", "quick_ratio",
)

func merge(base map[string]bool, fields ...string) map[string]bool {
	allowed := make(map[string]bool, len(base)+len(fields))
	for f := range base {
		allowed[f] = true
	}
	for _, f := range fields {
		allowed[f] = true
	}
	return allowed
}
