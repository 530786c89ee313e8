package finance

import (
	"context"
	"io"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockJournalEntryRepository is a mock implementation of JournalEntryRepository
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.JournalEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindAll(ctx context.Context, filter finance.JournalEntryFilter) ([]finance.JournalEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) Count(ctx context.Context, filter finance.JournalEntryFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalEntryRepository) Save(ctx context.Context, entry *finance.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAccountPayableRepository is a mock implementation of AccountPayableRepository
type MockAccountPayableRepository struct {
	mock.Mock
}

func (m *MockAccountPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindAll(ctx context.Context, filter finance.InvoiceFilter) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) Count(ctx context.Context, filter finance.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountPayableRepository) Save(ctx context.Context, payable *finance.AccountPayable) error {
	args := m.Called(ctx, payable)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindOpen(ctx context.Context) ([]finance.AccountPayable, error) {
	args := m.Called(ctx)
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) Summarize(ctx context.Context, asOf time.Time) (*finance.InvoiceSummary, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.InvoiceSummary), args.Error(1)
}

// MockBudgetRepository is a mock implementation of BudgetRepository
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Budget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindAll(ctx context.Context, filter finance.BudgetFilter) ([]finance.Budget, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Count(ctx context.Context, filter finance.BudgetFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBudgetRepository) Save(ctx context.Context, budget *finance.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindUtilisedAtLeast(ctx context.Context, percent decimal.Decimal) ([]finance.Budget, error) {
	args := m.Called(ctx, percent)
	return args.Get(0).([]finance.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Totals(ctx context.Context, fiscalYear *int) (*finance.BudgetTotals, error) {
	args := m.Called(ctx, fiscalYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BudgetTotals), args.Error(1)
}

// MockCashFlowForecastRepository is a mock implementation of CashFlowForecastRepository
type MockCashFlowForecastRepository struct {
	mock.Mock
}

func (m *MockCashFlowForecastRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashFlowForecast, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.CashFlowForecast), args.Error(1)
}

func (m *MockCashFlowForecastRepository) FindAll(ctx context.Context, filter finance.CashFlowForecastFilter) ([]finance.CashFlowForecast, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.CashFlowForecast), args.Error(1)
}

func (m *MockCashFlowForecastRepository) Count(ctx context.Context, filter finance.CashFlowForecastFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCashFlowForecastRepository) Save(ctx context.Context, forecast *finance.CashFlowForecast) error {
	args := m.Called(ctx, forecast)
	return args.Error(0)
}

func (m *MockCashFlowForecastRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCashFlowForecastRepository) FindEndingBelow(ctx context.Context, threshold decimal.Decimal) ([]finance.CashFlowForecast, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]finance.CashFlowForecast), args.Error(1)
}

func (m *MockCashFlowForecastRepository) FindLatest(ctx context.Context) (*finance.CashFlowForecast, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.CashFlowForecast), args.Error(1)
}

// MockIncomeStatementRepository is a mock implementation of IncomeStatementRepository
type MockIncomeStatementRepository struct {
	mock.Mock
}

func (m *MockIncomeStatementRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.IncomeStatement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.IncomeStatement), args.Error(1)
}

func (m *MockIncomeStatementRepository) FindAll(ctx context.Context, filter finance.StatementFilter) ([]finance.IncomeStatement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.IncomeStatement), args.Error(1)
}

func (m *MockIncomeStatementRepository) Count(ctx context.Context, filter finance.StatementFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIncomeStatementRepository) Save(ctx context.Context, statement *finance.IncomeStatement) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

func (m *MockIncomeStatementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIncomeStatementRepository) FindLatest(ctx context.Context) (*finance.IncomeStatement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.IncomeStatement), args.Error(1)
}

// MockExpenseReportRepository is a mock implementation of ExpenseReportRepository
type MockExpenseReportRepository struct {
	mock.Mock
}

func (m *MockExpenseReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ExpenseReport), args.Error(1)
}

func (m *MockExpenseReportRepository) FindAll(ctx context.Context, filter finance.ExpenseReportFilter) ([]finance.ExpenseReport, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.ExpenseReport), args.Error(1)
}

func (m *MockExpenseReportRepository) Count(ctx context.Context, filter finance.ExpenseReportFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseReportRepository) Save(ctx context.Context, report *finance.ExpenseReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockExpenseReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReceiptStorage is a mock implementation of ReceiptStorage
type MockReceiptStorage struct {
	mock.Mock
}

func (m *MockReceiptStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

func (m *MockReceiptStorage) PresignDownload(ctx context.Context, key string) (string, time.Time, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockReceiptStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockStatementPrinter is a mock implementation of StatementPrinter
type MockStatementPrinter struct {
	mock.Mock
}

func (m *MockStatementPrinter) IncomeStatementPDF(ctx context.Context, statement *finance.IncomeStatement) ([]byte, error) {
	args := m.Called(ctx, statement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStatementPrinter) BalanceSheetPDF(ctx context.Context, sheet *finance.BalanceSheet) ([]byte, error) {
	args := m.Called(ctx, sheet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
