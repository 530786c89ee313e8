package dashboard

import (
	"context"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockPayableRepository struct{ mock.Mock }

func (m *MockPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepository) FindAll(ctx context.Context, filter finance.InvoiceFilter) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepository) Count(ctx context.Context, filter finance.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPayableRepository) Save(ctx context.Context, payable *finance.AccountPayable) error {
	return m.Called(ctx, payable).Error(0)
}

func (m *MockPayableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPayableRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepository) FindOpen(ctx context.Context) ([]finance.AccountPayable, error) {
	args := m.Called(ctx)
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepository) Summarize(ctx context.Context, asOf time.Time) (*finance.InvoiceSummary, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.InvoiceSummary), args.Error(1)
}

type MockReceivableRepository struct{ mock.Mock }

func (m *MockReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountReceivable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepository) FindAll(ctx context.Context, filter finance.InvoiceFilter) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepository) Count(ctx context.Context, filter finance.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceivableRepository) Save(ctx context.Context, receivable *finance.AccountReceivable) error {
	return m.Called(ctx, receivable).Error(0)
}

func (m *MockReceivableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReceivableRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepository) FindOpen(ctx context.Context) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx)
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepository) Summarize(ctx context.Context, asOf time.Time) (*finance.InvoiceSummary, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.InvoiceSummary), args.Error(1)
}

type MockBudgetRepository struct{ mock.Mock }

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
	return m.Called(ctx, budget).Error(0)
}

func (m *MockBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
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

type MockForecastRepository struct{ mock.Mock }

func (m *MockForecastRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashFlowForecast, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.CashFlowForecast), args.Error(1)
}

func (m *MockForecastRepository) FindAll(ctx context.Context, filter finance.CashFlowForecastFilter) ([]finance.CashFlowForecast, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.CashFlowForecast), args.Error(1)
}

func (m *MockForecastRepository) Count(ctx context.Context, filter finance.CashFlowForecastFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockForecastRepository) Save(ctx context.Context, forecast *finance.CashFlowForecast) error {
	return m.Called(ctx, forecast).Error(0)
}

func (m *MockForecastRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockForecastRepository) FindEndingBelow(ctx context.Context, threshold decimal.Decimal) ([]finance.CashFlowForecast, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]finance.CashFlowForecast), args.Error(1)
}

func (m *MockForecastRepository) FindLatest(ctx context.Context) (*finance.CashFlowForecast, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.CashFlowForecast), args.Error(1)
}

type MockIncomeStatementRepository struct{ mock.Mock }

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
	return m.Called(ctx, statement).Error(0)
}

func (m *MockIncomeStatementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIncomeStatementRepository) FindLatest(ctx context.Context) (*finance.IncomeStatement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.IncomeStatement), args.Error(1)
}

type MockWorkingCapitalRepository struct{ mock.Mock }

func (m *MockWorkingCapitalRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.WorkingCapital, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.WorkingCapital), args.Error(1)
}

func (m *MockWorkingCapitalRepository) FindAll(ctx context.Context, filter finance.StatementFilter) ([]finance.WorkingCapital, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.WorkingCapital), args.Error(1)
}

func (m *MockWorkingCapitalRepository) Count(ctx context.Context, filter finance.StatementFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkingCapitalRepository) Save(ctx context.Context, snapshot *finance.WorkingCapital) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *MockWorkingCapitalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockWorkingCapitalRepository) FindLatest(ctx context.Context) (*finance.WorkingCapital, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.WorkingCapital), args.Error(1)
}

var (
	_ finance.AccountPayableRepository    = (*MockPayableRepository)(nil)
	_ finance.AccountReceivableRepository = (*MockReceivableRepository)(nil)
	_ finance.BudgetRepository            = (*MockBudgetRepository)(nil)
	_ finance.CashFlowForecastRepository  = (*MockForecastRepository)(nil)
	_ finance.IncomeStatementRepository   = (*MockIncomeStatementRepository)(nil)
	_ finance.WorkingCapitalRepository    = (*MockWorkingCapitalRepository)(nil)
)
