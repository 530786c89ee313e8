package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/finops/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	payables    *MockPayableRepository
	receivables *MockReceivableRepository
	budgets     *MockBudgetRepository
	forecasts   *MockForecastRepository
	income      *MockIncomeStatementRepository
	wc          *MockWorkingCapitalRepository
}

func newFixture() *fixture {
	return &fixture{
		payables:    new(MockPayableRepository),
		receivables: new(MockReceivableRepository),
		budgets:     new(MockBudgetRepository),
		forecasts:   new(MockForecastRepository),
		income:      new(MockIncomeStatementRepository),
		wc:          new(MockWorkingCapitalRepository),
	}
}

func (f *fixture) service(cfg Config, opts ...Option) *Service {
	svc := NewService(Repositories{
		Payables:         f.payables,
		Receivables:      f.receivables,
		Budgets:          f.budgets,
		Forecasts:        f.forecasts,
		IncomeStatements: f.income,
		WorkingCapital:   f.wc,
	}, cfg, opts...)
	svc.now = func() time.Time { return testNow }
	return svc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func payable(t *testing.T, number string, due time.Time, amount string) finance.AccountPayable {
	t.Helper()
	ap, err := finance.NewAccountPayable("Vendor "+number, number, due, dec(amount))
	require.NoError(t, err)
	ap.Recalculate(testNow)
	return *ap
}

func receivable(t *testing.T, number string, due time.Time, amount string) finance.AccountReceivable {
	t.Helper()
	ar, err := finance.NewAccountReceivable("Customer "+number, number, due, dec(amount))
	require.NoError(t, err)
	ar.Recalculate(testNow)
	return *ar
}

func forecast(t *testing.T, period, ending string) finance.CashFlowForecast {
	t.Helper()
	f, err := finance.NewCashFlowForecast(period, decimal.Zero)
	require.NoError(t, err)
	f.EndingCashPosition = dec(ending)
	f.CashShortfall = true
	return *f
}

func budget(t *testing.T, name, revised, actual string) finance.Budget {
	t.Helper()
	b, err := finance.NewBudget(name, 2024, dec(revised))
	require.NoError(t, err)
	b.ActualAmount = dec(actual)
	b.Recalculate()
	return *b
}

func TestService_Risks(t *testing.T) {
	f := newFixture()
	svc := f.service(Config{})

	ap1 := payable(t, "AP-1", day(2024, time.March, 1), "500")
	ap2 := payable(t, "AP-2", day(2024, time.June, 10), "2000")
	ar1 := receivable(t, "AR-1", day(2024, time.April, 1), "800")
	ar2 := receivable(t, "AR-2", day(2024, time.May, 10), "100")
	f1 := forecast(t, "2024-07", "-1500")
	f2 := forecast(t, "2024-08", "3000")
	f3 := forecast(t, "2024-09", "8000")

	f.payables.On("FindOverdue", mock.Anything, testNow).Return([]finance.AccountPayable{ap1, ap2}, nil)
	f.receivables.On("FindOverdue", mock.Anything, testNow).Return([]finance.AccountReceivable{ar1, ar2}, nil)
	f.forecasts.On("FindEndingBelow", mock.Anything, mock.Anything).Return([]finance.CashFlowForecast{f1, f2, f3}, nil)

	resp, err := svc.Risks(context.Background())
	require.NoError(t, err)

	order := make([]string, len(resp.Items))
	for i, item := range resp.Items {
		order[i] = item.ID
	}
	assert.Equal(t, []string{
		"cash_shortfall:" + f1.ID.String(),
		"overdue_payable:" + ap1.ID.String(),
		"cash_shortfall:" + f2.ID.String(),
		"overdue_receivable:" + ar1.ID.String(),
		"cash_shortfall:" + f3.ID.String(),
		"overdue_receivable:" + ar2.ID.String(),
		"overdue_payable:" + ap2.ID.String(),
	}, order)
	assert.Equal(t, SeverityCounts{Critical: 2, High: 2, Medium: 2, Low: 1, Total: 7}, resp.Summary)

	apRisk := resp.Items[1]
	assert.Equal(t, RiskOverduePayable, apRisk.Type)
	assert.Equal(t, SeverityCritical, apRisk.Severity)
	assert.Equal(t, 106, apRisk.DaysOverdue)
	assert.Equal(t, "90+ days", apRisk.AgingBucket)
	assert.Equal(t, "2024-03-01", apRisk.DueDate)
	assert.Equal(t, EntityAccountPayable, apRisk.EntityType)
	assert.Equal(t, ap1.ID, apRisk.EntityID)
	assertDecimal(t, "500", apRisk.Amount)
	assert.Contains(t, apRisk.Description, "$500.00")

	cashRisk := resp.Items[0]
	assert.Equal(t, "Cash shortfall forecast for 2024-07", cashRisk.Title)
	assert.Empty(t, cashRisk.DueDate)
}

func TestService_RisksEmpty(t *testing.T) {
	f := newFixture()
	svc := f.service(Config{})

	f.payables.On("FindOverdue", mock.Anything, testNow).Return([]finance.AccountPayable{}, nil)
	f.receivables.On("FindOverdue", mock.Anything, testNow).Return([]finance.AccountReceivable{}, nil)
	f.forecasts.On("FindEndingBelow", mock.Anything, mock.Anything).Return([]finance.CashFlowForecast{}, nil)

	resp, err := svc.Risks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.Summary.Total)
}

func TestService_RisksPropagatesErrors(t *testing.T) {
	f := newFixture()
	svc := f.service(Config{})
	f.payables.On("FindOverdue", mock.Anything, testNow).Return([]finance.AccountPayable(nil), assert.AnError)

	_, err := svc.Risks(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSeverityRules(t *testing.T) {
	overdue := []struct {
		days     int
		expected Severity
	}{
		{0, SeverityLow},
		{30, SeverityLow},
		{31, SeverityMedium},
		{60, SeverityMedium},
		{61, SeverityHigh},
		{90, SeverityHigh},
		{91, SeverityCritical},
	}
	for _, tt := range overdue {
		assert.Equal(t, tt.expected, OverdueSeverity(tt.days), "days=%d", tt.days)
	}

	threshold := dec("10000")
	cash := []struct {
		ending   string
		expected Severity
	}{
		{"-0.01", SeverityCritical},
		{"0", SeverityHigh},
		{"4999.99", SeverityHigh},
		{"5000", SeverityMedium},
		{"9999", SeverityMedium},
	}
	for _, tt := range cash {
		assert.Equal(t, tt.expected, CashSeverity(dec(tt.ending), threshold), "ending=%s", tt.ending)
	}
}

func TestService_Insights(t *testing.T) {
	f := newFixture()
	svc := f.service(Config{})
	today := day(2024, time.June, 15)
	until := day(2024, time.June, 22)

	dueToday := payable(t, "AP-U2", today, "1200")
	dueTomorrow := payable(t, "AP-U1", day(2024, time.June, 16), "300")
	dueLater := receivable(t, "AR-U1", day(2024, time.June, 20), "900")
	severeAP := payable(t, "AP-1", day(2024, time.March, 1), "500")
	recentAP := payable(t, "AP-2", day(2024, time.June, 10), "2000")
	severeAR := receivable(t, "AR-2", day(2024, time.May, 10), "100")
	over := budget(t, "Marketing", "1000", "1150")
	near := budget(t, "Travel", "1000", "920")

	f.payables.On("FindDueBetween", mock.Anything, today, until).Return([]finance.AccountPayable{dueTomorrow, dueToday}, nil)
	f.receivables.On("FindDueBetween", mock.Anything, today, until).Return([]finance.AccountReceivable{dueLater}, nil)
	f.payables.On("FindOverdue", mock.Anything, testNow).Return([]finance.AccountPayable{severeAP, recentAP}, nil)
	f.receivables.On("FindOverdue", mock.Anything, testNow).Return([]finance.AccountReceivable{severeAR}, nil)
	f.budgets.On("FindUtilisedAtLeast", mock.Anything, mock.Anything).Return([]finance.Budget{near, over}, nil)

	resp, err := svc.Insights(context.Background())
	require.NoError(t, err)

	type row struct {
		Type     string
		Priority Severity
	}
	rows := make([]row, len(resp.Items))
	for i, item := range resp.Items {
		rows[i] = row{item.Type, item.Priority}
	}
	assert.Equal(t, []row{
		{InsightSeverelyOverduePayable, SeverityCritical},
		{InsightUpcomingPayable, SeverityHigh},
		{InsightBudgetOverrun, SeverityHigh},
		{InsightUpcomingPayable, SeverityHigh},
		{InsightSeverelyOverdueReceivable, SeverityHigh},
		{InsightBudgetOverrun, SeverityMedium},
		{InsightUpcomingReceivable, SeverityMedium},
	}, rows)
	assert.Equal(t, SeverityCounts{Critical: 1, High: 4, Medium: 2, Total: 7}, resp.Summary)

	first := resp.Items[1]
	assert.Equal(t, dueToday.ID, first.EntityID)
	assert.Equal(t, "Payable AP-U2 to Vendor AP-U2 is due today", first.Title)
	require.NotNil(t, first.DaysUntilDue)
	assert.Equal(t, 0, *first.DaysUntilDue)

	overrun := resp.Items[2]
	assert.Equal(t, "Budget Marketing is over by $150.00", overrun.Title)
	assertDecimal(t, "1150", overrun.Amount)

	severe := resp.Items[4]
	require.NotNil(t, severe.DaysOverdue)
	assert.Equal(t, 36, *severe.DaysOverdue)

	assert.Equal(t, "Budget Travel is 92.0% utilised", resp.Items[5].Title)
}

func TestService_Aging(t *testing.T) {
	f := newFixture()
	svc := f.service(Config{})

	f.payables.On("FindOpen", mock.Anything).Return([]finance.AccountPayable{
		payable(t, "AP-1", day(2024, time.March, 1), "500"),
		payable(t, "AP-2", day(2024, time.June, 10), "2000"),
		payable(t, "AP-3", day(2024, time.July, 1), "700"),
	}, nil)
	f.receivables.On("FindOpen", mock.Anything).Return([]finance.AccountReceivable{
		receivable(t, "AR-1", day(2024, time.April, 1), "800"),
	}, nil)

	report, err := svc.Aging(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", report.AsOf)

	require.Len(t, report.Payables.Rows, 5)
	buckets := make([]string, 5)
	counts := make([]int, 5)
	for i, row := range report.Payables.Rows {
		buckets[i] = row.Bucket
		counts[i] = row.Count
	}
	assert.Equal(t, []string{"Current", "1-30 days", "31-60 days", "61-90 days", "90+ days"}, buckets)
	assert.Equal(t, []int{1, 1, 0, 0, 1}, counts)
	assertDecimal(t, "700", report.Payables.Rows[0].Amount)
	assertDecimal(t, "0", report.Payables.Rows[2].Amount)
	assert.Equal(t, 3, report.Payables.TotalCount)
	assertDecimal(t, "3200", report.Payables.TotalAmount)

	assert.Equal(t, 1, report.Receivables.Rows[3].Count)
	assertDecimal(t, "800", report.Receivables.Rows[3].Amount)
	assertDecimal(t, "800", report.Receivables.TotalAmount)
}

func stubSummary(t *testing.T, f *fixture) (*finance.WorkingCapital, *finance.IncomeStatement) {
	t.Helper()
	wc, err := finance.NewWorkingCapital(day(2024, time.May, 31), finance.WorkingCapitalLines{
		Cash:               dec("5000"),
		AccountsReceivable: dec("3000"),
		AccountsPayable:    dec("4000"),
	})
	require.NoError(t, err)
	income, err := finance.NewIncomeStatement(day(2024, time.January, 1), day(2024, time.March, 31), dec("1000"))
	require.NoError(t, err)

	f.payables.On("Summarize", mock.Anything, testNow).Return(&finance.InvoiceSummary{
		Count: 3, OpenCount: 2, TotalAmount: dec("3000"), Outstanding: dec("2500"),
		OverdueCount: 1, OverdueAmount: dec("500"),
	}, nil)
	f.receivables.On("Summarize", mock.Anything, testNow).Return(&finance.InvoiceSummary{
		TotalAmount: decimal.Zero, Outstanding: decimal.Zero, OverdueAmount: decimal.Zero,
	}, nil)
	f.budgets.On("Totals", mock.Anything, (*int)(nil)).Return(&finance.BudgetTotals{
		Count: 2, Original: dec("2000"), Revised: dec("2000"), Utilised: dec("2070"), Remaining: dec("-70"),
	}, nil)
	f.forecasts.On("FindLatest", mock.Anything).Return(nil, shared.ErrNotFound)
	f.wc.On("FindLatest", mock.Anything).Return(wc, nil)
	f.income.On("FindLatest", mock.Anything).Return(income, nil)
	f.payables.On("FindOverdue", mock.Anything, testNow).Return([]finance.AccountPayable{
		payable(t, "AP-1", day(2024, time.March, 1), "500"),
	}, nil)
	f.receivables.On("FindOverdue", mock.Anything, testNow).Return([]finance.AccountReceivable{}, nil)
	f.forecasts.On("FindEndingBelow", mock.Anything, mock.Anything).Return([]finance.CashFlowForecast{}, nil)
	return wc, income
}

func TestService_Summary(t *testing.T) {
	f := newFixture()
	svc := f.service(Config{})
	wc, income := stubSummary(t, f)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-06-15", summary.AsOf)
	assert.Equal(t, int64(1), summary.Payables.OverdueCount)
	assertDecimal(t, "2500", summary.Payables.Outstanding)
	assert.Nil(t, summary.CashForecast, "no forecast yet")

	assert.Equal(t, int64(2), summary.Budgets.Count)
	assertDecimal(t, "103.5", summary.Budgets.UtilisationPercent)

	require.NotNil(t, summary.WorkingCapital)
	assert.Equal(t, wc.ID, summary.WorkingCapital.ID)
	assertDecimal(t, "4000", summary.WorkingCapital.WorkingCapital)
	assertDecimal(t, "2", summary.WorkingCapital.CurrentRatio)

	require.NotNil(t, summary.Income)
	assert.Equal(t, income.ID, summary.Income.ID)
	assert.Equal(t, "2024-03-31", summary.Income.PeriodEnd)
	assertDecimal(t, "100", summary.Income.NetMargin)

	assert.Equal(t, SeverityCounts{Critical: 1, Total: 1}, summary.Risks)
}

func TestService_SummaryIsCached(t *testing.T) {
	f := newFixture()
	store := cache.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	svc := f.service(Config{CacheTTL: time.Minute}, WithCache(store))
	stubSummary(t, f)

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	second, err := svc.Summary(context.Background())
	require.NoError(t, err)

	f.payables.AssertNumberOfCalls(t, "Summarize", 1)
	assertDecimal(t, first.Payables.Outstanding.String(), second.Payables.Outstanding)
	assert.Equal(t, first.Risks, second.Risks)
	assert.Equal(t, 1, store.Len())
}

func TestService_SummaryWithoutCacheTTL(t *testing.T) {
	f := newFixture()
	store := cache.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	svc := f.service(Config{}, WithCache(store))
	stubSummary(t, f)

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	_, err = svc.Summary(context.Background())
	require.NoError(t, err)

	f.payables.AssertNumberOfCalls(t, "Summarize", 2)
	assert.Equal(t, 0, store.Len())
}

func TestService_SummaryErrors(t *testing.T) {
	f := newFixture()
	svc := f.service(Config{})
	f.payables.On("Summarize", mock.Anything, testNow).Return(nil, assert.AnError)

	_, err := svc.Summary(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(Repositories{}, Config{UpcomingDays: 14})
	assert.Equal(t, 14, svc.cfg.UpcomingDays)
	assert.Equal(t, 30, svc.cfg.SevereOverdueDays)
	assertDecimal(t, "10000", svc.cfg.CashShortfallThreshold)
	assertDecimal(t, "90", svc.cfg.BudgetWarningPercent)
}
