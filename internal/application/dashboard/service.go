// Package dashboard assembles the read-only rollups shown on the finance
// dashboard: the summary, risks, insights and the aging report.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/finops/backend/internal/infrastructure/cache"
	"github.com/finops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Config holds the dashboard thresholds
type Config struct {
	CashShortfallThreshold decimal.Decimal
	UpcomingDays           int
	SevereOverdueDays      int
	BudgetWarningPercent   decimal.Decimal
	CacheTTL               time.Duration
}

// DefaultConfig returns the default thresholds
func DefaultConfig() Config {
	return Config{
		CashShortfallThreshold: calc.DefaultCashShortfallThreshold,
		UpcomingDays:           7,
		SevereOverdueDays:      30,
		BudgetWarningPercent:   decimal.NewFromInt(90),
	}
}

// Repositories are the read sources of the dashboard
type Repositories struct {
	Payables         finance.AccountPayableRepository
	Receivables      finance.AccountReceivableRepository
	Budgets          finance.BudgetRepository
	Forecasts        finance.CashFlowForecastRepository
	IncomeStatements finance.IncomeStatementRepository
	WorkingCapital   finance.WorkingCapitalRepository
}

// Service builds dashboard views
type Service struct {
	repos   Repositories
	cfg     Config
	cache   cache.Store
	metrics *telemetry.FinanceMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures the Service
type Option func(*Service)

// WithCache caches the summary for cfg.CacheTTL
func WithCache(store cache.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.cache = store
		}
	}
}

// WithMetrics records build latency and raised risks
func WithMetrics(m *telemetry.FinanceMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a dashboard Service. Zero thresholds fall back to DefaultConfig.
func NewService(repos Repositories, cfg Config, opts ...Option) *Service {
	def := DefaultConfig()
	if !cfg.CashShortfallThreshold.IsPositive() {
		cfg.CashShortfallThreshold = def.CashShortfallThreshold
	}
	if cfg.UpcomingDays <= 0 {
		cfg.UpcomingDays = def.UpcomingDays
	}
	if cfg.SevereOverdueDays <= 0 {
		cfg.SevereOverdueDays = def.SevereOverdueDays
	}
	if !cfg.BudgetWarningPercent.IsPositive() {
		cfg.BudgetWarningPercent = def.BudgetWarningPercent
	}

	s := &Service{
		repos:  repos,
		cfg:    cfg,
		cache:  cache.NoopStore{},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary returns the landing view, served from cache when fresh
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "summary")
	defer span.End()

	now := s.now()
	key := "dashboard:summary:" + now.UTC().Format(dateLayout)

	if s.cfg.CacheTTL > 0 {
		var cached Summary
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	start := time.Now()
	summary, err := s.buildSummary(ctx, now)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.metrics.RecordDashboardBuild(ctx, "summary", time.Since(start))

	if s.cfg.CacheTTL > 0 {
		if err := s.cache.Set(ctx, key, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("Dashboard cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return summary, nil
}

func (s *Service) buildSummary(ctx context.Context, now time.Time) (*Summary, error) {
	payables, err := s.repos.Payables.Summarize(ctx, now)
	if err != nil {
		return nil, err
	}
	receivables, err := s.repos.Receivables.Summarize(ctx, now)
	if err != nil {
		return nil, err
	}
	budgets, err := s.repos.Budgets.Totals(ctx, nil)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		AsOf:        calc.StartOfDay(now).Format(dateLayout),
		Payables:    toInvoiceTotals(payables),
		Receivables: toInvoiceTotals(receivables),
		Budgets: BudgetSnapshot{
			Count:              budgets.Count,
			Revised:            budgets.Revised,
			Utilised:           budgets.Utilised,
			Remaining:          budgets.Remaining,
			UtilisationPercent: calc.Percent(budgets.Utilised, budgets.Revised),
		},
		GeneratedAt: now.UTC(),
	}

	forecast, err := s.repos.Forecasts.FindLatest(ctx)
	if err := ignoreNotFound(err); err != nil {
		return nil, err
	}
	if forecast != nil {
		summary.CashForecast = &ForecastSnapshot{
			ID:                 forecast.ID,
			Period:             forecast.Period,
			EndingCashPosition: forecast.EndingCashPosition,
			CashShortfall:      forecast.CashShortfall,
		}
	}

	wc, err := s.repos.WorkingCapital.FindLatest(ctx)
	if err := ignoreNotFound(err); err != nil {
		return nil, err
	}
	if wc != nil {
		summary.WorkingCapital = &WorkingCapitalSnapshot{
			ID:             wc.ID,
			AsOfDate:       wc.AsOfDate.Format(dateLayout),
			WorkingCapital: wc.NetWorkingCapital,
			CurrentRatio:   wc.CurrentRatio,
			QuickRatio:     wc.QuickRatio,
		}
	}

	income, err := s.repos.IncomeStatements.FindLatest(ctx)
	if err := ignoreNotFound(err); err != nil {
		return nil, err
	}
	if income != nil {
		summary.Income = &IncomeSnapshot{
			ID:        income.ID,
			PeriodEnd: income.PeriodEnd.Format(dateLayout),
			Revenue:   income.Revenue,
			NetIncome: income.NetIncome,
			NetMargin: income.NetMargin,
		}
	}

	risks, err := s.collectRisks(ctx, now)
	if err != nil {
		return nil, err
	}
	for _, r := range risks {
		summary.Risks.add(r.Severity)
	}
	return summary, nil
}

func toInvoiceTotals(s *finance.InvoiceSummary) InvoiceTotals {
	return InvoiceTotals{
		Count:         s.Count,
		OpenCount:     s.OpenCount,
		TotalAmount:   s.TotalAmount,
		Outstanding:   s.Outstanding,
		OverdueCount:  s.OverdueCount,
		OverdueAmount: s.OverdueAmount,
	}
}

func ignoreNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}
