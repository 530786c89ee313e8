package finance

import (
	"context"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashFlowForecastService handles cash flow forecast operations
type CashFlowForecastService struct {
	repo      finance.CashFlowForecastRepository
	threshold decimal.Decimal
}

// CashFlowForecastServiceOption configures a CashFlowForecastService
type CashFlowForecastServiceOption func(*CashFlowForecastService)

// WithShortfallThreshold sets the ending cash position below which a period is
// flagged as a shortfall
func WithShortfallThreshold(threshold decimal.Decimal) CashFlowForecastServiceOption {
	return func(s *CashFlowForecastService) {
		s.threshold = threshold
	}
}

// NewCashFlowForecastService creates a new CashFlowForecastService
func NewCashFlowForecastService(repo finance.CashFlowForecastRepository, opts ...CashFlowForecastServiceOption) *CashFlowForecastService {
	s := &CashFlowForecastService{repo: repo, threshold: calc.DefaultCashShortfallThreshold}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a forecast and derives its totals
func (s *CashFlowForecastService) Create(ctx context.Context, req CreateCashFlowForecastRequest) (*CashFlowForecastResponse, error) {
	f, err := finance.NewCashFlowForecast(req.Period, amountOrZero(req.BeginningBalance))
	if err != nil {
		return nil, err
	}
	if f.ForecastDate, err = parseOptionalDate("forecast_date", req.ForecastDate); err != nil {
		return nil, err
	}
	req.ForecastLines.apply(&f.Receipts, &f.Payments)
	f.Notes = strings.TrimSpace(req.Notes)
	return s.save(ctx, f)
}

// GetByID retrieves a forecast by ID
func (s *CashFlowForecastService) GetByID(ctx context.Context, id uuid.UUID) (*CashFlowForecastResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCashFlowForecastResponse(f)
	return &resp, nil
}

// List returns a page of forecasts and the total match count
func (s *CashFlowForecastService) List(ctx context.Context, filter CashFlowForecastListFilter) ([]CashFlowForecastResponse, int64, error) {
	domainFilter := finance.CashFlowForecastFilter{
		Filter:    filter.ListQuery.Filter(),
		Period:    strings.TrimSpace(filter.Period),
		Shortfall: filter.Shortfall,
	}

	forecasts, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CashFlowForecastResponse, len(forecasts))
	for i := range forecasts {
		responses[i] = ToCashFlowForecastResponse(&forecasts[i])
	}
	return responses, total, nil
}

// Update applies a partial update and recomputes the totals
func (s *CashFlowForecastService) Update(ctx context.Context, id uuid.UUID, req UpdateCashFlowForecastRequest) (*CashFlowForecastResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&f.Period, req.Period)
	if err := setOptionalDate(&f.ForecastDate, "forecast_date", req.ForecastDate); err != nil {
		return nil, err
	}
	setAmount(&f.BeginningBalance, req.BeginningBalance)
	req.ForecastLines.apply(&f.Receipts, &f.Payments)
	setString(&f.Notes, req.Notes)
	f.Touch()
	return s.save(ctx, f)
}

// Delete deletes a forecast
func (s *CashFlowForecastService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *CashFlowForecastService) save(ctx context.Context, f *finance.CashFlowForecast) (*CashFlowForecastResponse, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.Recalculate(s.threshold)
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	resp := ToCashFlowForecastResponse(f)
	return &resp, nil
}
