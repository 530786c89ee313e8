package persistence

import (
	"context"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCashFlowForecastRepository implements CashFlowForecastRepository using GORM
type GormCashFlowForecastRepository struct {
	db *gorm.DB
}

// NewGormCashFlowForecastRepository creates a new GormCashFlowForecastRepository
func NewGormCashFlowForecastRepository(db *gorm.DB) *GormCashFlowForecastRepository {
	return &GormCashFlowForecastRepository{db: db}
}

// FindByID finds a forecast by ID
func (r *GormCashFlowForecastRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashFlowForecast, error) {
	model, err := findByID[models.CashFlowForecastModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds forecasts matching the filter
func (r *GormCashFlowForecastRepository) FindAll(ctx context.Context, filter finance.CashFlowForecastFilter) ([]finance.CashFlowForecast, error) {
	var rows []models.CashFlowForecastModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CashFlowForecastModel{}), filter)
	if err := applyPage(query, filter.Filter, CashFlowForecastSortFields).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.CashFlowForecastModel).ToDomain), nil
}

// Count counts forecasts matching the filter
func (r *GormCashFlowForecastRepository) Count(ctx context.Context, filter finance.CashFlowForecastFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CashFlowForecastModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a forecast
func (r *GormCashFlowForecastRepository) Save(ctx context.Context, forecast *finance.CashFlowForecast) error {
	return r.db.WithContext(ctx).Save(models.CashFlowForecastModelFromDomain(forecast)).Error
}

// Delete deletes a forecast
func (r *GormCashFlowForecastRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.CashFlowForecastModel](ctx, r.db, id)
}

// FindEndingBelow returns forecasts whose ending cash position is strictly
// below threshold, lowest first
func (r *GormCashFlowForecastRepository) FindEndingBelow(ctx context.Context, threshold decimal.Decimal) ([]finance.CashFlowForecast, error) {
	var rows []models.CashFlowForecastModel
	err := r.db.WithContext(ctx).
		Where("ending_cash_position < ?", threshold).
		Order("ending_cash_position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.CashFlowForecastModel).ToDomain), nil
}

// FindLatest returns the forecast for the greatest period
func (r *GormCashFlowForecastRepository) FindLatest(ctx context.Context) (*finance.CashFlowForecast, error) {
	model, err := findLatest[models.CashFlowForecastModel](ctx, r.db, "period")
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormCashFlowForecastRepository) applyFilter(query *gorm.DB, filter finance.CashFlowForecastFilter) *gorm.DB {
	if period := strings.TrimSpace(filter.Period); period != "" {
		query = query.Where("period = ?", period)
	}
	if filter.Shortfall != nil {
		query = query.Where("cash_shortfall = ?", *filter.Shortfall)
	}
	return query
}

// Ensure GormCashFlowForecastRepository implements CashFlowForecastRepository
var _ finance.CashFlowForecastRepository = (*GormCashFlowForecastRepository)(nil)
