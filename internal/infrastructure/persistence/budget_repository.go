package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBudgetRepository implements BudgetRepository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// FindByID finds a budget by ID
func (r *GormBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Budget, error) {
	model, err := findByID[models.BudgetModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds budgets matching the filter
func (r *GormBudgetRepository) FindAll(ctx context.Context, filter finance.BudgetFilter) ([]finance.Budget, error) {
	var rows []models.BudgetModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BudgetModel{}), filter)
	if err := applyPage(query, filter.Filter, BudgetSortFields).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.BudgetModel).ToDomain), nil
}

// Count counts budgets matching the filter
func (r *GormBudgetRepository) Count(ctx context.Context, filter finance.BudgetFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BudgetModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a budget
func (r *GormBudgetRepository) Save(ctx context.Context, budget *finance.Budget) error {
	return r.db.WithContext(ctx).Save(models.BudgetModelFromDomain(budget)).Error
}

// Delete deletes a budget
func (r *GormBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.BudgetModel](ctx, r.db, id)
}

// FindUtilisedAtLeast returns budgets at or above the given utilisation percent,
// most utilised first
func (r *GormBudgetRepository) FindUtilisedAtLeast(ctx context.Context, percent decimal.Decimal) ([]finance.Budget, error) {
	var rows []models.BudgetModel
	err := r.db.WithContext(ctx).
		Where("utilisation_percent >= ?", percent).
		Order("utilisation_percent DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.BudgetModel).ToDomain), nil
}

// Totals aggregates budgets, optionally restricted to one fiscal year
func (r *GormBudgetRepository) Totals(ctx context.Context, fiscalYear *int) (*finance.BudgetTotals, error) {
	var result struct {
		Count     int64
		Original  decimal.Decimal
		Revised   decimal.Decimal
		Utilised  decimal.Decimal
		Remaining decimal.Decimal
	}
	query := r.db.WithContext(ctx).Model(&models.BudgetModel{}).
		Select("COUNT(*) as count, " +
			"COALESCE(SUM(original_amount), 0) as original, " +
			"COALESCE(SUM(revised_amount), 0) as revised, " +
			"COALESCE(SUM(total_utilised), 0) as utilised, " +
			"COALESCE(SUM(remaining_amount), 0) as remaining")
	if fiscalYear != nil {
		query = query.Where("fiscal_year = ?", *fiscalYear)
	}
	if err := query.Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to total budgets: %w", err)
	}
	return &finance.BudgetTotals{
		Count:     result.Count,
		Original:  result.Original.Round(2),
		Revised:   result.Revised.Round(2),
		Utilised:  result.Utilised.Round(2),
		Remaining: result.Remaining.Round(2),
	}, nil
}

func (r *GormBudgetRepository) applyFilter(query *gorm.DB, filter finance.BudgetFilter) *gorm.DB {
	if filter.FiscalYear != nil {
		query = query.Where("fiscal_year = ?", *filter.FiscalYear)
	}
	if dept := strings.TrimSpace(filter.Department); dept != "" {
		query = query.Where("department = ?", dept)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	return query
}

// Ensure GormBudgetRepository implements BudgetRepository
var _ finance.BudgetRepository = (*GormBudgetRepository)(nil)
