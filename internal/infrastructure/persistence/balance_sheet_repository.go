package persistence

import (
	"context"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBalanceSheetRepository implements BalanceSheetRepository using GORM
type GormBalanceSheetRepository struct {
	db    *gorm.DB
	store statementStore[models.BalanceSheetModel]
}

// NewGormBalanceSheetRepository creates a new GormBalanceSheetRepository
func NewGormBalanceSheetRepository(db *gorm.DB) *GormBalanceSheetRepository {
	return &GormBalanceSheetRepository{
		db: db,
		store: statementStore[models.BalanceSheetModel]{
			db:         db,
			dateColumn: "as_of_date",
			sortFields: BalanceSheetSortFields,
		},
	}
}

// FindByID finds a balance sheet by ID
func (r *GormBalanceSheetRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BalanceSheet, error) {
	model, err := findByID[models.BalanceSheetModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds balance sheets within the filter's date range
func (r *GormBalanceSheetRepository) FindAll(ctx context.Context, filter finance.StatementFilter) ([]finance.BalanceSheet, error) {
	rows, err := r.store.findAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.BalanceSheetModel).ToDomain), nil
}

// Count counts balance sheets within the filter's date range
func (r *GormBalanceSheetRepository) Count(ctx context.Context, filter finance.StatementFilter) (int64, error) {
	return r.store.count(ctx, filter)
}

// Save creates or updates a balance sheet
func (r *GormBalanceSheetRepository) Save(ctx context.Context, sheet *finance.BalanceSheet) error {
	return r.db.WithContext(ctx).Save(models.BalanceSheetModelFromDomain(sheet)).Error
}

// Delete deletes a balance sheet
func (r *GormBalanceSheetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.BalanceSheetModel](ctx, r.db, id)
}

// Ensure GormBalanceSheetRepository implements BalanceSheetRepository
var _ finance.BalanceSheetRepository = (*GormBalanceSheetRepository)(nil)
