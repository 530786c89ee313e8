package persistence

import (
	"context"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormIncomeStatementRepository implements IncomeStatementRepository using GORM
type GormIncomeStatementRepository struct {
	db    *gorm.DB
	store statementStore[models.IncomeStatementModel]
}

// NewGormIncomeStatementRepository creates a new GormIncomeStatementRepository
func NewGormIncomeStatementRepository(db *gorm.DB) *GormIncomeStatementRepository {
	return &GormIncomeStatementRepository{
		db: db,
		store: statementStore[models.IncomeStatementModel]{
			db:         db,
			dateColumn: "period_end",
			sortFields: IncomeStatementSortFields,
		},
	}
}

// FindByID finds a income statement by ID
func (r *GormIncomeStatementRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.IncomeStatement, error) {
	model, err := findByID[models.IncomeStatementModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds income statements within the filter's date range
func (r *GormIncomeStatementRepository) FindAll(ctx context.Context, filter finance.StatementFilter) ([]finance.IncomeStatement, error) {
	rows, err := r.store.findAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.IncomeStatementModel).ToDomain), nil
}

// Count counts income statements within the filter's date range
func (r *GormIncomeStatementRepository) Count(ctx context.Context, filter finance.StatementFilter) (int64, error) {
	return r.store.count(ctx, filter)
}

// Save creates or updates a income statement
func (r *GormIncomeStatementRepository) Save(ctx context.Context, statement *finance.IncomeStatement) error {
	return r.db.WithContext(ctx).Save(models.IncomeStatementModelFromDomain(statement)).Error
}

// Delete deletes a income statement
func (r *GormIncomeStatementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.IncomeStatementModel](ctx, r.db, id)
}

// FindLatest returns the income statement with the latest period_end
func (r *GormIncomeStatementRepository) FindLatest(ctx context.Context) (*finance.IncomeStatement, error) {
	model, err := findLatest[models.IncomeStatementModel](ctx, r.db, "period_end")
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormIncomeStatementRepository implements IncomeStatementRepository
var _ finance.IncomeStatementRepository = (*GormIncomeStatementRepository)(nil)
