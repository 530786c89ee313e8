package persistence

import (
	"context"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCashFlowStatementRepository implements CashFlowStatementRepository using GORM
type GormCashFlowStatementRepository struct {
	db    *gorm.DB
	store statementStore[models.CashFlowStatementModel]
}

// NewGormCashFlowStatementRepository creates a new GormCashFlowStatementRepository
func NewGormCashFlowStatementRepository(db *gorm.DB) *GormCashFlowStatementRepository {
	return &GormCashFlowStatementRepository{
		db: db,
		store: statementStore[models.CashFlowStatementModel]{
			db:         db,
			dateColumn: "period_end",
			sortFields: CashFlowStatementSortFields,
		},
	}
}

// FindByID finds a cash flow statement by ID
func (r *GormCashFlowStatementRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashFlowStatement, error) {
	model, err := findByID[models.CashFlowStatementModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds cash flow statements within the filter's date range
func (r *GormCashFlowStatementRepository) FindAll(ctx context.Context, filter finance.StatementFilter) ([]finance.CashFlowStatement, error) {
	rows, err := r.store.findAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.CashFlowStatementModel).ToDomain), nil
}

// Count counts cash flow statements within the filter's date range
func (r *GormCashFlowStatementRepository) Count(ctx context.Context, filter finance.StatementFilter) (int64, error) {
	return r.store.count(ctx, filter)
}

// Save creates or updates a cash flow statement
func (r *GormCashFlowStatementRepository) Save(ctx context.Context, statement *finance.CashFlowStatement) error {
	return r.db.WithContext(ctx).Save(models.CashFlowStatementModelFromDomain(statement)).Error
}

// Delete deletes a cash flow statement
func (r *GormCashFlowStatementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.CashFlowStatementModel](ctx, r.db, id)
}

// Ensure GormCashFlowStatementRepository implements CashFlowStatementRepository
var _ finance.CashFlowStatementRepository = (*GormCashFlowStatementRepository)(nil)
