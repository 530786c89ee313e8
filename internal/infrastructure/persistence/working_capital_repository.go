package persistence

import (
	"context"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWorkingCapitalRepository implements WorkingCapitalRepository using GORM
type GormWorkingCapitalRepository struct {
	db    *gorm.DB
	store statementStore[models.WorkingCapitalModel]
}

// NewGormWorkingCapitalRepository creates a new GormWorkingCapitalRepository
func NewGormWorkingCapitalRepository(db *gorm.DB) *GormWorkingCapitalRepository {
	return &GormWorkingCapitalRepository{
		db: db,
		store: statementStore[models.WorkingCapitalModel]{
			db:         db,
			dateColumn: "as_of_date",
			sortFields: WorkingCapitalSortFields,
		},
	}
}

// FindByID finds a working capital snapshot by ID
func (r *GormWorkingCapitalRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.WorkingCapital, error) {
	model, err := findByID[models.WorkingCapitalModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds working capital snapshots within the filter's date range
func (r *GormWorkingCapitalRepository) FindAll(ctx context.Context, filter finance.StatementFilter) ([]finance.WorkingCapital, error) {
	rows, err := r.store.findAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.WorkingCapitalModel).ToDomain), nil
}

// Count counts working capital snapshots within the filter's date range
func (r *GormWorkingCapitalRepository) Count(ctx context.Context, filter finance.StatementFilter) (int64, error) {
	return r.store.count(ctx, filter)
}

// Save creates or updates a working capital snapshot
func (r *GormWorkingCapitalRepository) Save(ctx context.Context, snapshot *finance.WorkingCapital) error {
	return r.db.WithContext(ctx).Save(models.WorkingCapitalModelFromDomain(snapshot)).Error
}

// Delete deletes a working capital snapshot
func (r *GormWorkingCapitalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.WorkingCapitalModel](ctx, r.db, id)
}

// FindLatest returns the working capital snapshot with the latest as_of_date
func (r *GormWorkingCapitalRepository) FindLatest(ctx context.Context) (*finance.WorkingCapital, error) {
	model, err := findLatest[models.WorkingCapitalModel](ctx, r.db, "as_of_date")
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormWorkingCapitalRepository implements WorkingCapitalRepository
var _ finance.WorkingCapitalRepository = (*GormWorkingCapitalRepository)(nil)
