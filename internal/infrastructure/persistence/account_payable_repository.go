package persistence

import (
	"context"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountPayableRepository implements AccountPayableRepository using GORM
type GormAccountPayableRepository struct {
	db    *gorm.DB
	store invoiceStore[models.AccountPayableModel]
}

// NewGormAccountPayableRepository creates a new GormAccountPayableRepository
func NewGormAccountPayableRepository(db *gorm.DB) *GormAccountPayableRepository {
	return &GormAccountPayableRepository{
		db: db,
		store: invoiceStore[models.AccountPayableModel]{
			db:           db,
			counterparty: "vendor_name",
			sortFields:   AccountPayableSortFields,
		},
	}
}

// FindByID finds a payable by ID
func (r *GormAccountPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	model, err := findByID[models.AccountPayableModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds payables matching the filter
func (r *GormAccountPayableRepository) FindAll(ctx context.Context, filter finance.InvoiceFilter) ([]finance.AccountPayable, error) {
	rows, err := r.store.findAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.AccountPayableModel).ToDomain), nil
}

// Count counts payables matching the filter
func (r *GormAccountPayableRepository) Count(ctx context.Context, filter finance.InvoiceFilter) (int64, error) {
	return r.store.count(ctx, filter)
}

// Save creates or updates a payable
func (r *GormAccountPayableRepository) Save(ctx context.Context, payable *finance.AccountPayable) error {
	return r.db.WithContext(ctx).Save(models.AccountPayableModelFromDomain(payable)).Error
}

// Delete deletes a payable
func (r *GormAccountPayableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.AccountPayableModel](ctx, r.db, id)
}

// FindOverdue returns open payables due before the day of asOf
func (r *GormAccountPayableRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]finance.AccountPayable, error) {
	rows, err := r.store.findOverdue(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.AccountPayableModel).ToDomain), nil
}

// FindDueBetween returns open payables due within [from, to]
func (r *GormAccountPayableRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]finance.AccountPayable, error) {
	rows, err := r.store.findDueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.AccountPayableModel).ToDomain), nil
}

// FindOpen returns every payable with a balance
func (r *GormAccountPayableRepository) FindOpen(ctx context.Context) ([]finance.AccountPayable, error) {
	rows, err := r.store.findOpen(ctx)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.AccountPayableModel).ToDomain), nil
}

// Summarize aggregates payables as of asOf
func (r *GormAccountPayableRepository) Summarize(ctx context.Context, asOf time.Time) (*finance.InvoiceSummary, error) {
	return r.store.summarize(ctx, asOf)
}

// Ensure GormAccountPayableRepository implements AccountPayableRepository
var _ finance.AccountPayableRepository = (*GormAccountPayableRepository)(nil)
