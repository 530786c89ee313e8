package persistence

import (
	"context"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountReceivableRepository implements AccountReceivableRepository using GORM
type GormAccountReceivableRepository struct {
	db    *gorm.DB
	store invoiceStore[models.AccountReceivableModel]
}

// NewGormAccountReceivableRepository creates a new GormAccountReceivableRepository
func NewGormAccountReceivableRepository(db *gorm.DB) *GormAccountReceivableRepository {
	return &GormAccountReceivableRepository{
		db: db,
		store: invoiceStore[models.AccountReceivableModel]{
			db:           db,
			counterparty: "customer_name",
			sortFields:   AccountReceivableSortFields,
		},
	}
}

// FindByID finds a receivable by ID
func (r *GormAccountReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountReceivable, error) {
	model, err := findByID[models.AccountReceivableModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds receivables matching the filter
func (r *GormAccountReceivableRepository) FindAll(ctx context.Context, filter finance.InvoiceFilter) ([]finance.AccountReceivable, error) {
	rows, err := r.store.findAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.AccountReceivableModel).ToDomain), nil
}

// Count counts receivables matching the filter
func (r *GormAccountReceivableRepository) Count(ctx context.Context, filter finance.InvoiceFilter) (int64, error) {
	return r.store.count(ctx, filter)
}

// Save creates or updates a receivable
func (r *GormAccountReceivableRepository) Save(ctx context.Context, receivable *finance.AccountReceivable) error {
	return r.db.WithContext(ctx).Save(models.AccountReceivableModelFromDomain(receivable)).Error
}

// Delete deletes a receivable
func (r *GormAccountReceivableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.AccountReceivableModel](ctx, r.db, id)
}

// FindOverdue returns open receivables due before the day of asOf
func (r *GormAccountReceivableRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]finance.AccountReceivable, error) {
	rows, err := r.store.findOverdue(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.AccountReceivableModel).ToDomain), nil
}

// FindDueBetween returns open receivables due within [from, to]
func (r *GormAccountReceivableRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]finance.AccountReceivable, error) {
	rows, err := r.store.findDueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.AccountReceivableModel).ToDomain), nil
}

// FindOpen returns every receivable with a balance
func (r *GormAccountReceivableRepository) FindOpen(ctx context.Context) ([]finance.AccountReceivable, error) {
	rows, err := r.store.findOpen(ctx)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.AccountReceivableModel).ToDomain), nil
}

// Summarize aggregates receivables as of asOf
func (r *GormAccountReceivableRepository) Summarize(ctx context.Context, asOf time.Time) (*finance.InvoiceSummary, error) {
	return r.store.summarize(ctx, asOf)
}

// Ensure GormAccountReceivableRepository implements AccountReceivableRepository
var _ finance.AccountReceivableRepository = (*GormAccountReceivableRepository)(nil)
