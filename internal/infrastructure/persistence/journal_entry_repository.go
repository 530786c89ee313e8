package persistence

import (
	"context"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormJournalEntryRepository implements JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// FindByID finds a journal entry by ID
func (r *GormJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.JournalEntry, error) {
	model, err := findByID[models.JournalEntryModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds journal entries matching the filter
func (r *GormJournalEntryRepository) FindAll(ctx context.Context, filter finance.JournalEntryFilter) ([]finance.JournalEntry, error) {
	var rows []models.JournalEntryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.JournalEntryModel{}), filter)
	if err := applyPage(query, filter.Filter, JournalEntrySortFields).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.JournalEntryModel).ToDomain), nil
}

// Count counts journal entries matching the filter
func (r *GormJournalEntryRepository) Count(ctx context.Context, filter finance.JournalEntryFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.JournalEntryModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a journal entry
func (r *GormJournalEntryRepository) Save(ctx context.Context, entry *finance.JournalEntry) error {
	return r.db.WithContext(ctx).Save(models.JournalEntryModelFromDomain(entry)).Error
}

// Delete deletes a journal entry
func (r *GormJournalEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.JournalEntryModel](ctx, r.db, id)
}

func (r *GormJournalEntryRepository) applyFilter(query *gorm.DB, filter finance.JournalEntryFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if code := strings.TrimSpace(filter.AccountCode); code != "" {
		query = query.Where("account_code = ?", code)
	}
	return applyDateRange(query, "entry_date", filter.EntryDate)
}

// Ensure GormJournalEntryRepository implements JournalEntryRepository
var _ finance.JournalEntryRepository = (*GormJournalEntryRepository)(nil)
