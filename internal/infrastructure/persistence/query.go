package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// applyPage applies ordering, limit and offset. Unknown order columns fall
// back to created_at; ties are broken by id so pages are stable.
func applyPage(query *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	filter = filter.Normalize()
	orderBy := ValidateSortField(filter.OrderBy, allowed, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.
		Order(orderBy + " " + orderDir).
		Order("id " + orderDir).
		Limit(filter.Limit).
		Offset(filter.Offset)
}

// applyDateRange bounds column by r; both ends are inclusive calendar days
func applyDateRange(query *gorm.DB, column string, r finance.DateRange) *gorm.DB {
	if r.From != nil {
		query = query.Where(column+" >= ?", calc.StartOfDay(*r.From))
	}
	if r.To != nil {
		query = query.Where(column+" <= ?", calc.StartOfDay(*r.To))
	}
	return query
}

// applyContains adds a case-insensitive substring match on column
func applyContains(query *gorm.DB, column, value string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" {
		return query
	}
	return query.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(value)+"%")
}

func findByID[M any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*M, error) {
	var model M
	if err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &model, nil
}

func deleteByID[M any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// findLatest returns the row with the greatest value of column
func findLatest[M any](ctx context.Context, db *gorm.DB, column string) (*M, error) {
	var model M
	err := db.WithContext(ctx).
		Order(column + " DESC").
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &model, nil
}

// toDomainSlice converts loaded models into domain values
func toDomainSlice[M any, E any](rows []M, convert func(*M) *E) []E {
	result := make([]E, len(rows))
	for i := range rows {
		result[i] = *convert(&rows[i])
	}
	return result
}

// today returns the current calendar day; overridden in tests
var today = func() time.Time {
	return calc.StartOfDay(time.Now())
}
