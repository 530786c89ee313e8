package persistence

import (
	"context"

	"github.com/finops/backend/internal/domain/finance"
	"gorm.io/gorm"
)

// statementStore holds list queries for dated statements filtered by a single
// reporting date column
type statementStore[M any] struct {
	db         *gorm.DB
	dateColumn string
	sortFields map[string]bool
}

func (s statementStore[M]) filtered(ctx context.Context, filter finance.StatementFilter) *gorm.DB {
	return applyDateRange(s.db.WithContext(ctx).Model(new(M)), s.dateColumn, filter.Date)
}

func (s statementStore[M]) findAll(ctx context.Context, filter finance.StatementFilter) ([]M, error) {
	var rows []M
	if err := applyPage(s.filtered(ctx, filter), filter.Filter, s.sortFields).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s statementStore[M]) count(ctx context.Context, filter finance.StatementFilter) (int64, error) {
	var count int64
	if err := s.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
