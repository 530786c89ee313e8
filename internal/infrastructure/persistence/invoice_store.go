package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// invoiceStore holds the queries shared by the payable and receivable
// repositories. Status filters and overdue checks are evaluated against the
// current day, never against the stored status column.
type invoiceStore[M any] struct {
	db           *gorm.DB
	counterparty string
	sortFields   map[string]bool
}

func (s invoiceStore[M]) scoped(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(new(M))
}

func (s invoiceStore[M]) applyFilter(query *gorm.DB, filter finance.InvoiceFilter) *gorm.DB {
	if filter.Status != nil {
		query = applyPaymentStatus(query, *filter.Status, today())
	}
	query = applyContains(query, s.counterparty, filter.Counterparty)
	return applyDateRange(query, "due_date", filter.DueDate)
}

func applyPaymentStatus(query *gorm.DB, status calc.PaymentStatus, day time.Time) *gorm.DB {
	switch status {
	case calc.StatusPaid:
		return query.Where("balance_due <= 0")
	case calc.StatusOverdue:
		return query.Where("balance_due > 0 AND due_date < ?", day)
	default:
		return query.Where("balance_due > 0 AND due_date >= ?", day)
	}
}

func (s invoiceStore[M]) findAll(ctx context.Context, filter finance.InvoiceFilter) ([]M, error) {
	var rows []M
	query := s.applyFilter(s.scoped(ctx), filter)
	if err := applyPage(query, filter.Filter, s.sortFields).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s invoiceStore[M]) count(ctx context.Context, filter finance.InvoiceFilter) (int64, error) {
	var count int64
	if err := s.applyFilter(s.scoped(ctx), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s invoiceStore[M]) findOverdue(ctx context.Context, asOf time.Time) ([]M, error) {
	var rows []M
	err := s.scoped(ctx).
		Where("balance_due > 0 AND due_date < ?", calc.StartOfDay(asOf)).
		Order("due_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s invoiceStore[M]) findDueBetween(ctx context.Context, from, to time.Time) ([]M, error) {
	var rows []M
	err := s.scoped(ctx).
		Where("balance_due > 0 AND due_date >= ? AND due_date <= ?", calc.StartOfDay(from), calc.StartOfDay(to)).
		Order("due_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s invoiceStore[M]) findOpen(ctx context.Context) ([]M, error) {
	var rows []M
	if err := s.scoped(ctx).Where("balance_due > 0").Order("due_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s invoiceStore[M]) summarize(ctx context.Context, asOf time.Time) (*finance.InvoiceSummary, error) {
	var totals struct {
		Count       int64
		OpenCount   int64
		TotalAmount decimal.Decimal
		Outstanding decimal.Decimal
	}
	err := s.scoped(ctx).
		Select("COUNT(*) as count, " +
			"COALESCE(SUM(CASE WHEN balance_due > 0 THEN 1 ELSE 0 END), 0) as open_count, " +
			"COALESCE(SUM(total_amount), 0) as total_amount, " +
			"COALESCE(SUM(balance_due), 0) as outstanding").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize invoices: %w", err)
	}

	var overdue struct {
		Count  int64
		Amount decimal.Decimal
	}
	err = s.scoped(ctx).
		Select("COUNT(*) as count, COALESCE(SUM(balance_due), 0) as amount").
		Where("balance_due > 0 AND due_date < ?", calc.StartOfDay(asOf)).
		Scan(&overdue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize overdue invoices: %w", err)
	}

	return &finance.InvoiceSummary{
		Count:         totals.Count,
		OpenCount:     totals.OpenCount,
		TotalAmount:   totals.TotalAmount.Round(2),
		Outstanding:   totals.Outstanding.Round(2),
		OverdueCount:  overdue.Count,
		OverdueAmount: overdue.Amount.Round(2),
	}, nil
}
