package persistence

import (
	"context"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseReportRepository implements ExpenseReportRepository using GORM
type GormExpenseReportRepository struct {
	db *gorm.DB
}

// NewGormExpenseReportRepository creates a new GormExpenseReportRepository
func NewGormExpenseReportRepository(db *gorm.DB) *GormExpenseReportRepository {
	return &GormExpenseReportRepository{db: db}
}

// FindByID finds an expense report by ID
func (r *GormExpenseReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseReport, error) {
	model, err := findByID[models.ExpenseReportModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds expense reports matching the filter
func (r *GormExpenseReportRepository) FindAll(ctx context.Context, filter finance.ExpenseReportFilter) ([]finance.ExpenseReport, error) {
	var rows []models.ExpenseReportModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseReportModel{}), filter)
	if err := applyPage(query, filter.Filter, ExpenseReportSortFields).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.ExpenseReportModel).ToDomain), nil
}

// Count counts expense reports matching the filter
func (r *GormExpenseReportRepository) Count(ctx context.Context, filter finance.ExpenseReportFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseReportModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an expense report
func (r *GormExpenseReportRepository) Save(ctx context.Context, report *finance.ExpenseReport) error {
	return r.db.WithContext(ctx).Save(models.ExpenseReportModelFromDomain(report)).Error
}

// Delete deletes an expense report
func (r *GormExpenseReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.ExpenseReportModel](ctx, r.db, id)
}

func (r *GormExpenseReportRepository) applyFilter(query *gorm.DB, filter finance.ExpenseReportFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = applyContains(query, "employee_name", filter.EmployeeName)
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	return applyDateRange(query, "report_date", filter.ReportDate)
}

// Ensure GormExpenseReportRepository implements ExpenseReportRepository
var _ finance.ExpenseReportRepository = (*GormExpenseReportRepository)(nil)
