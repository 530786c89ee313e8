package persistence

import (
	"context"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by ID
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.PurchaseOrder, error) {
	model, err := findByID[models.PurchaseOrderModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter finance.PurchaseOrderFilter) ([]finance.PurchaseOrder, error) {
	var rows []models.PurchaseOrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}), filter)
	if err := applyPage(query, filter.Filter, PurchaseOrderSortFields).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.PurchaseOrderModel).ToDomain), nil
}

// Count counts purchase orders matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter finance.PurchaseOrderFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a purchase order
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *finance.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(models.PurchaseOrderModelFromDomain(order)).Error
}

// Delete deletes a purchase order
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.PurchaseOrderModel](ctx, r.db, id)
}

func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter finance.PurchaseOrderFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = applyContains(query, "vendor_name", filter.VendorName)
	return applyDateRange(query, "order_date", filter.OrderDate)
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ finance.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
