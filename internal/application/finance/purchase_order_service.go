package finance

import (
	"context"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// PurchaseOrderService handles purchase order operations
type PurchaseOrderService struct {
	repo finance.PurchaseOrderRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(repo finance.PurchaseOrderRepository) *PurchaseOrderService {
	return &PurchaseOrderService{repo: repo}
}

// Create creates a purchase order and derives its totals
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	orderDate, err := ParseDate("order_date", req.OrderDate)
	if err != nil {
		return nil, err
	}
	po, err := finance.NewPurchaseOrder(req.PONumber, req.VendorName, orderDate, toPurchaseOrderItems(req.Items))
	if err != nil {
		return nil, err
	}
	if po.ExpectedDate, err = parseOptionalDate("expected_date", req.ExpectedDate); err != nil {
		return nil, err
	}
	setDecimal(&po.TaxAmount, req.TaxAmount)
	setDecimal(&po.ShippingAmount, req.ShippingAmount)
	if req.Status != "" {
		po.Status = finance.PurchaseOrderStatus(req.Status)
	}
	po.Notes = strings.TrimSpace(req.Notes)
	return s.save(ctx, po)
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

// List returns a page of purchase orders and the total match count
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	dates, err := filter.Range()
	if err != nil {
		return nil, 0, err
	}
	domainFilter := finance.PurchaseOrderFilter{
		Filter:     filter.ListQuery.Filter(),
		VendorName: strings.TrimSpace(filter.VendorName),
		OrderDate:  dates,
	}
	if filter.Status != "" {
		status := finance.PurchaseOrderStatus(filter.Status)
		domainFilter.Status = &status
	}

	orders, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// Update applies a partial update and recomputes the totals
func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&po.PONumber, req.PONumber)
	setString(&po.VendorName, req.VendorName)
	if err := setDate(&po.OrderDate, "order_date", req.OrderDate); err != nil {
		return nil, err
	}
	if err := setOptionalDate(&po.ExpectedDate, "expected_date", req.ExpectedDate); err != nil {
		return nil, err
	}
	if req.Items != nil {
		po.Items = toPurchaseOrderItems(req.Items)
	}
	setDecimal(&po.TaxAmount, req.TaxAmount)
	setDecimal(&po.ShippingAmount, req.ShippingAmount)
	if req.Status != nil {
		po.Status = finance.PurchaseOrderStatus(*req.Status)
	}
	setString(&po.Notes, req.Notes)
	po.Touch()
	return s.save(ctx, po)
}

// Delete deletes a purchase order
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *PurchaseOrderService) save(ctx context.Context, po *finance.PurchaseOrder) (*PurchaseOrderResponse, error) {
	if err := po.Validate(); err != nil {
		return nil, err
	}
	po.Recalculate()
	if err := s.repo.Save(ctx, po); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}
