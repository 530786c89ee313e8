package finance

import (
	"strings"
	"time"

	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSubmitted PurchaseOrderStatus = "submitted"
	PurchaseOrderStatusApproved  PurchaseOrderStatus = "approved"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSubmitted, PurchaseOrderStatusApproved,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// PurchaseOrderItem is one line of a purchase order
type PurchaseOrderItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal returns quantity * unit price rounded to cents
func (i PurchaseOrderItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice).Round(2)
}

// PurchaseOrder is an order placed with a vendor
type PurchaseOrder struct {
	shared.BaseEntity
	PONumber       string
	VendorName     string
	OrderDate      time.Time
	ExpectedDate   *time.Time
	Items          []PurchaseOrderItem
	TaxAmount      decimal.Decimal
	ShippingAmount decimal.Decimal
	Status         PurchaseOrderStatus
	Notes          string

	Subtotal    decimal.Decimal
	TotalAmount decimal.Decimal
}

// NewPurchaseOrder creates a draft purchase order
func NewPurchaseOrder(poNumber, vendorName string, orderDate time.Time, items []PurchaseOrderItem) (*PurchaseOrder, error) {
	po := &PurchaseOrder{
		BaseEntity:     shared.NewBaseEntity(),
		PONumber:       strings.TrimSpace(poNumber),
		VendorName:     strings.TrimSpace(vendorName),
		OrderDate:      orderDate,
		Items:          items,
		TaxAmount:      decimal.Zero,
		ShippingAmount: decimal.Zero,
		Status:         PurchaseOrderStatusDraft,
	}
	if err := po.Validate(); err != nil {
		return nil, err
	}
	po.Recalculate()
	return po, nil
}

// Validate checks required fields, items and amounts
func (po *PurchaseOrder) Validate() error {
	if po.PONumber == "" {
		return shared.NewValidationError("po_number is required")
	}
	if po.VendorName == "" {
		return shared.NewValidationError("vendor_name is required")
	}
	if po.OrderDate.IsZero() {
		return shared.NewValidationError("order_date is required")
	}
	if po.ExpectedDate != nil && po.ExpectedDate.Before(po.OrderDate) {
		return shared.NewValidationError("expected_date cannot be before order_date")
	}
	if !po.Status.IsValid() {
		return shared.NewValidationError("status must be one of draft, submitted, approved, received, cancelled")
	}
	for _, item := range po.Items {
		if strings.TrimSpace(item.Description) == "" {
			return shared.NewValidationError("item description is required")
		}
		if !item.Quantity.IsPositive() {
			return shared.NewValidationError("item quantity must be greater than zero")
		}
		if item.UnitPrice.IsNegative() {
			return shared.NewValidationError("item unit_price cannot be negative")
		}
	}
	if po.TaxAmount.IsNegative() || po.ShippingAmount.IsNegative() {
		return shared.NewValidationError("tax_amount and shipping_amount cannot be negative")
	}
	return nil
}

// Recalculate refreshes subtotal and total
func (po *PurchaseOrder) Recalculate() {
	subtotal := decimal.Zero
	for _, item := range po.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	po.Subtotal = subtotal.Round(2)
	po.TotalAmount = total(po.Subtotal, po.TaxAmount, po.ShippingAmount)
}
