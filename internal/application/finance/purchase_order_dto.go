package finance

import (
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest is one line of a purchase order request
type PurchaseOrderItemRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func toPurchaseOrderItems(items []PurchaseOrderItemRequest) []finance.PurchaseOrderItem {
	result := make([]finance.PurchaseOrderItem, len(items))
	for i, item := range items {
		result[i] = finance.PurchaseOrderItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return result
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	PONumber       string                     `json:"po_number" binding:"required,max=50"`
	VendorName     string                     `json:"vendor_name" binding:"required,max=200"`
	OrderDate      string                     `json:"order_date" binding:"required"`
	ExpectedDate   string                     `json:"expected_date"`
	Items          []PurchaseOrderItemRequest `json:"items" binding:"dive"`
	TaxAmount      *decimal.Decimal           `json:"tax_amount"`
	ShippingAmount *decimal.Decimal           `json:"shipping_amount"`
	Status         string                     `json:"status" binding:"omitempty,oneof=draft submitted approved received cancelled"`
	Notes          string                     `json:"notes"`
}

// UpdatePurchaseOrderRequest represents a partial update of a purchase order.
// A non-nil Items replaces every line.
type UpdatePurchaseOrderRequest struct {
	PONumber       *string                    `json:"po_number" binding:"omitempty,max=50"`
	VendorName     *string                    `json:"vendor_name" binding:"omitempty,max=200"`
	OrderDate      *string                    `json:"order_date"`
	ExpectedDate   *string                    `json:"expected_date"`
	Items          []PurchaseOrderItemRequest `json:"items" binding:"omitempty,dive"`
	TaxAmount      *decimal.Decimal           `json:"tax_amount"`
	ShippingAmount *decimal.Decimal           `json:"shipping_amount"`
	Status         *string                    `json:"status" binding:"omitempty,oneof=draft submitted approved received cancelled"`
	Notes          *string                    `json:"notes"`
}

// PurchaseOrderListFilter represents the list query of purchase orders
type PurchaseOrderListFilter struct {
	ListQuery
	DateRangeQuery
	Status     string `form:"status" binding:"omitempty,oneof=draft submitted approved received cancelled"`
	VendorName string `form:"vendor_name"`
}

// PurchaseOrderItemResponse is one line of a purchase order response
type PurchaseOrderItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID             uuid.UUID                   `json:"id"`
	PONumber       string                      `json:"po_number"`
	VendorName     string                      `json:"vendor_name"`
	OrderDate      string                      `json:"order_date"`
	ExpectedDate   *string                     `json:"expected_date"`
	Items          []PurchaseOrderItemResponse `json:"items"`
	Subtotal       decimal.Decimal             `json:"subtotal"`
	TaxAmount      decimal.Decimal             `json:"tax_amount"`
	ShippingAmount decimal.Decimal             `json:"shipping_amount"`
	TotalAmount    decimal.Decimal             `json:"total_amount"`
	Status         string                      `json:"status"`
	Notes          string                      `json:"notes"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a domain PurchaseOrder to its response
func ToPurchaseOrderResponse(po *finance.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(po.Items))
	for i, item := range po.Items {
		items[i] = PurchaseOrderItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal(),
		}
	}
	return PurchaseOrderResponse{
		ID:             po.ID,
		PONumber:       po.PONumber,
		VendorName:     po.VendorName,
		OrderDate:      FormatDate(po.OrderDate),
		ExpectedDate:   formatOptionalDate(po.ExpectedDate),
		Items:          items,
		Subtotal:       po.Subtotal,
		TaxAmount:      po.TaxAmount,
		ShippingAmount: po.ShippingAmount,
		TotalAmount:    po.TotalAmount,
		Status:         string(po.Status),
		Notes:          po.Notes,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	}
}
