package finance

import (
	"strings"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceFields are the raw fields payables and receivables share on create
type InvoiceFields struct {
	InvoiceNumber string            `json:"invoice_number" binding:"required,max=50"`
	InvoiceDate   string            `json:"invoice_date"`
	DueDate       string            `json:"due_date" binding:"required"`
	TotalAmount   *decimal.Decimal  `json:"total_amount" binding:"required"`
	Payments      []finance.Payment `json:"payments"`
	Notes         string            `json:"notes"`
}

// InvoiceUpdateFields are the shared fields of a partial invoice update.
// A non-nil Payments replaces the whole payment list.
type InvoiceUpdateFields struct {
	InvoiceNumber *string           `json:"invoice_number" binding:"omitempty,max=50"`
	InvoiceDate   *string           `json:"invoice_date"`
	DueDate       *string           `json:"due_date"`
	TotalAmount   *decimal.Decimal  `json:"total_amount"`
	Payments      []finance.Payment `json:"payments"`
	Notes         *string           `json:"notes"`
}

// InvoiceListFilter is the list query shared by payables and receivables
type InvoiceListFilter struct {
	ListQuery
	Status  string `form:"status" binding:"omitempty,oneof=pending paid overdue"`
	DueFrom string `form:"due_from"`
	DueTo   string `form:"due_to"`
}

func (f InvoiceListFilter) toDomain(counterparty string) (finance.InvoiceFilter, error) {
	due, err := parseDateRange("due_from", f.DueFrom, "due_to", f.DueTo)
	if err != nil {
		return finance.InvoiceFilter{}, err
	}
	filter := finance.InvoiceFilter{
		Filter:       f.ListQuery.Filter(),
		Counterparty: strings.TrimSpace(counterparty),
		DueDate:      due,
	}
	if f.Status != "" {
		status := calc.PaymentStatus(f.Status)
		filter.Status = &status
	}
	return filter, nil
}

// InvoiceResponse holds the invoice fields of payable and receivable responses.
// Status, DaysOverdue and AgingBucket are evaluated at read time.
type InvoiceResponse struct {
	InvoiceNumber string            `json:"invoice_number"`
	InvoiceDate   *string           `json:"invoice_date"`
	DueDate       string            `json:"due_date"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Payments      []finance.Payment `json:"payments"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	BalanceDue    decimal.Decimal   `json:"balance_due"`
	Status        string            `json:"status"`
	DaysOverdue   int               `json:"days_overdue"`
	AgingBucket   string            `json:"aging_bucket"`
	Notes         string            `json:"notes"`
}

func toInvoiceResponse(inv *finance.Invoice, now time.Time) InvoiceResponse {
	payments := inv.Payments
	if payments == nil {
		payments = []finance.Payment{}
	}
	return InvoiceResponse{
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   formatOptionalDate(inv.InvoiceDate),
		DueDate:       FormatDate(inv.DueDate),
		TotalAmount:   inv.TotalAmount,
		Payments:      payments,
		AmountPaid:    inv.AmountPaid,
		BalanceDue:    inv.BalanceDue,
		Status:        string(inv.StatusAt(now)),
		DaysOverdue:   inv.DaysOverdue(now),
		AgingBucket:   inv.AgingBucket(now).String(),
		Notes:         inv.Notes,
	}
}

// applyInvoiceCreate copies the create fields onto inv. Number, due date and
// total are set by the entity constructors.
func applyInvoiceCreate(inv *finance.Invoice, req InvoiceFields) error {
	invoiceDate, err := parseOptionalDate("invoice_date", req.InvoiceDate)
	if err != nil {
		return err
	}
	inv.InvoiceDate = invoiceDate
	inv.Payments = req.Payments
	inv.Notes = strings.TrimSpace(req.Notes)
	return nil
}

func applyInvoiceUpdate(inv *finance.Invoice, req InvoiceUpdateFields) error {
	setString(&inv.InvoiceNumber, req.InvoiceNumber)
	if err := setOptionalDate(&inv.InvoiceDate, "invoice_date", req.InvoiceDate); err != nil {
		return err
	}
	if err := setDate(&inv.DueDate, "due_date", req.DueDate); err != nil {
		return err
	}
	setDecimal(&inv.TotalAmount, req.TotalAmount)
	if req.Payments != nil {
		inv.Payments = req.Payments
	}
	setString(&inv.Notes, req.Notes)
	return nil
}

// CreateAccountPayableRequest represents a request to create a payable
type CreateAccountPayableRequest struct {
	VendorName string `json:"vendor_name" binding:"required,max=200"`
	Category   string `json:"category" binding:"max=100"`
	InvoiceFields
}

// UpdateAccountPayableRequest represents a partial update of a payable
type UpdateAccountPayableRequest struct {
	VendorName *string `json:"vendor_name" binding:"omitempty,max=200"`
	Category   *string `json:"category" binding:"omitempty,max=100"`
	InvoiceUpdateFields
}

// AccountPayableListFilter represents the list query of payables
type AccountPayableListFilter struct {
	InvoiceListFilter
	VendorName string `form:"vendor_name"`
}

// AccountPayableResponse represents a payable in API responses
type AccountPayableResponse struct {
	ID         uuid.UUID `json:"id"`
	VendorName string    `json:"vendor_name"`
	Category   string    `json:"category"`
	InvoiceResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToAccountPayableResponse converts a payable evaluated as of now
func ToAccountPayableResponse(ap *finance.AccountPayable, now time.Time) AccountPayableResponse {
	return AccountPayableResponse{
		ID:              ap.ID,
		VendorName:      ap.VendorName,
		Category:        ap.Category,
		InvoiceResponse: toInvoiceResponse(&ap.Invoice, now),
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}
}

// CreateAccountReceivableRequest represents a request to create a receivable
type CreateAccountReceivableRequest struct {
	CustomerName string `json:"customer_name" binding:"required,max=200"`
	InvoiceFields
}

// UpdateAccountReceivableRequest represents a partial update of a receivable
type UpdateAccountReceivableRequest struct {
	CustomerName *string `json:"customer_name" binding:"omitempty,max=200"`
	InvoiceUpdateFields
}

// AccountReceivableListFilter represents the list query of receivables
type AccountReceivableListFilter struct {
	InvoiceListFilter
	CustomerName string `form:"customer_name"`
}

// AccountReceivableResponse represents a receivable in API responses
type AccountReceivableResponse struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customer_name"`
	InvoiceResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToAccountReceivableResponse converts a receivable evaluated as of now
func ToAccountReceivableResponse(ar *finance.AccountReceivable, now time.Time) AccountReceivableResponse {
	return AccountReceivableResponse{
		ID:              ar.ID,
		CustomerName:    ar.CustomerName,
		InvoiceResponse: toInvoiceResponse(&ar.Invoice, now),
		CreatedAt:       ar.CreatedAt,
		UpdatedAt:       ar.UpdatedAt,
	}
}
