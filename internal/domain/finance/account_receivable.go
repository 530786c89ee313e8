package finance

import (
	"strings"
	"time"

	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountReceivable is money owed by a customer
type AccountReceivable struct {
	shared.BaseEntity
	Invoice
	CustomerName string
}

// NewAccountReceivable creates a receivable and computes its derived fields
func NewAccountReceivable(customerName, invoiceNumber string, dueDate time.Time, totalAmount decimal.Decimal) (*AccountReceivable, error) {
	ar := &AccountReceivable{
		BaseEntity:   shared.NewBaseEntity(),
		CustomerName: strings.TrimSpace(customerName),
		Invoice: Invoice{
			InvoiceNumber: strings.TrimSpace(invoiceNumber),
			DueDate:       dueDate,
			TotalAmount:   totalAmount,
		},
	}
	if err := ar.Validate(); err != nil {
		return nil, err
	}
	ar.Recalculate(time.Now())
	return ar, nil
}

// Validate checks required fields and amounts
func (ar *AccountReceivable) Validate() error {
	if ar.CustomerName == "" {
		return shared.NewValidationError("customer_name is required")
	}
	if len(ar.CustomerName) > 200 {
		return shared.NewValidationError("customer_name cannot exceed 200 characters")
	}
	return ar.Invoice.validate()
}
