package finance

import (
	"strings"
	"time"

	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountPayable is money owed to a vendor
type AccountPayable struct {
	shared.BaseEntity
	Invoice
	VendorName string
	Category   string
}

// NewAccountPayable creates a payable and computes its derived fields
func NewAccountPayable(vendorName, invoiceNumber string, dueDate time.Time, totalAmount decimal.Decimal) (*AccountPayable, error) {
	ap := &AccountPayable{
		BaseEntity: shared.NewBaseEntity(),
		VendorName: strings.TrimSpace(vendorName),
		Invoice: Invoice{
			InvoiceNumber: strings.TrimSpace(invoiceNumber),
			DueDate:       dueDate,
			TotalAmount:   totalAmount,
		},
	}
	if err := ap.Validate(); err != nil {
		return nil, err
	}
	ap.Recalculate(time.Now())
	return ap, nil
}

// Validate checks required fields and amounts
func (ap *AccountPayable) Validate() error {
	if ap.VendorName == "" {
		return shared.NewValidationError("vendor_name is required")
	}
	if len(ap.VendorName) > 200 {
		return shared.NewValidationError("vendor_name cannot exceed 200 characters")
	}
	return ap.Invoice.validate()
}
