package finance

import (
	"strings"
	"time"

	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Payment is a single payment recorded against an invoice.
// Amount may be invalid (empty or non-numeric input); such entries are kept
// but do not reduce the balance.
type Payment struct {
	Amount    calc.Amount `json:"amount"`
	Date      string      `json:"date,omitempty"`
	Method    string      `json:"method,omitempty"`
	Reference string      `json:"reference,omitempty"`
}

// Invoice holds the fields shared by payables and receivables.
// AmountPaid, BalanceDue and Status are derived; call Recalculate after any change.
type Invoice struct {
	InvoiceNumber string
	InvoiceDate   *time.Time
	DueDate       time.Time
	TotalAmount   decimal.Decimal
	Payments      []Payment
	AmountPaid    decimal.Decimal
	BalanceDue    decimal.Decimal
	Status        calc.PaymentStatus
	Notes         string
}

// Recalculate refreshes the derived fields as of now
func (i *Invoice) Recalculate(now time.Time) {
	amounts := i.paymentAmounts()
	i.AmountPaid = calc.SumPayments(amounts).Round(2)
	i.BalanceDue = calc.CalculateBalanceDue(i.TotalAmount, amounts)
	i.Status = calc.DetermineStatusAt(i.DueDate, i.BalanceDue, now)
}

// StatusAt returns the status as of now without mutating the invoice.
// Stored status goes stale once the due date passes, so reads use this.
func (i *Invoice) StatusAt(now time.Time) calc.PaymentStatus {
	return calc.DetermineStatusAt(i.DueDate, i.BalanceDue, now)
}

// DaysOverdue returns the days past due as of now, 0 when settled
func (i *Invoice) DaysOverdue(now time.Time) int {
	if i.BalanceDue.IsZero() {
		return 0
	}
	return calc.CalculateDaysOverdueAt(i.DueDate, now)
}

// AgingBucket returns the aging bucket as of now
func (i *Invoice) AgingBucket(now time.Time) calc.AgingBucket {
	return calc.GetAgingBucket(i.DaysOverdue(now))
}

// IsOpen returns true while a balance remains
func (i *Invoice) IsOpen() bool {
	return i.BalanceDue.IsPositive()
}

func (i *Invoice) paymentAmounts() []calc.Amount {
	amounts := make([]calc.Amount, len(i.Payments))
	for idx, p := range i.Payments {
		amounts[idx] = p.Amount
	}
	return amounts
}

func (i *Invoice) validate() error {
	if strings.TrimSpace(i.InvoiceNumber) == "" {
		return shared.NewValidationError("invoice_number is required")
	}
	if len(i.InvoiceNumber) > 50 {
		return shared.NewValidationError("invoice_number cannot exceed 50 characters")
	}
	if i.DueDate.IsZero() {
		return shared.NewValidationError("due_date is required")
	}
	if i.TotalAmount.IsNegative() {
		return shared.NewValidationError("total_amount cannot be negative")
	}
	if i.InvoiceDate != nil && calc.StartOfDay(*i.InvoiceDate).After(calc.StartOfDay(i.DueDate)) {
		return shared.NewValidationError("due_date cannot be before invoice_date")
	}
	return nil
}
