package calc

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the derived settlement state of an invoice
type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusPaid    PaymentStatus = "paid"
	StatusOverdue PaymentStatus = "overdue"
)

// IsValid checks if the status is a known PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

const moneyPlaces = 2

// SumPayments adds up the valid payment amounts
func SumPayments(payments []Amount) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if !p.Valid {
			continue
		}
		total = total.Add(p.Value)
	}
	return total
}

// CalculateBalanceDue returns max(0, total - sum of valid payments) rounded to cents.
func CalculateBalanceDue(totalAmount decimal.Decimal, payments []Amount) decimal.Decimal {
	balance := totalAmount.Sub(SumPayments(payments))
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance.Round(moneyPlaces)
}

// DetermineStatus derives the status of an invoice as of today
func DetermineStatus(dueDate time.Time, balanceDue decimal.Decimal) PaymentStatus {
	return DetermineStatusAt(dueDate, balanceDue, time.Now())
}

// DetermineStatusAt derives the status of an invoice as of now.
// A zero balance is paid regardless of dates. An item due on the same
// calendar day as now is still pending.
func DetermineStatusAt(dueDate time.Time, balanceDue decimal.Decimal, now time.Time) PaymentStatus {
	if balanceDue.IsZero() {
		return StatusPaid
	}
	if StartOfDay(now).After(StartOfDay(dueDate)) {
		return StatusOverdue
	}
	return StatusPending
}

// CalculateDaysOverdue returns whole days past dueDate as of today, never negative
func CalculateDaysOverdue(dueDate time.Time) int {
	return CalculateDaysOverdueAt(dueDate, time.Now())
}

// CalculateDaysOverdueAt returns whole days between dueDate and now, never negative
func CalculateDaysOverdueAt(dueDate, now time.Time) int {
	days := DaysBetween(dueDate, now)
	if days < 0 {
		return 0
	}
	return days
}

// StartOfDay drops the time of day, keeping the calendar date of t.
// The result is expressed in UTC so dates from different zones compare by
// calendar day only.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of calendar days from a to b
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}
