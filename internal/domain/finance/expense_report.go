package finance

import (
	"strings"
	"time"

	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseReportStatus represents the approval state of an expense report
type ExpenseReportStatus string

const (
	ExpenseReportStatusDraft      ExpenseReportStatus = "draft"
	ExpenseReportStatusSubmitted  ExpenseReportStatus = "submitted"
	ExpenseReportStatusApproved   ExpenseReportStatus = "approved"
	ExpenseReportStatusRejected   ExpenseReportStatus = "rejected"
	ExpenseReportStatusReimbursed ExpenseReportStatus = "reimbursed"
)

// IsValid checks if the status is a valid ExpenseReportStatus
func (s ExpenseReportStatus) IsValid() bool {
	switch s {
	case ExpenseReportStatusDraft, ExpenseReportStatusSubmitted, ExpenseReportStatusApproved,
		ExpenseReportStatusRejected, ExpenseReportStatusReimbursed:
		return true
	}
	return false
}

// String returns the string representation of ExpenseReportStatus
func (s ExpenseReportStatus) String() string {
	return string(s)
}

// ExpenseReport is an employee expense claim
type ExpenseReport struct {
	shared.BaseEntity
	EmployeeName string
	Department   string
	ReportDate   time.Time
	Category     string
	Description  string
	Amount       decimal.Decimal
	Status       ExpenseReportStatus
	ReceiptKey   string
}

// NewExpenseReport creates a draft expense report
func NewExpenseReport(employeeName, category string, reportDate time.Time, amount decimal.Decimal) (*ExpenseReport, error) {
	r := &ExpenseReport{
		BaseEntity:   shared.NewBaseEntity(),
		EmployeeName: strings.TrimSpace(employeeName),
		Category:     strings.TrimSpace(category),
		ReportDate:   reportDate,
		Amount:       amount,
		Status:       ExpenseReportStatusDraft,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks required fields and the amount
func (r *ExpenseReport) Validate() error {
	if r.EmployeeName == "" {
		return shared.NewValidationError("employee_name is required")
	}
	if r.Category == "" {
		return shared.NewValidationError("category is required")
	}
	if r.ReportDate.IsZero() {
		return shared.NewValidationError("report_date is required")
	}
	if !r.Amount.IsPositive() {
		return shared.NewValidationError("amount must be greater than zero")
	}
	if !r.Status.IsValid() {
		return shared.NewValidationError("status must be one of draft, submitted, approved, rejected, reimbursed")
	}
	return nil
}

// HasReceipt returns true when a receipt has been uploaded
func (r *ExpenseReport) HasReceipt() bool {
	return r.ReceiptKey != ""
}

// AttachReceipt records the object key of an uploaded receipt
func (r *ExpenseReport) AttachReceipt(key string) {
	r.ReceiptKey = key
	r.Touch()
}
