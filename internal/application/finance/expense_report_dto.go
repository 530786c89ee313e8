package finance

import (
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateExpenseReportRequest represents a request to create an expense report
type CreateExpenseReportRequest struct {
	EmployeeName string           `json:"employee_name" binding:"required,max=200"`
	Department   string           `json:"department" binding:"max=100"`
	ReportDate   string           `json:"report_date" binding:"required"`
	Category     string           `json:"category" binding:"required,max=100"`
	Description  string           `json:"description"`
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
	Status       string           `json:"status" binding:"omitempty,oneof=draft submitted approved rejected reimbursed"`
}

// UpdateExpenseReportRequest represents a partial update of an expense report.
// The receipt is managed through the receipt endpoints only.
type UpdateExpenseReportRequest struct {
	EmployeeName *string          `json:"employee_name" binding:"omitempty,max=200"`
	Department   *string          `json:"department" binding:"omitempty,max=100"`
	ReportDate   *string          `json:"report_date"`
	Category     *string          `json:"category" binding:"omitempty,max=100"`
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	Status       *string          `json:"status" binding:"omitempty,oneof=draft submitted approved rejected reimbursed"`
}

// ExpenseReportListFilter represents the list query of expense reports
type ExpenseReportListFilter struct {
	ListQuery
	DateRangeQuery
	Status       string `form:"status" binding:"omitempty,oneof=draft submitted approved rejected reimbursed"`
	EmployeeName string `form:"employee_name"`
	Category     string `form:"category"`
}

// ExpenseReportResponse represents an expense report in API responses
type ExpenseReportResponse struct {
	ID           uuid.UUID       `json:"id"`
	EmployeeName string          `json:"employee_name"`
	Department   string          `json:"department"`
	ReportDate   string          `json:"report_date"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	ReceiptKey   string          `json:"receipt_key"`
	HasReceipt   bool            `json:"has_receipt"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToExpenseReportResponse converts a domain ExpenseReport to its response
func ToExpenseReportResponse(r *finance.ExpenseReport) ExpenseReportResponse {
	return ExpenseReportResponse{
		ID:           r.ID,
		EmployeeName: r.EmployeeName,
		Department:   r.Department,
		ReportDate:   FormatDate(r.ReportDate),
		Category:     r.Category,
		Description:  r.Description,
		Amount:       r.Amount,
		Status:       string(r.Status),
		ReceiptKey:   r.ReceiptKey,
		HasReceipt:   r.HasReceipt(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ReceiptUpload describes an uploaded receipt file
type ReceiptUpload struct {
	Filename    string
	ContentType string
	Size        int64
}

// ReceiptURLResponse is a presigned receipt download link
type ReceiptURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
