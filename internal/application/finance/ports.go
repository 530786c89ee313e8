package finance

import (
	"context"
	"io"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/shared"
)

// ReceiptStorage stores expense report receipts in an object store
type ReceiptStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// PresignDownload returns a time-limited download URL and its expiry
	PresignDownload(ctx context.Context, key string) (string, time.Time, error)
	Delete(ctx context.Context, key string) error
}

// StatementPrinter prints statements as PDF documents
type StatementPrinter interface {
	IncomeStatementPDF(ctx context.Context, statement *finance.IncomeStatement) ([]byte, error)
	BalanceSheetPDF(ctx context.Context, sheet *finance.BalanceSheet) ([]byte, error)
}

var (
	// ErrPDFUnavailable is returned when no statement printer is configured
	ErrPDFUnavailable = shared.NewDomainError("PDF_UNAVAILABLE", "PDF export is not available")
	// ErrReceiptsUnavailable is returned when no receipt storage is configured
	ErrReceiptsUnavailable = shared.NewDomainError("STORAGE_UNAVAILABLE", "Receipt storage is not available")
)
