package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/finops/backend/internal/application/finance"
	"github.com/finops/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptFormField is the multipart field carrying the receipt file
const ReceiptFormField = "file"

// sniffLen is how many bytes http.DetectContentType looks at
const sniffLen = 512

// ReceiptService attaches and serves expense report receipts
type ReceiptService interface {
	UploadReceipt(ctx context.Context, id uuid.UUID, upload finance.ReceiptUpload, body io.Reader) (*finance.ExpenseReportResponse, error)
	ReceiptURL(ctx context.Context, id uuid.UUID) (*finance.ReceiptURLResponse, error)
}

// ReceiptHandler serves /api/expense-reports/:id/receipt
type ReceiptHandler struct {
	BaseHandler
	service ReceiptService
	metrics *telemetry.FinanceMetrics
}

// NewReceiptHandler creates a ReceiptHandler. metrics may be nil.
func NewReceiptHandler(service ReceiptService, metrics *telemetry.FinanceMetrics) *ReceiptHandler {
	return &ReceiptHandler{service: service, metrics: metrics}
}

// Upload handles POST /api/expense-reports/:id/receipt. The content type is
// sniffed from the file itself; the client-declared type is ignored.
func (h *ReceiptHandler) Upload(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	header, err := c.FormFile(ReceiptFormField)
	if err != nil {
		h.BadRequest(c, "A receipt file is required in the \"file\" form field")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Receipt file could not be read")
		return
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		h.BadRequest(c, "Receipt file could not be read")
		return
	}
	head = head[:n]

	upload := finance.ReceiptUpload{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(head),
		Size:        header.Size,
	}
	body := io.MultiReader(bytes.NewReader(head), file)

	report, err := h.service.UploadReceipt(c.Request.Context(), id, upload, body)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.RecordWrite(c.Request.Context(), "expense-reports", "receipt")
	h.Success(c, report)
}

// URL handles GET /api/expense-reports/:id/receipt
func (h *ReceiptHandler) URL(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	link, err := h.service.ReceiptURL(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}
