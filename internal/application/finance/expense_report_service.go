package finance

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxReceiptSize is the receipt size limit when none is configured
const DefaultMaxReceiptSize int64 = 10 << 20

// receiptExtensions maps the accepted receipt content types to file extensions
var receiptExtensions = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
}

// ExpenseReportService handles expense report operations and receipt files
type ExpenseReportService struct {
	repo           finance.ExpenseReportRepository
	storage        ReceiptStorage
	maxReceiptSize int64
	logger         *zap.Logger
}

// ExpenseReportServiceOption configures an ExpenseReportService
type ExpenseReportServiceOption func(*ExpenseReportService)

// WithReceiptStorage enables receipt upload and download
func WithReceiptStorage(storage ReceiptStorage, maxSize int64) ExpenseReportServiceOption {
	return func(s *ExpenseReportService) {
		s.storage = storage
		if maxSize > 0 {
			s.maxReceiptSize = maxSize
		}
	}
}

// WithExpenseReportLogger sets the logger
func WithExpenseReportLogger(logger *zap.Logger) ExpenseReportServiceOption {
	return func(s *ExpenseReportService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewExpenseReportService creates a new ExpenseReportService
func NewExpenseReportService(repo finance.ExpenseReportRepository, opts ...ExpenseReportServiceOption) *ExpenseReportService {
	s := &ExpenseReportService{
		repo:           repo,
		maxReceiptSize: DefaultMaxReceiptSize,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates an expense report
func (s *ExpenseReportService) Create(ctx context.Context, req CreateExpenseReportRequest) (*ExpenseReportResponse, error) {
	reportDate, err := ParseDate("report_date", req.ReportDate)
	if err != nil {
		return nil, err
	}
	r, err := finance.NewExpenseReport(req.EmployeeName, req.Category, reportDate, decimalOrZero(req.Amount))
	if err != nil {
		return nil, err
	}
	r.Department = strings.TrimSpace(req.Department)
	r.Description = strings.TrimSpace(req.Description)
	if req.Status != "" {
		r.Status = finance.ExpenseReportStatus(req.Status)
	}
	return s.save(ctx, r)
}

// GetByID retrieves an expense report by ID
func (s *ExpenseReportService) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseReportResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToExpenseReportResponse(r)
	return &resp, nil
}

// List returns a page of expense reports and the total match count
func (s *ExpenseReportService) List(ctx context.Context, filter ExpenseReportListFilter) ([]ExpenseReportResponse, int64, error) {
	dates, err := filter.Range()
	if err != nil {
		return nil, 0, err
	}
	domainFilter := finance.ExpenseReportFilter{
		Filter:       filter.ListQuery.Filter(),
		EmployeeName: strings.TrimSpace(filter.EmployeeName),
		Category:     strings.TrimSpace(filter.Category),
		ReportDate:   dates,
	}
	if filter.Status != "" {
		status := finance.ExpenseReportStatus(filter.Status)
		domainFilter.Status = &status
	}

	reports, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseReportResponse, len(reports))
	for i := range reports {
		responses[i] = ToExpenseReportResponse(&reports[i])
	}
	return responses, total, nil
}

// Update applies a partial update to an expense report
func (s *ExpenseReportService) Update(ctx context.Context, id uuid.UUID, req UpdateExpenseReportRequest) (*ExpenseReportResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&r.EmployeeName, req.EmployeeName)
	setString(&r.Department, req.Department)
	if err := setDate(&r.ReportDate, "report_date", req.ReportDate); err != nil {
		return nil, err
	}
	setString(&r.Category, req.Category)
	setString(&r.Description, req.Description)
	setDecimal(&r.Amount, req.Amount)
	if req.Status != nil {
		r.Status = finance.ExpenseReportStatus(*req.Status)
	}
	r.Touch()
	return s.save(ctx, r)
}

// Delete deletes an expense report. Its receipt object is removed best effort.
func (s *ExpenseReportService) Delete(ctx context.Context, id uuid.UUID) error {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if r.HasReceipt() {
		s.deleteObject(ctx, r.ReceiptKey)
	}
	return nil
}

// UploadReceipt stores a receipt file and attaches it to the report.
// A previously attached receipt is replaced.
func (s *ExpenseReportService) UploadReceipt(ctx context.Context, id uuid.UUID, upload ReceiptUpload, body io.Reader) (*ExpenseReportResponse, error) {
	if s.storage == nil {
		return nil, ErrReceiptsUnavailable
	}
	contentType := normalizeContentType(upload.ContentType)
	ext, ok := receiptExtensions[contentType]
	if !ok {
		return nil, shared.NewValidationError("receipt must be a PDF, PNG or JPEG file")
	}
	if upload.Size <= 0 {
		return nil, shared.NewValidationError("receipt file is empty")
	}
	if upload.Size > s.maxReceiptSize {
		return nil, shared.NewValidationError(fmt.Sprintf("receipt cannot exceed %d bytes", s.maxReceiptSize))
	}

	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := ReceiptKey(r.ID, ext)
	if err := s.storage.Upload(ctx, key, body, upload.Size, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	previous := r.ReceiptKey
	r.AttachReceipt(key)
	if err := s.repo.Save(ctx, r); err != nil {
		s.deleteObject(ctx, key)
		return nil, err
	}
	if previous != "" && previous != key {
		s.deleteObject(ctx, previous)
	}

	s.logger.Info("Receipt uploaded",
		zap.String("expense_report_id", r.ID.String()),
		zap.String("key", key),
		zap.Int64("size", upload.Size))

	resp := ToExpenseReportResponse(r)
	return &resp, nil
}

// ReceiptURL returns a presigned download link for the report's receipt
func (s *ExpenseReportService) ReceiptURL(ctx context.Context, id uuid.UUID) (*ReceiptURLResponse, error) {
	if s.storage == nil {
		return nil, ErrReceiptsUnavailable
	}
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.HasReceipt() {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense report has no receipt")
	}

	url, expiresAt, err := s.storage.PresignDownload(ctx, r.ReceiptKey)
	if err != nil {
		return nil, fmt.Errorf("failed to presign receipt: %w", err)
	}
	return &ReceiptURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// ReceiptKey returns a fresh object key for a receipt of the given report
func ReceiptKey(reportID uuid.UUID, ext string) string {
	return fmt.Sprintf("receipts/%s/%s%s", reportID, uuid.New(), ext)
}

func (s *ExpenseReportService) deleteObject(ctx context.Context, key string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Failed to delete receipt object", zap.String("key", key), zap.Error(err))
	}
}

func (s *ExpenseReportService) save(ctx context.Context, r *finance.ExpenseReport) (*ExpenseReportResponse, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToExpenseReportResponse(r)
	return &resp, nil
}

// normalizeContentType strips parameters such as charset
func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
