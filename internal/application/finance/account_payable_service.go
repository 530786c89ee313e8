package finance

import (
	"context"
	"strings"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// AccountPayableService handles accounts payable operations
type AccountPayableService struct {
	repo finance.AccountPayableRepository
	now  func() time.Time
}

// NewAccountPayableService creates a new AccountPayableService
func NewAccountPayableService(repo finance.AccountPayableRepository) *AccountPayableService {
	return &AccountPayableService{repo: repo, now: time.Now}
}

// Create creates a payable and derives its balance and status
func (s *AccountPayableService) Create(ctx context.Context, req CreateAccountPayableRequest) (*AccountPayableResponse, error) {
	dueDate, err := ParseDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}
	ap, err := finance.NewAccountPayable(req.VendorName, req.InvoiceNumber, dueDate, decimalOrZero(req.TotalAmount))
	if err != nil {
		return nil, err
	}
	ap.Category = strings.TrimSpace(req.Category)
	if err := applyInvoiceCreate(&ap.Invoice, req.InvoiceFields); err != nil {
		return nil, err
	}
	return s.save(ctx, ap)
}

// GetByID retrieves a payable by ID
func (s *AccountPayableService) GetByID(ctx context.Context, id uuid.UUID) (*AccountPayableResponse, error) {
	ap, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAccountPayableResponse(ap, s.now())
	return &resp, nil
}

// List returns a page of payables and the total match count
func (s *AccountPayableService) List(ctx context.Context, filter AccountPayableListFilter) ([]AccountPayableResponse, int64, error) {
	domainFilter, err := filter.toDomain(filter.VendorName)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]AccountPayableResponse, len(items))
	for i := range items {
		responses[i] = ToAccountPayableResponse(&items[i], now)
	}
	return responses, total, nil
}

// Update applies a partial update and recomputes the derived fields
func (s *AccountPayableService) Update(ctx context.Context, id uuid.UUID, req UpdateAccountPayableRequest) (*AccountPayableResponse, error) {
	ap, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&ap.VendorName, req.VendorName)
	setString(&ap.Category, req.Category)
	if err := applyInvoiceUpdate(&ap.Invoice, req.InvoiceUpdateFields); err != nil {
		return nil, err
	}
	ap.Touch()
	return s.save(ctx, ap)
}

// Delete deletes a payable
func (s *AccountPayableService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *AccountPayableService) save(ctx context.Context, ap *finance.AccountPayable) (*AccountPayableResponse, error) {
	if err := ap.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	ap.Recalculate(now)
	if err := s.repo.Save(ctx, ap); err != nil {
		return nil, err
	}
	resp := ToAccountPayableResponse(ap, now)
	return &resp, nil
}
