package finance

import (
	"context"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// AccountReceivableService handles accounts receivable operations
type AccountReceivableService struct {
	repo finance.AccountReceivableRepository
	now  func() time.Time
}

// NewAccountReceivableService creates a new AccountReceivableService
func NewAccountReceivableService(repo finance.AccountReceivableRepository) *AccountReceivableService {
	return &AccountReceivableService{repo: repo, now: time.Now}
}

// Create creates a receivable and derives its balance and status
func (s *AccountReceivableService) Create(ctx context.Context, req CreateAccountReceivableRequest) (*AccountReceivableResponse, error) {
	dueDate, err := ParseDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}
	ar, err := finance.NewAccountReceivable(req.CustomerName, req.InvoiceNumber, dueDate, decimalOrZero(req.TotalAmount))
	if err != nil {
		return nil, err
	}
	if err := applyInvoiceCreate(&ar.Invoice, req.InvoiceFields); err != nil {
		return nil, err
	}
	return s.save(ctx, ar)
}

// GetByID retrieves a receivable by ID
func (s *AccountReceivableService) GetByID(ctx context.Context, id uuid.UUID) (*AccountReceivableResponse, error) {
	ar, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAccountReceivableResponse(ar, s.now())
	return &resp, nil
}

// List returns a page of receivables and the total match count
func (s *AccountReceivableService) List(ctx context.Context, filter AccountReceivableListFilter) ([]AccountReceivableResponse, int64, error) {
	domainFilter, err := filter.toDomain(filter.CustomerName)
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
	responses := make([]AccountReceivableResponse, len(items))
	for i := range items {
		responses[i] = ToAccountReceivableResponse(&items[i], now)
	}
	return responses, total, nil
}

// Update applies a partial update and recomputes the derived fields
func (s *AccountReceivableService) Update(ctx context.Context, id uuid.UUID, req UpdateAccountReceivableRequest) (*AccountReceivableResponse, error) {
	ar, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&ar.CustomerName, req.CustomerName)
	if err := applyInvoiceUpdate(&ar.Invoice, req.InvoiceUpdateFields); err != nil {
		return nil, err
	}
	ar.Touch()
	return s.save(ctx, ar)
}

// Delete deletes a receivable
func (s *AccountReceivableService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *AccountReceivableService) save(ctx context.Context, ar *finance.AccountReceivable) (*AccountReceivableResponse, error) {
	if err := ar.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	ar.Recalculate(now)
	if err := s.repo.Save(ctx, ar); err != nil {
		return nil, err
	}
	resp := ToAccountReceivableResponse(ar, now)
	return &resp, nil
}
