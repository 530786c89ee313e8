package finance

import (
	"context"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// BalanceSheetService handles balance sheet operations
type BalanceSheetService struct {
	repo    finance.BalanceSheetRepository
	printer StatementPrinter
}

// NewBalanceSheetService creates a new BalanceSheetService.
// printer may be nil, in which case PDF export is unavailable.
func NewBalanceSheetService(repo finance.BalanceSheetRepository, printer StatementPrinter) *BalanceSheetService {
	return &BalanceSheetService{repo: repo, printer: printer}
}

// Create creates a balance sheet and derives its totals
func (s *BalanceSheetService) Create(ctx context.Context, req CreateBalanceSheetRequest) (*BalanceSheetResponse, error) {
	asOf, err := ParseDate("as_of_date", req.AsOfDate)
	if err != nil {
		return nil, err
	}
	var lines finance.BalanceSheetLines
	req.BalanceSheetLinesRequest.apply(&lines)

	bs, err := finance.NewBalanceSheet(asOf, lines)
	if err != nil {
		return nil, err
	}
	bs.Notes = strings.TrimSpace(req.Notes)
	return s.save(ctx, bs)
}

// GetByID retrieves a balance sheet by ID
func (s *BalanceSheetService) GetByID(ctx context.Context, id uuid.UUID) (*BalanceSheetResponse, error) {
	bs, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBalanceSheetResponse(bs)
	return &resp, nil
}

// List returns a page of balance sheets filtered on as_of_date
func (s *BalanceSheetService) List(ctx context.Context, filter StatementListFilter) ([]BalanceSheetResponse, int64, error) {
	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, 0, err
	}

	sheets, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BalanceSheetResponse, len(sheets))
	for i := range sheets {
		responses[i] = ToBalanceSheetResponse(&sheets[i])
	}
	return responses, total, nil
}

// Update applies a partial update and recomputes the totals
func (s *BalanceSheetService) Update(ctx context.Context, id uuid.UUID, req UpdateBalanceSheetRequest) (*BalanceSheetResponse, error) {
	bs, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := setDate(&bs.AsOfDate, "as_of_date", req.AsOfDate); err != nil {
		return nil, err
	}
	req.BalanceSheetLinesRequest.apply(&bs.BalanceSheetLines)
	setString(&bs.Notes, req.Notes)
	bs.Touch()
	return s.save(ctx, bs)
}

// Delete deletes a balance sheet
func (s *BalanceSheetService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// PDF prints a balance sheet
func (s *BalanceSheetService) PDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if s.printer == nil {
		return nil, ErrPDFUnavailable
	}
	bs, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.printer.BalanceSheetPDF(ctx, bs)
}

func (s *BalanceSheetService) save(ctx context.Context, bs *finance.BalanceSheet) (*BalanceSheetResponse, error) {
	if err := bs.Validate(); err != nil {
		return nil, err
	}
	bs.Recalculate()
	if err := s.repo.Save(ctx, bs); err != nil {
		return nil, err
	}
	resp := ToBalanceSheetResponse(bs)
	return &resp, nil
}
