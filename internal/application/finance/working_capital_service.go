package finance

import (
	"context"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// WorkingCapitalService handles working capital snapshot operations
type WorkingCapitalService struct {
	repo finance.WorkingCapitalRepository
}

// NewWorkingCapitalService creates a new WorkingCapitalService
func NewWorkingCapitalService(repo finance.WorkingCapitalRepository) *WorkingCapitalService {
	return &WorkingCapitalService{repo: repo}
}

// Create creates a snapshot and derives totals and ratios
func (s *WorkingCapitalService) Create(ctx context.Context, req CreateWorkingCapitalRequest) (*WorkingCapitalResponse, error) {
	asOf, err := ParseDate("as_of_date", req.AsOfDate)
	if err != nil {
		return nil, err
	}
	var lines finance.WorkingCapitalLines
	req.WorkingCapitalLinesRequest.apply(&lines)

	wc, err := finance.NewWorkingCapital(asOf, lines)
	if err != nil {
		return nil, err
	}
	wc.Notes = strings.TrimSpace(req.Notes)
	return s.save(ctx, wc)
}

// GetByID retrieves a snapshot by ID
func (s *WorkingCapitalService) GetByID(ctx context.Context, id uuid.UUID) (*WorkingCapitalResponse, error) {
	wc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToWorkingCapitalResponse(wc)
	return &resp, nil
}

// List returns a page of snapshots filtered on as_of_date
func (s *WorkingCapitalService) List(ctx context.Context, filter StatementListFilter) ([]WorkingCapitalResponse, int64, error) {
	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, 0, err
	}

	snapshots, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]WorkingCapitalResponse, len(snapshots))
	for i := range snapshots {
		responses[i] = ToWorkingCapitalResponse(&snapshots[i])
	}
	return responses, total, nil
}

// Update applies a partial update and recomputes totals and ratios
func (s *WorkingCapitalService) Update(ctx context.Context, id uuid.UUID, req UpdateWorkingCapitalRequest) (*WorkingCapitalResponse, error) {
	wc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := setDate(&wc.AsOfDate, "as_of_date", req.AsOfDate); err != nil {
		return nil, err
	}
	req.WorkingCapitalLinesRequest.apply(&wc.WorkingCapitalLines)
	setString(&wc.Notes, req.Notes)
	wc.Touch()
	return s.save(ctx, wc)
}

// Delete deletes a snapshot
func (s *WorkingCapitalService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *WorkingCapitalService) save(ctx context.Context, wc *finance.WorkingCapital) (*WorkingCapitalResponse, error) {
	if err := wc.Validate(); err != nil {
		return nil, err
	}
	wc.Recalculate()
	if err := s.repo.Save(ctx, wc); err != nil {
		return nil, err
	}
	resp := ToWorkingCapitalResponse(wc)
	return &resp, nil
}
