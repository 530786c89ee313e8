package finance

import (
	"context"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// CashFlowStatementService handles cash flow statement operations
type CashFlowStatementService struct {
	repo finance.CashFlowStatementRepository
}

// NewCashFlowStatementService creates a new CashFlowStatementService
func NewCashFlowStatementService(repo finance.CashFlowStatementRepository) *CashFlowStatementService {
	return &CashFlowStatementService{repo: repo}
}

// Create creates a cash flow statement and derives the section totals
func (s *CashFlowStatementService) Create(ctx context.Context, req CreateCashFlowStatementRequest) (*CashFlowStatementResponse, error) {
	start, err := ParseDate("period_start", req.PeriodStart)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate("period_end", req.PeriodEnd)
	if err != nil {
		return nil, err
	}
	var activities finance.CashFlowActivities
	req.CashFlowActivitiesRequest.apply(&activities)

	st, err := finance.NewCashFlowStatement(start, end, activities)
	if err != nil {
		return nil, err
	}
	st.BeginningCash = decimalOrZero(req.BeginningCash)
	st.Notes = strings.TrimSpace(req.Notes)
	return s.save(ctx, st)
}

// GetByID retrieves a cash flow statement by ID
func (s *CashFlowStatementService) GetByID(ctx context.Context, id uuid.UUID) (*CashFlowStatementResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCashFlowStatementResponse(st)
	return &resp, nil
}

// List returns a page of cash flow statements filtered on period_end
func (s *CashFlowStatementService) List(ctx context.Context, filter StatementListFilter) ([]CashFlowStatementResponse, int64, error) {
	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, 0, err
	}

	statements, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CashFlowStatementResponse, len(statements))
	for i := range statements {
		responses[i] = ToCashFlowStatementResponse(&statements[i])
	}
	return responses, total, nil
}

// Update applies a partial update and recomputes the section totals
func (s *CashFlowStatementService) Update(ctx context.Context, id uuid.UUID, req UpdateCashFlowStatementRequest) (*CashFlowStatementResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := setDate(&st.PeriodStart, "period_start", req.PeriodStart); err != nil {
		return nil, err
	}
	if err := setDate(&st.PeriodEnd, "period_end", req.PeriodEnd); err != nil {
		return nil, err
	}
	setDecimal(&st.BeginningCash, req.BeginningCash)
	req.CashFlowActivitiesRequest.apply(&st.CashFlowActivities)
	setString(&st.Notes, req.Notes)
	st.Touch()
	return s.save(ctx, st)
}

// Delete deletes a cash flow statement
func (s *CashFlowStatementService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *CashFlowStatementService) save(ctx context.Context, st *finance.CashFlowStatement) (*CashFlowStatementResponse, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	st.Recalculate()
	if err := s.repo.Save(ctx, st); err != nil {
		return nil, err
	}
	resp := ToCashFlowStatementResponse(st)
	return &resp, nil
}
