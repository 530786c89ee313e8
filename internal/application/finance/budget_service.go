package finance

import (
	"context"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// BudgetService handles budget operations
type BudgetService struct {
	repo finance.BudgetRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(repo finance.BudgetRepository) *BudgetService {
	return &BudgetService{repo: repo}
}

// Create creates a budget
func (s *BudgetService) Create(ctx context.Context, req CreateBudgetRequest) (*BudgetResponse, error) {
	b, err := finance.NewBudget(req.Name, req.FiscalYear, decimalOrZero(req.OriginalAmount))
	if err != nil {
		return nil, err
	}
	b.Department = strings.TrimSpace(req.Department)
	b.Category = strings.TrimSpace(req.Category)
	b.Period = strings.TrimSpace(req.Period)
	setDecimal(&b.RevisedAmount, req.RevisedAmount)
	setDecimal(&b.ActualAmount, req.ActualAmount)
	setDecimal(&b.CommittedAmount, req.CommittedAmount)
	b.Notes = strings.TrimSpace(req.Notes)
	return s.save(ctx, b)
}

// GetByID retrieves a budget by ID
func (s *BudgetService) GetByID(ctx context.Context, id uuid.UUID) (*BudgetResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBudgetResponse(b)
	return &resp, nil
}

// List returns a page of budgets and the total match count
func (s *BudgetService) List(ctx context.Context, filter BudgetListFilter) ([]BudgetResponse, int64, error) {
	domainFilter := finance.BudgetFilter{
		Filter:     filter.ListQuery.Filter(),
		FiscalYear: filter.FiscalYear,
		Department: strings.TrimSpace(filter.Department),
		Category:   strings.TrimSpace(filter.Category),
	}

	budgets, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		responses[i] = ToBudgetResponse(&budgets[i])
	}
	return responses, total, nil
}

// Update applies a partial update and recomputes utilisation
func (s *BudgetService) Update(ctx context.Context, id uuid.UUID, req UpdateBudgetRequest) (*BudgetResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&b.Name, req.Name)
	setString(&b.Department, req.Department)
	setString(&b.Category, req.Category)
	if req.FiscalYear != nil {
		b.FiscalYear = *req.FiscalYear
	}
	setString(&b.Period, req.Period)
	setDecimal(&b.OriginalAmount, req.OriginalAmount)
	setDecimal(&b.RevisedAmount, req.RevisedAmount)
	setDecimal(&b.ActualAmount, req.ActualAmount)
	setDecimal(&b.CommittedAmount, req.CommittedAmount)
	setString(&b.Notes, req.Notes)
	b.Touch()
	return s.save(ctx, b)
}

// Delete deletes a budget
func (s *BudgetService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *BudgetService) save(ctx context.Context, b *finance.Budget) (*BudgetResponse, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.Recalculate()
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	resp := ToBudgetResponse(b)
	return &resp, nil
}
