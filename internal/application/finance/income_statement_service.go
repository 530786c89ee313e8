package finance

import (
	"context"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// IncomeStatementService handles income statement operations
type IncomeStatementService struct {
	repo    finance.IncomeStatementRepository
	printer StatementPrinter
}

// NewIncomeStatementService creates a new IncomeStatementService.
// printer may be nil, in which case PDF export is unavailable.
func NewIncomeStatementService(repo finance.IncomeStatementRepository, printer StatementPrinter) *IncomeStatementService {
	return &IncomeStatementService{repo: repo, printer: printer}
}

// Create creates an income statement and derives profit lines and margins
func (s *IncomeStatementService) Create(ctx context.Context, req CreateIncomeStatementRequest) (*IncomeStatementResponse, error) {
	start, err := ParseDate("period_start", req.PeriodStart)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate("period_end", req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	st, err := finance.NewIncomeStatement(start, end, decimalOrZero(req.Revenue))
	if err != nil {
		return nil, err
	}
	st.CostOfGoodsSold = decimalOrZero(req.CostOfGoodsSold)
	st.OperatingExpenses = decimalOrZero(req.OperatingExpenses)
	st.InterestExpense = decimalOrZero(req.InterestExpense)
	st.OtherIncome = decimalOrZero(req.OtherIncome)
	st.TaxExpense = decimalOrZero(req.TaxExpense)
	st.Notes = strings.TrimSpace(req.Notes)
	return s.save(ctx, st)
}

// GetByID retrieves an income statement by ID
func (s *IncomeStatementService) GetByID(ctx context.Context, id uuid.UUID) (*IncomeStatementResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToIncomeStatementResponse(st)
	return &resp, nil
}

// List returns a page of income statements filtered on period_end
func (s *IncomeStatementService) List(ctx context.Context, filter StatementListFilter) ([]IncomeStatementResponse, int64, error) {
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

	responses := make([]IncomeStatementResponse, len(statements))
	for i := range statements {
		responses[i] = ToIncomeStatementResponse(&statements[i])
	}
	return responses, total, nil
}

// Update applies a partial update and recomputes profit lines and margins
func (s *IncomeStatementService) Update(ctx context.Context, id uuid.UUID, req UpdateIncomeStatementRequest) (*IncomeStatementResponse, error) {
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
	setDecimal(&st.Revenue, req.Revenue)
	setDecimal(&st.CostOfGoodsSold, req.CostOfGoodsSold)
	setDecimal(&st.OperatingExpenses, req.OperatingExpenses)
	setDecimal(&st.InterestExpense, req.InterestExpense)
	setDecimal(&st.OtherIncome, req.OtherIncome)
	setDecimal(&st.TaxExpense, req.TaxExpense)
	setString(&st.Notes, req.Notes)
	st.Touch()
	return s.save(ctx, st)
}

// Delete deletes an income statement
func (s *IncomeStatementService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// PDF prints an income statement
func (s *IncomeStatementService) PDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if s.printer == nil {
		return nil, ErrPDFUnavailable
	}
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.printer.IncomeStatementPDF(ctx, st)
}

func (s *IncomeStatementService) save(ctx context.Context, st *finance.IncomeStatement) (*IncomeStatementResponse, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	st.Recalculate()
	if err := s.repo.Save(ctx, st); err != nil {
		return nil, err
	}
	resp := ToIncomeStatementResponse(st)
	return &resp, nil
}
