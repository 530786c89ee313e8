package finance

import (
	"context"
	"strings"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// JournalEntryService handles journal entry operations
type JournalEntryService struct {
	repo finance.JournalEntryRepository
}

// NewJournalEntryService creates a new JournalEntryService
func NewJournalEntryService(repo finance.JournalEntryRepository) *JournalEntryService {
	return &JournalEntryService{repo: repo}
}

// Create creates a journal entry. Entries start as drafts unless a status is given.
func (s *JournalEntryService) Create(ctx context.Context, req CreateJournalEntryRequest) (*JournalEntryResponse, error) {
	entryDate, err := ParseDate("entry_date", req.EntryDate)
	if err != nil {
		return nil, err
	}

	entry := finance.NewJournalEntry(req.EntryNumber, req.AccountCode, entryDate)
	entry.AccountName = strings.TrimSpace(req.AccountName)
	entry.Description = strings.TrimSpace(req.Description)
	entry.Debit = decimalOrZero(req.Debit)
	entry.Credit = decimalOrZero(req.Credit)
	entry.Reference = strings.TrimSpace(req.Reference)
	if req.Status != "" {
		entry.Status = finance.JournalStatus(req.Status)
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, err
	}
	resp := ToJournalEntryResponse(entry)
	return &resp, nil
}

// GetByID retrieves a journal entry by ID
func (s *JournalEntryService) GetByID(ctx context.Context, id uuid.UUID) (*JournalEntryResponse, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToJournalEntryResponse(entry)
	return &resp, nil
}

// List returns a page of journal entries and the total match count
func (s *JournalEntryService) List(ctx context.Context, filter JournalEntryListFilter) ([]JournalEntryResponse, int64, error) {
	dates, err := filter.Range()
	if err != nil {
		return nil, 0, err
	}
	domainFilter := finance.JournalEntryFilter{
		Filter:      filter.ListQuery.Filter(),
		AccountCode: strings.TrimSpace(filter.AccountCode),
		EntryDate:   dates,
	}
	if filter.Status != "" {
		status := finance.JournalStatus(filter.Status)
		domainFilter.Status = &status
	}

	entries, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses, total, nil
}

// Update applies a partial update to a journal entry
func (s *JournalEntryService) Update(ctx context.Context, id uuid.UUID, req UpdateJournalEntryRequest) (*JournalEntryResponse, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&entry.EntryNumber, req.EntryNumber)
	if err := setDate(&entry.EntryDate, "entry_date", req.EntryDate); err != nil {
		return nil, err
	}
	setString(&entry.AccountCode, req.AccountCode)
	setString(&entry.AccountName, req.AccountName)
	setString(&entry.Description, req.Description)
	setDecimal(&entry.Debit, req.Debit)
	setDecimal(&entry.Credit, req.Credit)
	setString(&entry.Reference, req.Reference)
	if req.Status != nil {
		entry.Status = finance.JournalStatus(*req.Status)
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	entry.Touch()

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, err
	}
	resp := ToJournalEntryResponse(entry)
	return &resp, nil
}

// Delete deletes a journal entry
func (s *JournalEntryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
