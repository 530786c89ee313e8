package dashboard

import (
	"context"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/finops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// Aging buckets open payables and receivables by days overdue.
// Every bucket is present, in ascending order, even when empty.
func (s *Service) Aging(ctx context.Context) (*AgingReport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "aging")
	defer span.End()

	start := time.Now()
	now := s.now()

	payables, err := s.repos.Payables.FindOpen(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	receivables, err := s.repos.Receivables.FindOpen(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	apInvoices := make([]*finance.Invoice, len(payables))
	for i := range payables {
		apInvoices[i] = &payables[i].Invoice
	}
	arInvoices := make([]*finance.Invoice, len(receivables))
	for i := range receivables {
		arInvoices[i] = &receivables[i].Invoice
	}

	report := &AgingReport{
		AsOf:        calc.StartOfDay(now).Format(dateLayout),
		Payables:    agingSection(apInvoices, now),
		Receivables: agingSection(arInvoices, now),
	}
	s.metrics.RecordDashboardBuild(ctx, "aging", time.Since(start))
	return report, nil
}

func agingSection(invoices []*finance.Invoice, now time.Time) AgingSection {
	index := make(map[calc.AgingBucket]int, len(calc.AgingBuckets))
	section := AgingSection{Rows: make([]AgingRow, len(calc.AgingBuckets)), TotalAmount: decimal.Zero}
	for i, b := range calc.AgingBuckets {
		index[b] = i
		section.Rows[i] = AgingRow{Bucket: b.String(), Amount: decimal.Zero}
	}

	for _, inv := range invoices {
		if !inv.IsOpen() {
			continue
		}
		row := &section.Rows[index[inv.AgingBucket(now)]]
		row.Count++
		row.Amount = row.Amount.Add(inv.BalanceDue)
		section.TotalCount++
		section.TotalAmount = section.TotalAmount.Add(inv.BalanceDue)
	}
	return section
}
