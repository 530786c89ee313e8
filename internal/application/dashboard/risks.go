package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/finops/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Risks returns overdue invoices and forecasts with low ending cash
func (s *Service) Risks(ctx context.Context) (*RisksResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "risks")
	defer span.End()

	start := time.Now()
	now := s.now()
	items, err := s.collectRisks(ctx, now)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := &RisksResponse{Items: items, GeneratedAt: now.UTC()}
	counts := make(map[[2]string]int)
	for _, item := range items {
		resp.Summary.add(item.Severity)
		counts[[2]string{item.Type, string(item.Severity)}]++
	}
	for k, n := range counts {
		s.metrics.RecordRiskAlerts(ctx, k[0], k[1], n)
	}
	s.metrics.RecordDashboardBuild(ctx, "risks", time.Since(start))
	return resp, nil
}

func (s *Service) collectRisks(ctx context.Context, now time.Time) ([]RiskItem, error) {
	items := []RiskItem{}

	payables, err := s.repos.Payables.FindOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range payables {
		ap := &payables[i]
		items = append(items, overdueRisk(RiskOverduePayable, EntityAccountPayable, ap.ID,
			"Overdue payable "+ap.InvoiceNumber,
			fmt.Sprintf("Payment to %s", ap.VendorName),
			&ap.Invoice, now))
	}

	receivables, err := s.repos.Receivables.FindOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range receivables {
		ar := &receivables[i]
		items = append(items, overdueRisk(RiskOverdueReceivable, EntityAccountReceivable, ar.ID,
			"Overdue receivable "+ar.InvoiceNumber,
			fmt.Sprintf("Collection from %s", ar.CustomerName),
			&ar.Invoice, now))
	}

	forecasts, err := s.repos.Forecasts.FindEndingBelow(ctx, s.cfg.CashShortfallThreshold)
	if err != nil {
		return nil, err
	}
	for i := range forecasts {
		items = append(items, s.cashRisk(&forecasts[i]))
	}

	sortRisks(items)
	return items, nil
}

func overdueRisk(riskType, entityType string, id uuid.UUID, title, who string, inv *finance.Invoice, now time.Time) RiskItem {
	days := inv.DaysOverdue(now)
	return RiskItem{
		ID:          riskType + ":" + id.String(),
		Type:        riskType,
		Severity:    OverdueSeverity(days),
		Title:       title,
		Description: fmt.Sprintf("%s is %d days overdue with %s outstanding", who, days, calc.FormatCurrency(inv.BalanceDue)),
		Amount:      inv.BalanceDue,
		DaysOverdue: days,
		AgingBucket: inv.AgingBucket(now).String(),
		EntityID:    id,
		EntityType:  entityType,
		DueDate:     inv.DueDate.Format(dateLayout),
	}
}

func (s *Service) cashRisk(f *finance.CashFlowForecast) RiskItem {
	return RiskItem{
		ID:       RiskCashShortfall + ":" + f.ID.String(),
		Type:     RiskCashShortfall,
		Severity: CashSeverity(f.EndingCashPosition, s.cfg.CashShortfallThreshold),
		Title:    "Cash shortfall forecast for " + f.Period,
		Description: fmt.Sprintf("Ending cash position of %s is below the %s threshold",
			calc.FormatCurrency(f.EndingCashPosition), calc.FormatCurrency(s.cfg.CashShortfallThreshold)),
		Amount:     f.EndingCashPosition,
		EntityID:   f.ID,
		EntityType: EntityCashFlowForecast,
	}
}

// OverdueSeverity grades an overdue invoice: over 90 days critical, over 60
// high, over 30 medium, otherwise low
func OverdueSeverity(daysOverdue int) Severity {
	switch {
	case daysOverdue > 90:
		return SeverityCritical
	case daysOverdue > 60:
		return SeverityHigh
	case daysOverdue > 30:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// CashSeverity grades a low ending cash position against threshold
func CashSeverity(ending, threshold decimal.Decimal) Severity {
	switch {
	case ending.IsNegative():
		return SeverityCritical
	case ending.LessThan(threshold.Div(decimal.NewFromInt(2))):
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// sortRisks orders by severity, then by absolute amount descending.
// Shortfall amounts can be negative, so magnitude is compared.
func sortRisks(items []RiskItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := items[i].Severity.rank(), items[j].Severity.rank()
		if ri != rj {
			return ri < rj
		}
		return items[i].Amount.Abs().GreaterThan(items[j].Amount.Abs())
	})
}
