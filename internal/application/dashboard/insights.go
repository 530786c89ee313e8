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

var hundred = decimal.NewFromInt(100)

// Insights returns invoices falling due soon, severely overdue invoices and
// budgets near or over their limit
func (s *Service) Insights(ctx context.Context) (*InsightsResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "insights")
	defer span.End()

	start := time.Now()
	now := s.now()
	items, err := s.collectInsights(ctx, now)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := &InsightsResponse{Items: items, GeneratedAt: now.UTC()}
	for _, item := range items {
		resp.Summary.add(item.Priority)
	}
	s.metrics.RecordDashboardBuild(ctx, "insights", time.Since(start))
	return resp, nil
}

func (s *Service) collectInsights(ctx context.Context, now time.Time) ([]Insight, error) {
	today := calc.StartOfDay(now)
	until := today.AddDate(0, 0, s.cfg.UpcomingDays)
	items := []Insight{}

	upcomingAP, err := s.repos.Payables.FindDueBetween(ctx, today, until)
	if err != nil {
		return nil, err
	}
	for i := range upcomingAP {
		ap := &upcomingAP[i]
		items = append(items, upcomingInsight(InsightUpcomingPayable, EntityAccountPayable, ap.ID,
			fmt.Sprintf("Payable %s to %s", ap.InvoiceNumber, ap.VendorName), &ap.Invoice, today))
	}

	upcomingAR, err := s.repos.Receivables.FindDueBetween(ctx, today, until)
	if err != nil {
		return nil, err
	}
	for i := range upcomingAR {
		ar := &upcomingAR[i]
		items = append(items, upcomingInsight(InsightUpcomingReceivable, EntityAccountReceivable, ar.ID,
			fmt.Sprintf("Receivable %s from %s", ar.InvoiceNumber, ar.CustomerName), &ar.Invoice, today))
	}

	overdueAP, err := s.repos.Payables.FindOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range overdueAP {
		ap := &overdueAP[i]
		if insight, ok := s.severeInsight(InsightSeverelyOverduePayable, EntityAccountPayable, ap.ID,
			fmt.Sprintf("Payable %s to %s", ap.InvoiceNumber, ap.VendorName), &ap.Invoice, now); ok {
			items = append(items, insight)
		}
	}

	overdueAR, err := s.repos.Receivables.FindOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range overdueAR {
		ar := &overdueAR[i]
		if insight, ok := s.severeInsight(InsightSeverelyOverdueReceivable, EntityAccountReceivable, ar.ID,
			fmt.Sprintf("Receivable %s from %s", ar.InvoiceNumber, ar.CustomerName), &ar.Invoice, now); ok {
			items = append(items, insight)
		}
	}

	budgets, err := s.repos.Budgets.FindUtilisedAtLeast(ctx, s.cfg.BudgetWarningPercent)
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		items = append(items, budgetInsight(&budgets[i]))
	}

	sortInsights(items)
	return items, nil
}

func upcomingInsight(kind, entityType string, id uuid.UUID, subject string, inv *finance.Invoice, today time.Time) Insight {
	days := calc.DaysBetween(today, inv.DueDate)
	priority := SeverityMedium
	if days <= 2 {
		priority = SeverityHigh
	}
	return Insight{
		ID:           kind + ":" + id.String(),
		Type:         kind,
		Priority:     priority,
		Title:        subject + " " + dueIn(days),
		Message:      fmt.Sprintf("%s outstanding, due %s", calc.FormatCurrency(inv.BalanceDue), inv.DueDate.Format(dateLayout)),
		Amount:       inv.BalanceDue,
		EntityID:     id,
		EntityType:   entityType,
		DueDate:      inv.DueDate.Format(dateLayout),
		DaysUntilDue: &days,
	}
}

func (s *Service) severeInsight(kind, entityType string, id uuid.UUID, subject string, inv *finance.Invoice, now time.Time) (Insight, bool) {
	days := inv.DaysOverdue(now)
	if days <= s.cfg.SevereOverdueDays {
		return Insight{}, false
	}
	priority := SeverityHigh
	if days > 90 {
		priority = SeverityCritical
	}
	return Insight{
		ID:          kind + ":" + id.String(),
		Type:        kind,
		Priority:    priority,
		Title:       fmt.Sprintf("%s is %d days overdue", subject, days),
		Message:     fmt.Sprintf("%s outstanding since %s", calc.FormatCurrency(inv.BalanceDue), inv.DueDate.Format(dateLayout)),
		Amount:      inv.BalanceDue,
		EntityID:    id,
		EntityType:  entityType,
		DueDate:     inv.DueDate.Format(dateLayout),
		DaysOverdue: &days,
	}, true
}

func budgetInsight(b *finance.Budget) Insight {
	priority := SeverityMedium
	title := fmt.Sprintf("Budget %s is %s utilised", b.Name, calc.FormatPercentage(b.UtilisationPercent, calc.DefaultPercentageDecimals))
	if b.UtilisationPercent.GreaterThan(hundred) {
		priority = SeverityHigh
		title = fmt.Sprintf("Budget %s is over by %s", b.Name, calc.FormatCurrency(b.RemainingAmount.Neg()))
	}
	return Insight{
		ID:         InsightBudgetOverrun + ":" + b.ID.String(),
		Type:       InsightBudgetOverrun,
		Priority:   priority,
		Title:      title,
		Message:    fmt.Sprintf("%s of %s used", calc.FormatCurrency(b.TotalUtilised), calc.FormatCurrency(b.RevisedAmount)),
		Amount:     b.TotalUtilised,
		EntityID:   b.ID,
		EntityType: EntityBudget,
	}
}

func dueIn(days int) string {
	switch days {
	case 0:
		return "is due today"
	case 1:
		return "is due tomorrow"
	default:
		return fmt.Sprintf("is due in %d days", days)
	}
}

func sortInsights(items []Insight) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := items[i].Priority.rank(), items[j].Priority.rank()
		if ri != rj {
			return ri < rj
		}
		return items[i].Amount.GreaterThan(items[j].Amount)
	})
}
