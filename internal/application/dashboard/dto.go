package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Severity ranks risks and insights. Lower rank sorts first.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

// Risk types
const (
	RiskOverduePayable    = "overdue_payable"
	RiskOverdueReceivable = "overdue_receivable"
	RiskCashShortfall     = "cash_shortfall"
)

// Insight types
const (
	InsightUpcomingPayable           = "upcoming_payable"
	InsightUpcomingReceivable        = "upcoming_receivable"
	InsightSeverelyOverduePayable    = "severely_overdue_payable"
	InsightSeverelyOverdueReceivable = "severely_overdue_receivable"
	InsightBudgetOverrun             = "budget_overrun"
)

// Entity types referenced by risks and insights
const (
	EntityAccountPayable    = "account_payable"
	EntityAccountReceivable = "account_receivable"
	EntityCashFlowForecast  = "cash_flow_forecast"
	EntityBudget            = "budget"
)

// RiskItem is a single risk surfaced on the dashboard
type RiskItem struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Severity    Severity        `json:"severity"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DaysOverdue int             `json:"days_overdue,omitempty"`
	AgingBucket string          `json:"aging_bucket,omitempty"`
	EntityID    uuid.UUID       `json:"entity_id"`
	EntityType  string          `json:"entity_type"`
	DueDate     string          `json:"due_date,omitempty"`
}

// SeverityCounts counts items per severity
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

func (c *SeverityCounts) add(s Severity) {
	switch s {
	case SeverityCritical:
		c.Critical++
	case SeverityHigh:
		c.High++
	case SeverityMedium:
		c.Medium++
	default:
		c.Low++
	}
	c.Total++
}

// RisksResponse lists risks ordered by severity then amount
type RisksResponse struct {
	Items       []RiskItem     `json:"items"`
	Summary     SeverityCounts `json:"summary"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Insight is an actionable observation such as an invoice falling due
type Insight struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Priority     Severity        `json:"priority"`
	Title        string          `json:"title"`
	Message      string          `json:"message"`
	Amount       decimal.Decimal `json:"amount"`
	EntityID     uuid.UUID       `json:"entity_id"`
	EntityType   string          `json:"entity_type"`
	DueDate      string          `json:"due_date,omitempty"`
	DaysUntilDue *int            `json:"days_until_due,omitempty"`
	DaysOverdue  *int            `json:"days_overdue,omitempty"`
}

// InsightsResponse lists insights ordered by priority then amount
type InsightsResponse struct {
	Items       []Insight      `json:"items"`
	Summary     SeverityCounts `json:"summary"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// AgingRow is one aging bucket
type AgingRow struct {
	Bucket string          `json:"bucket"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// AgingSection is the aging breakdown for one side of the ledger
type AgingSection struct {
	Rows        []AgingRow      `json:"rows"`
	TotalCount  int             `json:"total_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// AgingReport breaks open payables and receivables down by days overdue
type AgingReport struct {
	AsOf        string       `json:"as_of"`
	Payables    AgingSection `json:"payables"`
	Receivables AgingSection `json:"receivables"`
}

// InvoiceTotals summarises one side of the ledger
type InvoiceTotals struct {
	Count         int64           `json:"count"`
	OpenCount     int64           `json:"open_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	OverdueCount  int64           `json:"overdue_count"`
	OverdueAmount decimal.Decimal `json:"overdue_amount"`
}

// ForecastSnapshot is the latest cash flow forecast
type ForecastSnapshot struct {
	ID                 uuid.UUID       `json:"id"`
	Period             string          `json:"period"`
	EndingCashPosition decimal.Decimal `json:"ending_cash_position"`
	CashShortfall      bool            `json:"cash_shortfall"`
}

// BudgetSnapshot totals all budgets
type BudgetSnapshot struct {
	Count              int64           `json:"count"`
	Revised            decimal.Decimal `json:"revised"`
	Utilised           decimal.Decimal `json:"utilised"`
	Remaining          decimal.Decimal `json:"remaining"`
	UtilisationPercent decimal.Decimal `json:"utilisation_percent"`
}

// WorkingCapitalSnapshot is the latest working capital position
type WorkingCapitalSnapshot struct {
	ID             uuid.UUID       `json:"id"`
	AsOfDate       string          `json:"as_of_date"`
	WorkingCapital decimal.Decimal `json:"working_capital"`
	CurrentRatio   decimal.Decimal `json:"current_ratio"`
	QuickRatio     decimal.Decimal `json:"quick_ratio"`
}

// IncomeSnapshot is the latest income statement
type IncomeSnapshot struct {
	ID        uuid.UUID       `json:"id"`
	PeriodEnd string          `json:"period_end"`
	Revenue   decimal.Decimal `json:"revenue"`
	NetIncome decimal.Decimal `json:"net_income"`
	NetMargin decimal.Decimal `json:"net_margin"`
}

// Summary is the dashboard landing view. Snapshots are nil when no record exists.
type Summary struct {
	AsOf           string                  `json:"as_of"`
	Payables       InvoiceTotals           `json:"payables"`
	Receivables    InvoiceTotals           `json:"receivables"`
	CashForecast   *ForecastSnapshot       `json:"cash_forecast"`
	Budgets        BudgetSnapshot          `json:"budgets"`
	WorkingCapital *WorkingCapitalSnapshot `json:"working_capital"`
	Income         *IncomeSnapshot         `json:"income"`
	Risks          SeverityCounts          `json:"risks"`
	GeneratedAt    time.Time               `json:"generated_at"`
}
