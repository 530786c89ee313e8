package printing

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	financeapp "github.com/finops/backend/internal/application/finance"
	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	incomeStatementTemplate = "income_statement.html"
	balanceSheetTemplate    = "balance_sheet.html"
	statementDateLayout     = "January 2, 2006"
)

// statementView is the data passed to the statement templates
type statementView struct {
	Title     string
	Subtitle  string
	Notes     string
	Statement any
}

// statementLine is one labelled amount row
type statementLine struct {
	Label string
	Value decimal.Decimal
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": calc.FormatCurrency,
		"percent": func(v decimal.Decimal) string {
			return calc.FormatPercentage(v, calc.DefaultPercentageDecimals)
		},
		"negative": func(v decimal.Decimal) bool { return v.IsNegative() },
		"line": func(label string, v decimal.Decimal) statementLine {
			return statementLine{Label: label, Value: v}
		},
	}
}

// StatementPrinter prints financial statements as PDF documents
type StatementPrinter struct {
	renderer  PDFRenderer
	templates *template.Template
	logger    *zap.Logger
}

// NewStatementPrinter parses the embedded statement templates
func NewStatementPrinter(renderer PDFRenderer, logger *zap.Logger) (*StatementPrinter, error) {
	tmpl, err := template.New("statements").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse statement templates: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatementPrinter{renderer: renderer, templates: tmpl, logger: logger}, nil
}

// IncomeStatementPDF prints an income statement
func (p *StatementPrinter) IncomeStatementPDF(ctx context.Context, s *finance.IncomeStatement) ([]byte, error) {
	view := statementView{
		Title: "Income Statement",
		Subtitle: fmt.Sprintf("For the period %s to %s",
			s.PeriodStart.Format(statementDateLayout), s.PeriodEnd.Format(statementDateLayout)),
		Notes:     s.Notes,
		Statement: s,
	}
	return p.print(ctx, incomeStatementTemplate, view)
}

// BalanceSheetPDF prints a balance sheet
func (p *StatementPrinter) BalanceSheetPDF(ctx context.Context, bs *finance.BalanceSheet) ([]byte, error) {
	view := statementView{
		Title:     "Balance Sheet",
		Subtitle:  "As of " + bs.AsOfDate.Format(statementDateLayout),
		Notes:     bs.Notes,
		Statement: bs,
	}
	return p.print(ctx, balanceSheetTemplate, view)
}

func (p *StatementPrinter) renderHTML(name string, view statementView) (string, error) {
	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, name, view); err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "failed to execute "+name, err)
	}
	return buf.String(), nil
}

func (p *StatementPrinter) print(ctx context.Context, name string, view statementView) ([]byte, error) {
	html, err := p.renderHTML(name, view)
	if err != nil {
		return nil, err
	}

	result, err := p.renderer.Render(ctx, &RenderRequest{
		HTML:       html,
		Title:      view.Title,
		Margins:    DefaultMargins(),
		FooterHTML: footerHTML(time.Now()),
	})
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Statement printed",
		zap.String("template", name),
		zap.Int("pages", result.PageCount))
	return result.PDFData, nil
}

// footerHTML uses Chrome's print placeholders for page numbers
func footerHTML(printedAt time.Time) string {
	return `<div style="font-size:8px;width:100%;padding:0 12mm;display:flex;justify-content:space-between;">` +
		`<span>Printed ` + printedAt.UTC().Format("2006-01-02 15:04 MST") + `</span>` +
		`<span>Page <span class="pageNumber"></span> of <span class="totalPages"></span></span></div>`
}

var _ financeapp.StatementPrinter = (*StatementPrinter)(nil)
