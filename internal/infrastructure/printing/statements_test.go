package printing

import (
	"context"
	"testing"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	requests []*RenderRequest
	err      error
}

func (f *fakeRenderer) Render(_ context.Context, req *RenderRequest) (*RenderResult, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &RenderResult{PDFData: []byte("%PDF-1.7 fake"), PageCount: 1}, nil
}

func (f *fakeRenderer) Close() error { return nil }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestPrinter(t *testing.T) (*StatementPrinter, *fakeRenderer) {
	t.Helper()
	renderer := &fakeRenderer{}
	p, err := NewStatementPrinter(renderer, nil)
	require.NoError(t, err)
	return p, renderer
}

func TestStatementPrinter_IncomeStatement(t *testing.T) {
	p, renderer := newTestPrinter(t)

	s, err := finance.NewIncomeStatement(
		time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		dec("125000"),
	)
	require.NoError(t, err)
	s.CostOfGoodsSold = dec("50000")
	s.OperatingExpenses = dec("90000")
	s.Notes = "Q2 <unaudited>"
	s.Recalculate()

	pdf, err := p.IncomeStatementPDF(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 fake"), pdf)

	require.Len(t, renderer.requests, 1)
	req := renderer.requests[0]
	assert.Equal(t, "Income Statement", req.Title)
	assert.Equal(t, DefaultMargins(), req.Margins)
	assert.Contains(t, req.FooterHTML, "pageNumber")

	html := req.HTML
	assert.Contains(t, html, "For the period April 1, 2024 to June 30, 2024")
	assert.Contains(t, html, "$125,000.00")
	assert.Contains(t, html, "$75,000.00")
	assert.Contains(t, html, "-$15,000.00", "operating loss")
	assert.Contains(t, html, "60.0%", "gross margin")
	assert.Contains(t, html, "-12.0%", "net margin")
	assert.Contains(t, html, "Q2 &lt;unaudited&gt;", "notes are escaped")
	assert.Contains(t, html, `class="amount negative"`)
}

func TestStatementPrinter_BalanceSheet(t *testing.T) {
	p, renderer := newTestPrinter(t)

	bs, err := finance.NewBalanceSheet(time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), finance.BalanceSheetLines{
		Cash:             dec("40000"),
		Inventory:        dec("10000"),
		AccountsPayable:  dec("15000"),
		OwnerEquity:      dec("25000"),
		RetainedEarnings: dec("10000"),
	})
	require.NoError(t, err)

	_, err = p.BalanceSheetPDF(context.Background(), bs)
	require.NoError(t, err)

	html := renderer.requests[0].HTML
	assert.Contains(t, html, "As of June 30, 2024")
	assert.Contains(t, html, "$50,000.00")
	assert.Contains(t, html, "$35,000.00")
	assert.Contains(t, html, "Balanced")
	assert.NotContains(t, html, "Out of balance")
}

func TestStatementPrinter_RendererErrorsPropagate(t *testing.T) {
	p, renderer := newTestPrinter(t)
	renderer.err = NewRenderError(ErrCodeRenderTimeout, "PDF rendering timed out", nil)

	bs, err := finance.NewBalanceSheet(time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), finance.BalanceSheetLines{})
	require.NoError(t, err)

	_, err = p.BalanceSheetPDF(context.Background(), bs)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeRenderTimeout, renderErr.Code)
}
