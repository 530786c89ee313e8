package finance

import (
	"strings"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ListQuery carries the pagination and ordering parameters every list
// endpoint accepts. limit/offset win over page/page_size.
type ListQuery struct {
	Limit    int    `form:"limit" binding:"omitempty,min=0"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Filter converts the query into a normalized domain filter
func (q ListQuery) Filter() shared.Filter {
	f := shared.Filter{
		Limit:    q.Limit,
		Offset:   q.Offset,
		OrderBy:  strings.TrimSpace(q.OrderBy),
		OrderDir: q.OrderDir,
	}
	if f.Limit == 0 && q.PageSize > 0 {
		f.Limit = q.PageSize
	}
	f = f.Normalize()
	if q.Offset == 0 && q.Page > 1 {
		f.Offset = (q.Page - 1) * f.Limit
	}
	return f
}

// DateRangeQuery is the date_from/date_to pair used by dated resources
type DateRangeQuery struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// Range parses the bounds. Empty bounds are open.
func (q DateRangeQuery) Range() (finance.DateRange, error) {
	return parseDateRange("date_from", q.DateFrom, "date_to", q.DateTo)
}

func parseDateRange(fromField, from, toField, to string) (finance.DateRange, error) {
	var r finance.DateRange
	var err error
	if r.From, err = parseOptionalDate(fromField, from); err != nil {
		return r, err
	}
	if r.To, err = parseOptionalDate(toField, to); err != nil {
		return r, err
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return r, shared.NewValidationError(toField + " cannot be before " + fromField)
	}
	return r, nil
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns UTC
// midnight of that calendar day
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, shared.NewValidationError(field + " is required")
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, shared.NewValidationError(field + " must be a date in YYYY-MM-DD format")
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders a calendar date, empty for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

func decimalOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

func amountOrZero(v *calc.Amount) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return v.OrZero()
}

// Partial update helpers: a nil source leaves the destination untouched

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

func setAmount(dst *decimal.Decimal, v *calc.Amount) {
	if v != nil {
		*dst = v.OrZero()
	}
}

func setDate(dst *time.Time, field string, v *string) error {
	if v == nil {
		return nil
	}
	t, err := ParseDate(field, *v)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

// setOptionalDate clears the destination when v points at an empty string
func setOptionalDate(dst **time.Time, field string, v *string) error {
	if v == nil {
		return nil
	}
	t, err := parseOptionalDate(field, *v)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}
