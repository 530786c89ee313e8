package calc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPercentageDecimals is the precision used by FormatPercentage callers
// that have no preference
const DefaultPercentageDecimals = 1

// FormatCurrency renders amount as US dollars with grouping and cents,
// e.g. "$1,234.50" or "-$12.00". Digits come from the decimal itself so
// amounts of any magnitude print exactly.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(moneyPlaces)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + "$" + groupThousands(rounded.StringFixed(moneyPlaces))
}

// FormatPercentage renders value with a fixed number of decimals and a "%" suffix.
// Negative decimals are treated as zero.
func FormatPercentage(value decimal.Decimal, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	rounded := value.Round(int32(decimals))
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + groupThousands(rounded.StringFixed(int32(decimals))) + "%"
}

// groupThousands inserts commas into the integer part of an unsigned
// fixed-point string.
func groupThousands(fixed string) string {
	intPart, frac, hasFrac := strings.Cut(fixed, ".")
	var b strings.Builder
	b.Grow(len(fixed) + len(intPart)/3)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Percent returns part/whole*100 rounded to 2 decimals, or zero when whole is zero
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
}

// Ratio returns numerator/denominator rounded to 4 decimals, or zero when the
// denominator is zero
func Ratio(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Round(4)
}
