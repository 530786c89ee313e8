package calc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-12", "-$12.00"},
		{"999.995", "$1,000.00"},
		{"12345678901234567.89", "$12,345,678,901,234,567.89"},
		{"-98765432109876543210.015", "-$98,765,432,109,876,543,210.02"},
	}
	for _, tc := range tests {
		t.Run(tc.amount, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatCurrency(d(tc.amount)))
		})
	}
}

func TestFormatCurrency_KeepsEveryDigit(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		digits := rapid.StringMatching(`[1-9][0-9]{0,30}`).Draw(rt, "digits")
		scale := rapid.Int32Range(0, 6).Draw(rt, "scale")
		amount := decimal.RequireFromString(digits).Shift(-scale)

		got := FormatCurrency(amount)

		plain := strings.NewReplacer("$", "", ",", "").Replace(got)
		if plain != amount.Round(2).StringFixed(2) {
			rt.Fatalf("%s formatted as %s", amount, got)
		}
	})
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "45.5%", FormatPercentage(d("45.46"), DefaultPercentageDecimals))
	assert.Equal(t, "100%", FormatPercentage(d("99.6"), 0))
	assert.Equal(t, "12.35%", FormatPercentage(d("12.345"), 2))
	assert.Equal(t, "7%", FormatPercentage(d("7.2"), -1))
	assert.Equal(t, "-3.1%", FormatPercentage(d("-3.14"), 1))
	assert.Equal(t, "1,234,567,890,123,456,789.12%", FormatPercentage(d("1234567890123456789.123"), 2))
}

func TestPercentAndRatio(t *testing.T) {
	assert.True(t, d("75").Equal(Percent(d("750"), d("1000"))))
	assert.True(t, Percent(d("10"), decimal.Zero).IsZero())
	assert.True(t, d("1.3333").Equal(Ratio(d("4"), d("3"))))
	assert.True(t, Ratio(d("4"), decimal.Zero).IsZero())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input any
		valid bool
		value string
	}{
		{"nil", nil, false, "0"},
		{"empty string", "", false, "0"},
		{"garbage", "abc", false, "0"},
		{"numeric string", "12.5", true, "12.5"},
		{"display string", "$1,250.00", true, "1250"},
		{"float", 3.25, true, "3.25"},
		{"int", 7, true, "7"},
		{"json number", json.Number("42"), true, "42"},
		{"unsupported type", true, false, "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := ParseAmount(tc.input)
			assert.Equal(t, tc.valid, a.Valid)
			assert.True(t, d(tc.value).Equal(a.OrZero()))
		})
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Payments []Amount `json:"payments"`
	}
	err := json.Unmarshal([]byte(`{"payments":[10, "5.5", "", null, "n/a", {"x":1}]}`), &payload)
	require.NoError(t, err)
	require.Len(t, payload.Payments, 6)

	assert.True(t, payload.Payments[0].Valid)
	assert.True(t, payload.Payments[1].Valid)
	assert.False(t, payload.Payments[2].Valid)
	assert.False(t, payload.Payments[3].Valid)
	assert.False(t, payload.Payments[4].Valid)
	assert.False(t, payload.Payments[5].Valid)
	assert.True(t, d("15.5").Equal(SumPayments(payload.Payments)))

	out, err := json.Marshal(payload.Payments[:3])
	require.NoError(t, err)
	assert.JSONEq(t, `[10, 5.5, null]`, string(out))
}
