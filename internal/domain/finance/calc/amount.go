package calc

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value read from a loosely typed source.
// Valid is false when the source was empty or not numeric.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// NewAmount returns a valid Amount
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Value: d, Valid: true}
}

// AmountFromFloat returns a valid Amount from a float64
func AmountFromFloat(f float64) Amount {
	return NewAmount(decimal.NewFromFloat(f))
}

// OrZero returns the value, or zero when the amount is invalid
func (a Amount) OrZero() decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Value
}

// ParseAmount converts a loosely typed value into an Amount.
// Supported inputs are numbers, numeric strings, decimals and json.Number.
// Everything else, including nil and "", yields an invalid Amount.
func ParseAmount(v any) Amount {
	switch x := v.(type) {
	case nil:
		return Amount{}
	case Amount:
		return x
	case decimal.Decimal:
		return NewAmount(x)
	case *decimal.Decimal:
		if x == nil {
			return Amount{}
		}
		return NewAmount(*x)
	case float64:
		return NewAmount(decimal.NewFromFloat(x))
	case float32:
		return NewAmount(decimal.NewFromFloat32(x))
	case int:
		return NewAmount(decimal.NewFromInt(int64(x)))
	case int64:
		return NewAmount(decimal.NewFromInt(x))
	case int32:
		return NewAmount(decimal.NewFromInt32(x))
	case json.Number:
		return parseAmountString(string(x))
	case string:
		return parseAmountString(x)
	}
	return Amount{}
}

func parseAmountString(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	// Accept display formatted input such as "$1,250.00".
	s = strings.NewReplacer(",", "", "$", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return NewAmount(d)
}

// UnmarshalJSON never fails: malformed values produce an invalid Amount.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*a = Amount{}
			return nil
		}
		*a = parseAmountString(s)
		return nil
	}
	*a = parseAmountString(string(b))
	return nil
}

// MarshalJSON writes invalid amounts as null and valid ones as bare numbers
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Value.String()), nil
}
