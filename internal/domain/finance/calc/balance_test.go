package calc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func amounts(values ...float64) []Amount {
	out := make([]Amount, len(values))
	for i, v := range values {
		out[i] = AmountFromFloat(v)
	}
	return out
}

func TestCalculateBalanceDue(t *testing.T) {
	tests := []struct {
		name     string
		total    decimal.Decimal
		payments []Amount
		expected string
	}{
		{"partial payments", decimal.NewFromInt(100), amounts(30, 20), "50"},
		{"overpaid clamps to zero", decimal.NewFromInt(100), amounts(150), "0"},
		{"no payments", decimal.NewFromFloat(99.999), nil, "100"},
		{"exact payment", decimal.NewFromInt(100), amounts(100), "0"},
		{"rounds to cents", decimal.NewFromFloat(10.005), amounts(0), "10.01"},
		{
			"invalid entries are ignored",
			decimal.NewFromInt(100),
			[]Amount{AmountFromFloat(25), {}, ParseAmount("abc"), ParseAmount("")},
			"75",
		},
		{"string payments", decimal.NewFromInt(100), []Amount{ParseAmount("12.50")}, "87.5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateBalanceDue(tc.total, tc.payments)
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got), "got %s", got)
		})
	}
}

func TestDetermineStatusAt(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	earlyToday := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		due      time.Time
		balance  decimal.Decimal
		expected PaymentStatus
	}{
		{"past due with balance", yesterday, decimal.NewFromInt(50), StatusOverdue},
		{"due today is pending", now, decimal.NewFromInt(50), StatusPending},
		{"due at midnight today is pending", earlyToday, decimal.NewFromInt(50), StatusPending},
		{"future due date", tomorrow, decimal.NewFromInt(50), StatusPending},
		{"zero balance past due is paid", yesterday, decimal.Zero, StatusPaid},
		{"zero balance future is paid", tomorrow, decimal.Zero, StatusPaid},
		{"zero value due date with zero balance", time.Time{}, decimal.Zero, StatusPaid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetermineStatusAt(tc.due, tc.balance, now))
		})
	}
}

func TestDetermineStatus_UsesToday(t *testing.T) {
	assert.Equal(t, StatusOverdue, DetermineStatus(time.Now().AddDate(0, 0, -1), decimal.NewFromInt(50)))
	assert.Equal(t, StatusPending, DetermineStatus(time.Now(), decimal.NewFromInt(50)))
	assert.Equal(t, StatusPaid, DetermineStatus(time.Now().AddDate(-1, 0, 0), decimal.Zero))
}

func TestCalculateDaysOverdueAt(t *testing.T) {
	now := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name     string
		due      time.Time
		expected int
	}{
		{"same day", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 0},
		{"one day", time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), 1},
		{"across leap day", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 30},
		{"future clamps to zero", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CalculateDaysOverdueAt(tc.due, now))
		})
	}
}

func TestPaymentStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPaid.IsValid())
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusOverdue.IsValid())
	assert.False(t, PaymentStatus("partial").IsValid())
}

func TestCalculateBalanceDue_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		total := decimal.NewFromInt(rapid.Int64Range(0, 10_000_000).Draw(rt, "total_cents")).Shift(-2)
		cents := rapid.SliceOfN(rapid.Int64Range(-100_000, 10_000_000), 0, 8).Draw(rt, "payments")
		payments := make([]Amount, len(cents))
		for i, c := range cents {
			payments[i] = NewAmount(decimal.NewFromInt(c).Shift(-2))
		}

		first := CalculateBalanceDue(total, payments)
		second := CalculateBalanceDue(total, payments)

		if !first.Equal(second) {
			rt.Fatalf("not idempotent: %s vs %s", first, second)
		}
		if first.IsNegative() {
			rt.Fatalf("negative balance %s", first)
		}
		if first.GreaterThan(total.Sub(SumPayments(payments))) && !first.IsZero() {
			rt.Fatalf("balance %s exceeds total minus payments", first)
		}
	})
}

func TestDetermineStatusAt_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(rapid.Int64Range(0, 1<<40).Draw(rt, "now_ns")))
		due := now.AddDate(0, 0, rapid.IntRange(-400, 400).Draw(rt, "offset_days"))
		balance := decimal.NewFromInt(rapid.Int64Range(0, 100_000).Draw(rt, "balance"))

		status := DetermineStatusAt(due, balance, now)
		if status != DetermineStatusAt(due, balance, now) {
			rt.Fatalf("status changed between identical calls")
		}
		if balance.IsZero() && status != StatusPaid {
			rt.Fatalf("zero balance reported as %s", status)
		}
		days := CalculateDaysOverdueAt(due, now)
		if days < 0 {
			rt.Fatalf("negative days overdue %d", days)
		}
		if status == StatusOverdue && days == 0 {
			rt.Fatalf("overdue with zero days")
		}
	})
}
