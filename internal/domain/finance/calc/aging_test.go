package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGetAgingBucket(t *testing.T) {
	tests := []struct {
		days     int
		expected AgingBucket
	}{
		{-3, AgingCurrent},
		{0, AgingCurrent},
		{1, Aging1To30},
		{30, Aging1To30},
		{31, Aging31To60},
		{60, Aging31To60},
		{61, Aging61To90},
		{90, Aging61To90},
		{91, AgingOver90},
		{365, AgingOver90},
	}

	for _, tc := range tests {
		t.Run(tc.expected.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, GetAgingBucket(tc.days))
		})
	}
}

func TestGetAgingBucket_Monotonic(t *testing.T) {
	order := make(map[AgingBucket]int, len(AgingBuckets))
	for i, b := range AgingBuckets {
		order[b] = i
	}

	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(-10, 500).Draw(rt, "a")
		b := rapid.IntRange(a, 500).Draw(rt, "b")
		if order[GetAgingBucket(a)] > order[GetAgingBucket(b)] {
			rt.Fatalf("bucket for %d sorts after bucket for %d", a, b)
		}
		if GetAgingBucket(a) != GetAgingBucket(a) {
			rt.Fatalf("bucket not stable")
		}
	})
}
