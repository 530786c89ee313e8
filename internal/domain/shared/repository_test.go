package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Filter
		want Filter
	}{
		{"zero value", Filter{}, Filter{Limit: DefaultLimit, OrderDir: "desc"}},
		{"limit capped", Filter{Limit: 10_000, OrderDir: "ASC"}, Filter{Limit: MaxLimit, OrderDir: "asc"}},
		{"negative offset", Filter{Limit: 5, Offset: -3, OrderBy: "due_date"}, Filter{Limit: 5, OrderBy: "due_date", OrderDir: "desc"}},
		{"unknown direction", Filter{Limit: 1, Offset: 7, OrderDir: "sideways"}, Filter{Limit: 1, Offset: 7, OrderDir: "desc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
