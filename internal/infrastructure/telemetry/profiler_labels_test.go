package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectLabels(ctx context.Context) map[string]string {
	got := map[string]string{}
	pprof.ForLabels(ctx, func(k, v string) bool {
		got[k] = v
		return true
	})
	return got
}

func TestWithProfilingLabels(t *testing.T) {
	var got map[string]string
	WithProfilingLabels(context.Background(), map[string]string{
		"View":       "summary",
		"user_id":    "4d1c",
		"request_id": "abc",
		"route":      "",
		"resource":   strings.Repeat("x", MaxLabelValueLength+10),
	}, func(ctx context.Context) {
		got = collectLabels(ctx)
	})

	assert.Equal(t, map[string]string{
		"view":     "summary",
		"resource": strings.Repeat("x", MaxLabelValueLength),
	}, got)
}

func TestWithProfilingLabels_NoLabelsStillRuns(t *testing.T) {
	ran := false
	WithProfilingLabels(context.Background(), map[string]string{"id": "42"}, func(ctx context.Context) {
		ran = true
		assert.Empty(t, collectLabels(ctx))
	})
	assert.True(t, ran)
}

func TestHTTPRequestLabels(t *testing.T) {
	tests := []struct {
		route    string
		resource string
	}{
		{"/api/accounts-payable/:id", "accounts-payable"},
		{"/api/dashboard/summary", "dashboard"},
		{"/api/:version", ""},
		{"/health", ""},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			labels := HTTPRequestLabels(tt.route, "GET")
			assert.Equal(t, tt.route, labels[ProfilingLabelRoute])
			assert.Equal(t, "GET", labels[ProfilingLabelMethod])
			assert.Equal(t, tt.resource, labels[ProfilingLabelResource])
		})
	}
}

func TestSanitizeLabelKey(t *testing.T) {
	assert.Equal(t, "cash_flow", sanitizeLabelKey("Cash-Flow"))
	assert.Equal(t, "a_b", sanitizeLabelKey("a b!"))
	assert.Equal(t, "", sanitizeLabelKey("$$"))
}
