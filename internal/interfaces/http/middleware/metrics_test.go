package middleware

import (
	"context"
	"net/http"
	"testing"

	"github.com/finops/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}
	return byName
}

func TestHTTPMetrics_DisabledProvider(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(HTTPMetricsConfig{}))
	router.GET("/test", okHandler)

	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "/test", "").Code)
}

func TestHTTPMetrics_RecordsRoutePattern(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, zap.NewNop())

	router := gin.New()
	router.Use(HTTPMetrics(HTTPMetricsConfig{MeterProvider: mp, Logger: zap.NewNop()}))
	router.GET("/api/budgets/:id", func(c *gin.Context) {
		c.String(http.StatusNotFound, "missing")
	})

	request(router, http.MethodGet, "/api/budgets/one", "")
	request(router, http.MethodGet, "/api/budgets/two", "")
	request(router, http.MethodGet, "/nowhere", "")

	metrics := collectMetrics(t, reader)

	total, ok := metrics["http_server_request_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	counts := map[string]int64{}
	for _, dp := range total.DataPoints {
		route, _ := dp.Attributes.Value(attribute.Key("http.route"))
		status, _ := dp.Attributes.Value(attribute.Key("http.status_code"))
		assert.Equal(t, int64(http.StatusNotFound), status.AsInt64())
		counts[route.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"/api/budgets/:id": 2, "unknown": 1}, counts)

	duration, ok := metrics["http_server_request_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var observed uint64
	for _, dp := range duration.DataPoints {
		observed += dp.Count
	}
	assert.Equal(t, uint64(3), observed)

	active, ok := metrics["http_server_active_requests"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	for _, dp := range active.DataPoints {
		assert.Equal(t, int64(0), dp.Value)
	}
}
