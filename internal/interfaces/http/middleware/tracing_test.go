package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracing_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: false}), SpanAttributes())
	router.GET("/test", okHandler)

	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "/test", "").Code)
}

func TestTracing_SpanCarriesRouteAndIdentity(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	svc := newTestJWTService(15 * time.Minute)
	pair, input := newTestTokenPair(t, svc, "viewer")

	router := gin.New()
	router.Use(
		RequestID(),
		Tracing(TracingConfig{
			Enabled:     true,
			ServiceName: "finops-test",
			Options:     []otelgin.Option{otelgin.WithTracerProvider(tp)},
		}),
		JWTAuthMiddleware(svc),
		SpanAttributes(),
	)
	router.GET("/api/budgets/:id", okHandler)

	w := request(router, http.MethodGet, "/api/budgets/42", pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/budgets/:id")

	attrs := map[attribute.Key]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	assert.Equal(t, w.Header().Get(RequestIDHeader), attrs["request_id"])
	assert.Equal(t, input.UserID.String(), attrs["user_id"])
}
