package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finops/backend/internal/application/dashboard"
	"github.com/finops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupDashboardRouter(svc DashboardService) *gin.Engine {
	router := gin.New()
	NewDashboardHandler(svc).RegisterRoutes(router.Group("/api"))
	return router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestDashboardHandler_Risks(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Risks", mock.Anything).Return(&dashboard.RisksResponse{
		Items: []dashboard.RiskItem{{
			ID:          "overdue_payable-1",
			Type:        "overdue_payable",
			Severity:    dashboard.SeverityCritical,
			Amount:      decimal.RequireFromString("1250.50"),
			DaysOverdue: 95,
			EntityID:    uuid.New(),
			EntityType:  "accounts-payable",
		}},
		Summary: dashboard.SeverityCounts{Critical: 1, Total: 1},
	}, nil)

	w := get(setupDashboardRouter(svc), "/api/dashboard/risks")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	items := data["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "critical", item["severity"])
	assert.Equal(t, float64(95), item["days_overdue"])
	summary := data["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["critical"])
	assert.Equal(t, float64(1), summary["total"])
}

func TestDashboardHandler_Routes(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Summary", mock.Anything).Return(&dashboard.Summary{}, nil)
	svc.On("Insights", mock.Anything).Return(&dashboard.InsightsResponse{Items: []dashboard.Insight{}}, nil)
	svc.On("Aging", mock.Anything).Return(&dashboard.AgingReport{AsOf: "2024-06-30"}, nil)
	router := setupDashboardRouter(svc)

	for _, path := range []string{"/api/dashboard", "/api/dashboard/insights", "/api/dashboard/aging"} {
		t.Run(path, func(t *testing.T) {
			w := get(router, path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, decodeResponse(t, w).Success)
		})
	}
	svc.AssertExpectations(t)
}

func TestDashboardHandler_Error(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Aging", mock.Anything).Return(nil, errors.New("db down"))

	w := get(setupDashboardRouter(svc), "/api/dashboard/aging")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrCodeInternal, decodeResponse(t, w).Error.Code)
}
