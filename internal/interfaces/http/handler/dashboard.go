package handler

import (
	"context"

	"github.com/finops/backend/internal/application/dashboard"
	"github.com/gin-gonic/gin"
)

// DashboardService builds the dashboard views
type DashboardService interface {
	Summary(ctx context.Context) (*dashboard.Summary, error)
	Risks(ctx context.Context) (*dashboard.RisksResponse, error)
	Insights(ctx context.Context) (*dashboard.InsightsResponse, error)
	Aging(ctx context.Context) (*dashboard.AgingReport, error)
}

// DashboardHandler serves the read-only /api/dashboard views
type DashboardHandler struct {
	BaseHandler
	service DashboardService
}

// NewDashboardHandler creates a DashboardHandler
func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes mounts the dashboard routes under /dashboard
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/dashboard")
	g.GET("", h.Summary)
	g.GET("/risks", h.Risks)
	g.GET("/insights", h.Insights)
	g.GET("/aging", h.Aging)
}

// Summary handles GET /api/dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	respond(h, c, h.service.Summary)
}

// Risks handles GET /api/dashboard/risks
func (h *DashboardHandler) Risks(c *gin.Context) {
	respond(h, c, h.service.Risks)
}

// Insights handles GET /api/dashboard/insights
func (h *DashboardHandler) Insights(c *gin.Context) {
	respond(h, c, h.service.Insights)
}

// Aging handles GET /api/dashboard/aging
func (h *DashboardHandler) Aging(c *gin.Context) {
	respond(h, c, h.service.Aging)
}

func respond[T any](h *DashboardHandler, c *gin.Context, view func(context.Context) (*T, error)) {
	data, err := view(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, data)
}
