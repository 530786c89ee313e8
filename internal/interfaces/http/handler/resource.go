package handler

import (
	"context"

	"github.com/finops/backend/internal/domain/shared"
	"github.com/finops/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListFilter is a query struct that normalizes to a page window
type ListFilter interface {
	Filter() shared.Filter
}

// ResourceService is the CRUD surface shared by every finance resource.
// C and U are the create and update requests, F the list filter, R the response.
type ResourceService[C, U any, F ListFilter, R any] interface {
	Create(ctx context.Context, req C) (*R, error)
	GetByID(ctx context.Context, id uuid.UUID) (*R, error)
	List(ctx context.Context, filter F) ([]R, int64, error)
	Update(ctx context.Context, id uuid.UUID, req U) (*R, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResourceHandler serves create, list, get, update and delete for one resource
type ResourceHandler[C, U any, F ListFilter, R any] struct {
	BaseHandler
	name    string
	service ResourceService[C, U, F, R]
	metrics *telemetry.FinanceMetrics
}

// NewResourceHandler creates a handler for the resource mounted at /api/<name>.
// metrics may be nil.
func NewResourceHandler[C, U any, F ListFilter, R any](
	name string,
	service ResourceService[C, U, F, R],
	metrics *telemetry.FinanceMetrics,
) *ResourceHandler[C, U, F, R] {
	return &ResourceHandler[C, U, F, R]{name: name, service: service, metrics: metrics}
}

// Name returns the path segment of the resource
func (h *ResourceHandler[C, U, F, R]) Name() string {
	return h.name
}

// RegisterRoutes mounts the CRUD routes under /<name>
func (h *ResourceHandler[C, U, F, R]) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/" + h.name)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /api/<name>
func (h *ResourceHandler[C, U, F, R]) List(c *gin.Context) {
	var filter F
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if items == nil {
		items = []R{}
	}

	page := filter.Filter()
	h.SuccessWithMeta(c, items, total, page.Limit, page.Offset)
}

// Get handles GET /api/<name>/:id
func (h *ResourceHandler[C, U, F, R]) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create handles POST /api/<name>
func (h *ResourceHandler[C, U, F, R]) Create(c *gin.Context) {
	var req C
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.RecordWrite(c.Request.Context(), h.name, "create")
	h.Created(c, item)
}

// Update handles PUT /api/<name>/:id
func (h *ResourceHandler[C, U, F, R]) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req U
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.RecordWrite(c.Request.Context(), h.name, "update")
	h.Success(c, item)
}

// Delete handles DELETE /api/<name>/:id
func (h *ResourceHandler[C, U, F, R]) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.RecordWrite(c.Request.Context(), h.name, "delete")
	h.Deleted(c)
}
