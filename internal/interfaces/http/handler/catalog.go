package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/shopadmin/backend/internal/application/catalog"
)

// catalogService is the API of the category and manufacturer services.
// R is the response type, C and U the create and update requests.
type catalogService[R, C, U any] interface {
	Create(ctx context.Context, tenantID uuid.UUID, req C) (*R, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*R, error)
	List(ctx context.Context, tenantID uuid.UUID, filter catalogapp.ListFilter) ([]R, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req U) (*R, error)
	Activate(ctx context.Context, tenantID, id uuid.UUID) (*R, error)
	Deactivate(ctx context.Context, tenantID, id uuid.UUID) (*R, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// catalogHandler serves the CRUD and status routes of one catalog resource
type catalogHandler[R, C, U any] struct {
	BaseHandler
	service catalogService[R, C, U]
}

// CategoryHandler serves /catalog/categories
type CategoryHandler struct {
	catalogHandler[catalogapp.CategoryResponse, catalogapp.CreateCategoryRequest, catalogapp.UpdateCategoryRequest]
}

func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	h := &CategoryHandler{}
	h.service = categoryService
	return h
}

// ManufacturerHandler serves /catalog/manufacturers
type ManufacturerHandler struct {
	catalogHandler[catalogapp.ManufacturerResponse, catalogapp.CreateManufacturerRequest, catalogapp.UpdateManufacturerRequest]
}

func NewManufacturerHandler(manufacturerService *catalogapp.ManufacturerService) *ManufacturerHandler {
	h := &ManufacturerHandler{}
	h.service = manufacturerService
	return h
}

// Create handles POST /
func (h *catalogHandler[R, C, U]) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// List handles GET / with page, page_size, search, status, order_by and
// order_dir query parameters
func (h *catalogHandler[R, C, U]) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter := catalogapp.ListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetByID handles GET /:id
func (h *catalogHandler[R, C, U]) GetByID(c *gin.Context) {
	h.withID(c, h.service.GetByID)
}

// Update handles PUT /:id; absent fields keep their value
func (h *catalogHandler[R, C, U]) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// Activate handles POST /:id/activate
func (h *catalogHandler[R, C, U]) Activate(c *gin.Context) {
	h.withID(c, h.service.Activate)
}

// Deactivate handles POST /:id/deactivate. The entity also leaves the
// homepage.
func (h *catalogHandler[R, C, U]) Deactivate(c *gin.Context) {
	h.withID(c, h.service.Deactivate)
}

// Delete handles DELETE /:id
func (h *catalogHandler[R, C, U]) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// withID resolves tenant and :id, runs call and writes its result as 200
func (h *catalogHandler[R, C, U]) withID(c *gin.Context, call func(ctx context.Context, tenantID, id uuid.UUID) (*R, error)) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := call(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
