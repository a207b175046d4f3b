package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product API endpoints
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes on the given group.
// Reads are open to any authenticated user; writes require admin.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.GetByID)

		admin := products.Group("", middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
			admin.POST("/:id/restore", h.Restore)
		}
	}
}

// List returns products matching the filter
func (h *ProductHandler) List(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	filter.IncludeDeleted = c.Query("include_deleted") == "true"

	result, err := h.productService.List(c.Request.Context(), user, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single product
func (h *ProductHandler) GetByID(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create creates a new product
func (h *ProductHandler) Create(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), user, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update updates a product's name, description and price
func (h *ProductHandler) Update(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete soft deletes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Restore brings a soft deleted product back
func (h *ProductHandler) Restore(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	product, err := h.productService.Restore(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
