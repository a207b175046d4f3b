package handler

import (
	"github.com/gin-gonic/gin"
	apporder "github.com/shop/backend/internal/application/order"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order API endpoints. Orders are read-only over HTTP;
// they are created by submitting a cart.
type OrderHandler struct {
	BaseHandler
	orderService *apporder.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apporder.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes on the given group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
	}
}

// List returns the current user's orders
func (h *OrderHandler) List(c *gin.Context) {
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

	result, err := h.orderService.ListForUser(c.Request.Context(), user, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns one order, owner or admin only
func (h *OrderHandler) GetByID(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
