package handler

import (
	"github.com/gin-gonic/gin"
	appcart "github.com/shop/backend/internal/application/cart"
	"github.com/shop/backend/internal/domain/shared/valueobject"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *appcart.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *appcart.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes registers cart routes on the given group
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:productId", h.UpdateItemQuantity)
		cart.DELETE("/items/:productId", h.RemoveItem)
		cart.POST("/submit", h.Submit)
	}
}

// AddItemRequest is the request body for adding an item to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest is the request body for changing a line item quantity
type UpdateQuantityRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// SubmitCartRequest is the request body for submitting the cart
type SubmitCartRequest struct {
	ShippingAddress AddressRequest `json:"shipping_address" binding:"required"`
}

// AddressRequest is the request shape of a shipping address
type AddressRequest struct {
	Street1    string `json:"street1" binding:"required"`
	Street2    string `json:"street2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country"`
}

func (r AddressRequest) toAddress() (valueobject.Address, error) {
	opts := []valueobject.AddressOption{}
	if r.Street2 != "" {
		opts = append(opts, valueobject.WithStreet2(r.Street2))
	}
	if r.Country != "" {
		opts = append(opts, valueobject.WithCountry(r.Country))
	}
	return valueobject.NewAddress(r.Street1, r.City, r.State, r.PostalCode, opts...)
}

// Get returns the current user's cart
func (h *CartHandler) Get(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), user)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem adds a product to the cart, reserving stock
func (h *CartHandler) AddItem(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), user, req.ProductID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItemQuantity sets a line item to an absolute quantity
func (h *CartHandler) UpdateItemQuantity(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.UpdateItemQuantity(c.Request.Context(), user, c.Param("productId"), req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem removes a line item, releasing its reserved stock
func (h *CartHandler) RemoveItem(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), user, c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Submit converts the cart into an order after address verification
func (h *CartHandler) Submit(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := req.ShippingAddress.toAddress()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	order, err := h.cartService.SubmitCart(c.Request.Context(), user, address)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}
