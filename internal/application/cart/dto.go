package cart

import (
	"time"

	"github.com/google/uuid"
	cartdomain "github.com/shop/backend/internal/domain/cart"
	orderdomain "github.com/shop/backend/internal/domain/order"
)

// CartItemResponse is the API representation of a cart line item
type CartItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   string    `json:"unit_price"`
	Currency    string    `json:"currency"`
	Quantity    int64     `json:"quantity"`
	Subtotal    string    `json:"subtotal"`
}

// CartResponse is the API representation of a cart
type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	Items     []CartItemResponse `json:"items"`
	Total     string             `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ToCartResponse converts a cart aggregate to its API representation
func ToCartResponse(c *cartdomain.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for i := range c.Items {
		item := c.Items[i]
		items = append(items, CartItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Currency:    item.Currency,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal().StringFixed(2),
		})
	}
	return CartResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     items,
		Total:     c.Total().StringFixed(2),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// OrderItemResponse is the API representation of an order line item
type OrderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   string    `json:"unit_price"`
	Currency    string    `json:"currency"`
	Quantity    int64     `json:"quantity"`
	Subtotal    string    `json:"subtotal"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	Items           []OrderItemResponse `json:"items"`
	ShippingAddress string              `json:"shipping_address"`
	Total           string              `json:"total"`
	Currency        string              `json:"currency"`
	SubmittedAt     time.Time           `json:"submitted_at"`
}

// ToOrderResponse converts an order aggregate to its API representation
func ToOrderResponse(o *orderdomain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := o.Items[i]
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Currency:    item.Currency,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal().StringFixed(2),
		})
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		ShippingAddress: o.ShippingAddress.FullAddress(),
		Total:           o.Total.StringFixed(2),
		Currency:        o.Currency,
		SubmittedAt:     o.SubmittedAt,
	}
}
