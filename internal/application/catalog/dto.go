package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
)

// CreateProductRequest carries the input for creating a product
type CreateProductRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	Description   string `json:"description"`
	Price         string `json:"price" binding:"required,price"`
	StockQuantity int64  `json:"stock_quantity" binding:"min=0"`
}

// UpdateProductRequest carries the input for updating a product
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required,price"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Price         string     `json:"price"`
	Currency      string     `json:"currency"`
	StockQuantity int64      `json:"stock_quantity"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToProductResponse converts a product aggregate to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.StringFixed(2),
		Currency:      p.Currency,
		StockQuantity: p.StockQuantity,
		DeletedAt:     p.DeletedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
