package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles product administration. All mutating operations
// are admin-gated; the actor from the user context is attributed on every
// emitted event.
type ProductService struct {
	repo      catalog.ProductRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(repo catalog.ProductRepository, publisher shared.EventPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create creates a new product. The duplicate-name check here is a
// fast-path optimization; the database unique index is the authoritative
// backstop and a conflicting save surfaces as DuplicateProductError too.
func (s *ProductService) Create(ctx context.Context, user identity.UserContext, req CreateProductRequest) (*ProductResponse, error) {
	if err := user.RequireAdmin(); err != nil {
		return nil, err
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, &catalog.DuplicateProductError{Name: req.Name}
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Description, price, req.StockQuantity, user.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, &catalog.DuplicateProductError{Name: req.Name}
		}
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Update updates a product's name, description, and price
func (s *ProductService) Update(ctx context.Context, user identity.UserContext, productID string, req UpdateProductRequest) (*ProductResponse, error) {
	if err := user.RequireAdmin(); err != nil {
		return nil, err
	}

	product, err := s.findByIDString(ctx, productID)
	if err != nil {
		return nil, err
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	if req.Name != product.Name {
		if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
			return nil, &catalog.DuplicateProductError{Name: req.Name}
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if err := product.Update(req.Name, req.Description, price, user.UserID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, &catalog.DuplicateProductError{Name: req.Name}
		}
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete soft-deletes a product
func (s *ProductService) Delete(ctx context.Context, user identity.UserContext, productID string) error {
	if err := user.RequireAdmin(); err != nil {
		return err
	}

	product, err := s.findByIDString(ctx, productID)
	if err != nil {
		return err
	}

	if err := product.SoftDelete(user.UserID); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return err
	}

	s.publishEvents(ctx, product)
	return nil
}

// Restore clears a product's soft-delete marker
func (s *ProductService) Restore(ctx context.Context, user identity.UserContext, productID string) (*ProductResponse, error) {
	if err := user.RequireAdmin(); err != nil {
		return nil, err
	}

	product, err := s.findByIDString(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Restore(user.UserID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID returns one product. Soft-deleted products are visible to
// admins only.
func (s *ProductService) GetByID(ctx context.Context, user identity.UserContext, productID string) (*ProductResponse, error) {
	product, err := s.findByIDString(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.IsDeleted() && !user.IsAdmin() {
		return nil, catalog.ErrProductNotFound
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List returns products matching the filter. IncludeDeleted is honored for
// admins only.
func (s *ProductService) List(ctx context.Context, user identity.UserContext, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	if !user.IsAdmin() {
		filter.IncludeDeleted = false
	}

	products, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *ProductService) findByIDString(ctx context.Context, productID string) (*catalog.Product, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, catalog.ErrProductNotFound
	}
	product, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.publisher == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish product events", zap.Error(err))
	}
	product.ClearDomainEvents()
}

func parsePrice(raw string) (valueobject.Money, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return valueobject.Money{}, shared.NewValidationError("price", "price must be a decimal number")
	}
	price, err := valueobject.NewPrice(d, valueobject.DefaultCurrency)
	if err != nil {
		return valueobject.Money{}, shared.NewValidationError("price", err.Error())
	}
	return price, nil
}
