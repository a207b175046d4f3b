package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	cartdomain "github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/identity"
	orderdomain "github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- in-memory fakes ----

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeProductRepo) FindByName(_ context.Context, name string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.Name == name && !p.IsDeleted() {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, int64, error) {
	out := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = p
	return nil
}

type fakeCartRepo struct {
	carts map[uuid.UUID]*cartdomain.Cart // keyed by user ID
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uuid.UUID]*cartdomain.Cart)}
}

func (r *fakeCartRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*cartdomain.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *fakeCartRepo) FindOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*cartdomain.Cart, error) {
	if c, ok := r.carts[userID]; ok {
		return c, nil
	}
	c, err := cartdomain.NewCart(userID)
	if err != nil {
		return nil, err
	}
	r.carts[userID] = c
	return c, nil
}

func (r *fakeCartRepo) Save(_ context.Context, c *cartdomain.Cart) error {
	r.carts[c.UserID] = c
	return nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*orderdomain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*orderdomain.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*orderdomain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]orderdomain.Order, int64, error) {
	out := make([]orderdomain.Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) Save(_ context.Context, o *orderdomain.Order) error {
	r.orders[o.ID] = o
	return nil
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) eventTypes() []string {
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}

type stubVerifier struct {
	result *VerificationResult
	err    error
	calls  int
}

func (v *stubVerifier) Verify(_ context.Context, _ valueobject.Address) (*VerificationResult, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	return v.result, nil
}

// ---- harness ----

type serviceFixture struct {
	service   *CartService
	products  *fakeProductRepo
	carts     *fakeCartRepo
	orders    *fakeOrderRepo
	publisher *recordingPublisher
	verifier  *stubVerifier
	user      identity.UserContext
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	products := newFakeProductRepo()
	carts := newFakeCartRepo()
	orders := newFakeOrderRepo()
	publisher := &recordingPublisher{}
	verifier := &stubVerifier{result: &VerificationResult{Status: VerificationStatusVerified}}

	scope := NewNoOpTransactionScope(products, carts, orders)
	service := NewCartService(scope, publisher, verifier, zap.NewNop())

	return &serviceFixture{
		service:   service,
		products:  products,
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		verifier:  verifier,
		user: identity.UserContext{
			UserID: uuid.New(),
			Role:   identity.RoleCustomer,
		},
	}
}

func (f *serviceFixture) seedProduct(t *testing.T, name, price string, stock int64) *catalog.Product {
	t.Helper()
	m, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)
	p, err := catalog.NewProduct(name, "", m, stock, f.user.UserID)
	require.NoError(t, err)
	p.ClearDomainEvents()
	require.NoError(t, f.products.Save(context.Background(), p))
	return p
}

func shippingAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress("1 Main St", "Springfield", "IL", "62701")
	require.NoError(t, err)
	return addr
}

// ---- tests ----

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves stock and adds line item", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 100)

		resp, err := f.service.AddItem(ctx, f.user, p.ID.String(), 25)
		require.NoError(t, err)

		assert.Equal(t, int64(75), p.StockQuantity)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(25), resp.Items[0].Quantity)
		assert.Equal(t, "250.00", resp.Total)
	})

	t.Run("dispatches cart then product events after commit", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 100)

		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 5)
		require.NoError(t, err)

		require.Equal(t, []string{
			cartdomain.EventTypeCartItemAdded,
			catalog.EventTypeStockReserved,
		}, f.publisher.eventTypes())

		// Buffers cleared after dispatch
		assert.Empty(t, p.GetDomainEvents())
		c, err := f.carts.FindByUserID(ctx, f.user.UserID)
		require.NoError(t, err)
		assert.Empty(t, c.GetDomainEvents())
	})

	t.Run("merge law: two adds merge and reserve the combined quantity", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 100)

		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 3)
		require.NoError(t, err)
		resp, err := f.service.AddItem(ctx, f.user, p.ID.String(), 4)
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(7), resp.Items[0].Quantity)
		assert.Equal(t, int64(93), p.StockQuantity)
	})

	t.Run("insufficient stock leaves product and cart untouched", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 5)

		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 10)
		require.Error(t, err)

		var stockErr *shared.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int64(5), stockErr.Available)
		assert.Equal(t, int64(10), stockErr.Requested)

		assert.Equal(t, int64(5), p.StockQuantity)
		_, err = f.carts.FindByUserID(ctx, f.user.UserID)
		require.ErrorIs(t, err, shared.ErrNotFound)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("fails ProductNotFound for malformed ID", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.AddItem(ctx, f.user, "not-a-uuid", 1)
		require.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("fails ProductNotFound for missing product", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.AddItem(ctx, f.user, uuid.NewString(), 1)
		require.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("fails ProductNotFound for soft-deleted product", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 5)
		require.NoError(t, p.SoftDelete(f.user.UserID))

		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 1)
		require.ErrorIs(t, err, catalog.ErrProductNotFound)
	})
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	ctx := context.Background()

	// Scenario: stock=100 price=10.00, add 25 then update to 15.
	t.Run("negative delta releases the difference", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 100)

		resp, err := f.service.AddItem(ctx, f.user, p.ID.String(), 25)
		require.NoError(t, err)
		assert.Equal(t, int64(75), p.StockQuantity)
		assert.Equal(t, "250.00", resp.Total)

		resp, err = f.service.UpdateItemQuantity(ctx, f.user, p.ID.String(), 15)
		require.NoError(t, err)

		assert.Equal(t, int64(85), p.StockQuantity)
		assert.Equal(t, int64(15), resp.Items[0].Quantity)
	})

	t.Run("positive delta reserves more after sufficiency check", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 10)

		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 5)
		require.NoError(t, err)

		_, err = f.service.UpdateItemQuantity(ctx, f.user, p.ID.String(), 8)
		require.NoError(t, err)
		assert.Equal(t, int64(2), p.StockQuantity)
	})

	t.Run("positive delta exceeding stock fails and rolls nothing forward", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 10)

		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 5)
		require.NoError(t, err)
		f.publisher.events = nil

		_, err = f.service.UpdateItemQuantity(ctx, f.user, p.ID.String(), 20)
		require.Error(t, err)

		var stockErr *shared.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int64(5), stockErr.Available)
		assert.Equal(t, int64(15), stockErr.Requested)
		assert.Equal(t, int64(5), p.StockQuantity)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("zero delta makes no stock call", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 10)

		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 5)
		require.NoError(t, err)
		f.publisher.events = nil

		_, err = f.service.UpdateItemQuantity(ctx, f.user, p.ID.String(), 5)
		require.NoError(t, err)

		assert.Equal(t, int64(5), p.StockQuantity)
		require.Equal(t, []string{cartdomain.EventTypeCartItemQuantityUpdated}, f.publisher.eventTypes())
	})

	t.Run("fails fast when item not in cart", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 10)

		_, err := f.service.UpdateItemQuantity(ctx, f.user, p.ID.String(), 5)
		require.ErrorIs(t, err, cartdomain.ErrItemNotFound)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trip: add then remove restores stock and empties cart", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 100)

		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 25)
		require.NoError(t, err)

		resp, err := f.service.RemoveItem(ctx, f.user, p.ID.String())
		require.NoError(t, err)

		assert.Equal(t, int64(100), p.StockQuantity)
		assert.Empty(t, resp.Items)
	})

	t.Run("emits CartItemRemoved and StockReleased", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 100)

		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 5)
		require.NoError(t, err)
		f.publisher.events = nil

		_, err = f.service.RemoveItem(ctx, f.user, p.ID.String())
		require.NoError(t, err)

		require.Equal(t, []string{
			cartdomain.EventTypeCartItemRemoved,
			catalog.EventTypeStockReleased,
		}, f.publisher.eventTypes())
	})

	t.Run("tolerates a vanished product, skipping the release", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 100)

		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 5)
		require.NoError(t, err)
		delete(f.products.products, p.ID)
		f.publisher.events = nil

		resp, err := f.service.RemoveItem(ctx, f.user, p.ID.String())
		require.NoError(t, err)

		assert.Empty(t, resp.Items)
		require.Equal(t, []string{cartdomain.EventTypeCartItemRemoved}, f.publisher.eventTypes())
	})

	t.Run("fails for item not in cart", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 100)

		_, err := f.service.RemoveItem(ctx, f.user, p.ID.String())
		require.ErrorIs(t, err, cartdomain.ErrItemNotFound)
	})
}

func TestCartService_SubmitCart(t *testing.T) {
	ctx := context.Background()

	t.Run("creates order from snapshot, clears cart, leaves stock unchanged", func(t *testing.T) {
		f := newServiceFixture(t)
		p1 := f.seedProduct(t, "Widget", "15.00", 50)
		p2 := f.seedProduct(t, "Gadget", "25.00", 50)

		_, err := f.service.AddItem(ctx, f.user, p1.ID.String(), 2)
		require.NoError(t, err)
		_, err = f.service.AddItem(ctx, f.user, p2.ID.String(), 3)
		require.NoError(t, err)
		f.publisher.events = nil

		resp, err := f.service.SubmitCart(ctx, f.user, shippingAddress(t))
		require.NoError(t, err)

		// 2 x 15.00 + 3 x 25.00
		assert.Equal(t, "105.00", resp.Total)
		require.Len(t, resp.Items, 2)

		// Stock stays at post-add values: submit does not touch it
		assert.Equal(t, int64(48), p1.StockQuantity)
		assert.Equal(t, int64(47), p2.StockQuantity)

		c, err := f.carts.FindByUserID(ctx, f.user.UserID)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())

		require.Equal(t, []string{
			cartdomain.EventTypeCartSubmitted,
			orderdomain.EventTypeOrderCreated,
		}, f.publisher.eventTypes())
	})

	t.Run("fails EmptyCart on empty cart", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.SubmitCart(ctx, f.user, shippingAddress(t))
		require.ErrorIs(t, err, cartdomain.ErrEmptyCart)
	})

	t.Run("invalid address fails before any cart mutation", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 50)

		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 2)
		require.NoError(t, err)
		f.publisher.events = nil

		f.verifier.result = &VerificationResult{
			Status:       VerificationStatusInvalid,
			ErrorMessage: "unknown postal code",
			FieldErrors:  map[string]string{"postal_code": "unknown"},
		}

		_, err = f.service.SubmitCart(ctx, f.user, shippingAddress(t))
		require.Error(t, err)

		var verr *AddressVerificationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.IsCallerError())
		assert.Equal(t, "postal_code", verr.Field)

		// Cart untouched, no order, no events
		c, err := f.carts.FindByUserID(ctx, f.user.UserID)
		require.NoError(t, err)
		assert.Len(t, c.Items, 1)
		assert.Empty(t, f.orders.orders)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("service unavailable maps to infrastructure error", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 50)
		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 2)
		require.NoError(t, err)

		f.verifier.result = &VerificationResult{Status: VerificationStatusServiceUnavailable}

		_, err = f.service.SubmitCart(ctx, f.user, shippingAddress(t))
		require.Error(t, err)

		var verr *AddressVerificationError
		require.ErrorAs(t, err, &verr)
		assert.False(t, verr.IsCallerError())
	})

	t.Run("corrected address uses the standardized form", func(t *testing.T) {
		f := newServiceFixture(t)
		p := f.seedProduct(t, "Widget", "10.00", 50)
		_, err := f.service.AddItem(ctx, f.user, p.ID.String(), 2)
		require.NoError(t, err)

		standardized, err := valueobject.NewAddress("1 Main Street", "Springfield", "IL", "62701-1234")
		require.NoError(t, err)
		f.verifier.result = &VerificationResult{
			Status:              VerificationStatusCorrected,
			StandardizedAddress: &standardized,
		}

		resp, err := f.service.SubmitCart(ctx, f.user, shippingAddress(t))
		require.NoError(t, err)
		assert.Contains(t, resp.ShippingAddress, "62701-1234")
	})
}
