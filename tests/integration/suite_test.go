package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	auditapp "github.com/shop/backend/internal/application/audit"
	cartapp "github.com/shop/backend/internal/application/cart"
	catalogapp "github.com/shop/backend/internal/application/catalog"
	orderapp "github.com/shop/backend/internal/application/order"
	"github.com/shop/backend/internal/infrastructure/event"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/tests/testutil"
)

// testEnv wires the full application stack against a containerized
// database, mirroring the composition in cmd/server.
type testEnv struct {
	db          *TestDB
	bus         *event.InMemoryEventBus
	verifier    *testutil.StubVerifier
	products    *catalogapp.ProductService
	carts       *cartapp.CartService
	orders      *orderapp.OrderService
	productRepo *persistence.GormProductRepository
	auditRepo   *persistence.GormAuditLogRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tdb := NewTestDB(t)
	log := zap.NewNop()

	productRepo := persistence.NewGormProductRepository(tdb.DB)
	orderRepo := persistence.NewGormOrderRepository(tdb.DB)
	auditRepo := persistence.NewGormAuditLogRepository(tdb.DB)
	scope := persistence.NewGormTransactionScope(tdb.DB)

	bus := event.NewInMemoryEventBus(log)
	auditHandler := auditapp.NewLogHandler(auditRepo, log)
	bus.Subscribe(auditHandler, auditHandler.EventTypes()...)

	verifier := testutil.NewStubVerifier()

	return &testEnv{
		db:          tdb,
		bus:         bus,
		verifier:    verifier,
		products:    catalogapp.NewProductService(productRepo, bus, log),
		carts:       cartapp.NewCartService(scope, bus, verifier, log),
		orders:      orderapp.NewOrderService(orderRepo),
		productRepo: productRepo,
		auditRepo:   auditRepo,
	}
}

// seedProduct creates a product through the catalog service and returns
// its ID.
func (env *testEnv) seedProduct(t *testing.T, name, price string, stock int64) uuid.UUID {
	t.Helper()

	resp, err := env.products.Create(context.Background(), testutil.NewAdmin(), catalogapp.CreateProductRequest{
		Name:          name,
		Description:   "integration test product",
		Price:         price,
		StockQuantity: stock,
	})
	require.NoError(t, err)
	return resp.ID
}

// stockOf reloads the product row and returns its current stock counter.
func (env *testEnv) stockOf(t *testing.T, productID uuid.UUID) int64 {
	t.Helper()

	product, err := env.productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)
	return product.StockQuantity
}
