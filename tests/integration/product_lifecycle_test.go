package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/tests/testutil"
)

func TestProductLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.NewAdmin()
	customer := testutil.NewCustomer()

	t.Run("customers cannot create products", func(t *testing.T) {
		_, err := env.products.Create(ctx, customer, catalogapp.CreateProductRequest{
			Name: "Forbidden", Price: "1.00",
		})
		require.ErrorIs(t, err, shared.ErrPermissionDenied)
	})

	productID := env.seedProduct(t, "Standing Desk", "299.00", 3)

	t.Run("duplicate names are rejected", func(t *testing.T) {
		_, err := env.products.Create(ctx, admin, catalogapp.CreateProductRequest{
			Name: "Standing Desk", Price: "10.00",
		})
		var dupErr *catalog.DuplicateProductError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "Standing Desk", dupErr.Name)
	})

	t.Run("update changes name and price", func(t *testing.T) {
		resp, err := env.products.Update(ctx, admin, productID.String(), catalogapp.UpdateProductRequest{
			Name:        "Standing Desk v2",
			Description: "height adjustable",
			Price:       "349.00",
		})
		require.NoError(t, err)
		assert.Equal(t, "Standing Desk v2", resp.Name)
		assert.Equal(t, "349.00", resp.Price)
	})

	t.Run("soft delete hides the product from customers", func(t *testing.T) {
		require.NoError(t, env.products.Delete(ctx, admin, productID.String()))

		_, err := env.products.GetByID(ctx, customer, productID.String())
		require.ErrorIs(t, err, catalog.ErrProductNotFound)

		resp, err := env.products.GetByID(ctx, admin, productID.String())
		require.NoError(t, err)
		assert.NotNil(t, resp.DeletedAt)
	})

	t.Run("deleted products cannot enter carts", func(t *testing.T) {
		_, err := env.carts.AddItem(ctx, customer, productID.String(), 1)
		require.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("listing excludes deleted for customers", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.IncludeDeleted = true

		page, err := env.products.List(ctx, customer, filter)
		require.NoError(t, err)
		assert.Empty(t, page.Items)

		page, err = env.products.List(ctx, admin, filter)
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
	})

	t.Run("deleted names can be reused", func(t *testing.T) {
		resp, err := env.products.Create(ctx, admin, catalogapp.CreateProductRequest{
			Name: "Standing Desk v2", Price: "279.00", StockQuantity: 5,
		})
		require.NoError(t, err)
		assert.NotEqual(t, productID, resp.ID)
	})

	t.Run("restore collides with the reused name", func(t *testing.T) {
		_, err := env.products.Restore(ctx, admin, productID.String())
		require.Error(t, err)
	})
}

func TestProductRestore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.NewAdmin()
	customer := testutil.NewCustomer()

	productID := env.seedProduct(t, "Monitor Arm", "89.00", 7)
	require.NoError(t, env.products.Delete(ctx, admin, productID.String()))

	resp, err := env.products.Restore(ctx, admin, productID.String())
	require.NoError(t, err)
	assert.Nil(t, resp.DeletedAt)

	got, err := env.products.GetByID(ctx, customer, productID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.StockQuantity)

	t.Run("restoring a live product fails", func(t *testing.T) {
		_, err := env.products.Restore(ctx, admin, productID.String())
		require.Error(t, err)
	})
}
