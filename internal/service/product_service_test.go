package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"inventory_api/internal/model"
	"inventory_api/internal/repository"
	"inventory_api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(t *testing.T) (ProductService, string) {
	t.Helper()
	dir := t.TempDir()
	products, err := store.NewCollection[model.Product](dir, "products")
	require.NoError(t, err)
	return NewProductService(repository.NewProductRepository(products)), dir
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreateProduct(t *testing.T) {
	svc, _ := newProductService(t)

	product, err := svc.Create(context.Background(), model.ProductRequest{
		Name:     "Widget",
		SKU:      "abc-1",
		Quantity: intPtr(5),
	})
	require.NoError(t, err)

	assert.NotZero(t, product.ID)
	assert.NotZero(t, product.CreatedAt)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, "abc-1", product.SKU)
	assert.Equal(t, 5, product.Quantity)
	assert.Nil(t, product.Location)
}

func TestCreateProduct_DuplicateSKUCaseInsensitive(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.ProductRequest{Name: "Widget", SKU: "abc-1", Quantity: intPtr(5)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, model.ProductRequest{Name: "Other", SKU: "ABC-1", Quantity: intPtr(1)})
	assert.ErrorIs(t, err, ErrSKUTaken)
}

func TestCreateProduct_NormalizesLocation(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	blank, err := svc.Create(ctx, model.ProductRequest{
		Name: "Widget", SKU: "abc-1", Quantity: intPtr(5), Location: strPtr("   "),
	})
	require.NoError(t, err)
	assert.Nil(t, blank.Location)

	set, err := svc.Create(ctx, model.ProductRequest{
		Name: "Gadget", SKU: "abc-2", Quantity: intPtr(5), Location: strPtr("  shelf A  "),
	})
	require.NoError(t, err)
	require.NotNil(t, set.Location)
	assert.Equal(t, "shelf A", *set.Location)
}

func TestGetProduct(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.ProductRequest{Name: "Widget", SKU: "abc-1", Quantity: intPtr(5)})
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Widget", found.Name)

	_, err = svc.GetByID(ctx, created.ID+999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateProduct(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.ProductRequest{Name: "Widget", SKU: "abc-1", Quantity: intPtr(5)})
	require.NoError(t, err)

	// Reusing its own unchanged SKU succeeds.
	updated, err := svc.Update(ctx, created.ID, model.ProductRequest{
		Name: "Widget v2", SKU: "abc-1", Quantity: intPtr(9), Location: strPtr("bin 4"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, 9, updated.Quantity)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "bin 4", *updated.Location)

	_, err = svc.Update(ctx, created.ID+999, model.ProductRequest{
		Name: "Ghost", SKU: "zzz-9", Quantity: intPtr(1),
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateProduct_SKUCollisionWithOtherProduct(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, model.ProductRequest{Name: "Widget", SKU: "abc-1", Quantity: intPtr(5)})
	require.NoError(t, err)
	second, err := svc.Create(ctx, model.ProductRequest{Name: "Gadget", SKU: "abc-2", Quantity: intPtr(3)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, model.ProductRequest{
		Name: "Gadget", SKU: "ABC-1", Quantity: intPtr(3),
	})
	assert.ErrorIs(t, err, ErrSKUTaken)

	// The first product is untouched.
	kept, err := svc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc-1", kept.SKU)
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.ProductRequest{Name: "Widget", SKU: "abc-1", Quantity: intPtr(5)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	// Deleting twice fails the second time.
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrProductNotFound)

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProducts_InsertionOrder(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.ProductRequest{Name: "Widget", SKU: "abc-1", Quantity: intPtr(5)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.ProductRequest{Name: "Gadget", SKU: "abc-2", Quantity: intPtr(3)})
	require.NoError(t, err)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, "Gadget", products[1].Name)
}

func TestCreateProduct_AfterCorruptedStore(t *testing.T) {
	svc, dir := newProductService(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{{{ not json"), 0o644))

	// Corrupt storage reads as an empty collection, so listing works...
	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	// ...and a subsequent create still succeeds and persists.
	created, err := svc.Create(ctx, model.ProductRequest{Name: "Widget", SKU: "abc-1", Quantity: intPtr(5)})
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc-1", found.SKU)
}
