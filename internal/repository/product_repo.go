package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"inventory_api/internal/model"
	"inventory_api/internal/store"
)

var (
	// ErrDuplicateSKU is returned when a create or update would reuse a SKU
	// already held by a different product (compared case-insensitively).
	ErrDuplicateSKU = errors.New("sku already exists")

	// ErrNotFound is returned when no product has the requested id.
	ErrNotFound = errors.New("product not found")
)

// ProductRepository defines operations for product data
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
}

type productRepository struct {
	products *store.Collection[model.Product]
}

// NewProductRepository creates a new ProductRepository backed by the given
// products collection.
func NewProductRepository(products *store.Collection[model.Product]) ProductRepository {
	return &productRepository{products: products}
}

// List returns all products in insertion order.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	return r.products.Read(), nil
}

// Create appends a new product, assigning its id. The duplicate-SKU check
// runs inside the collection's critical section.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.products.Update(func(products []model.Product) ([]model.Product, error) {
		for _, p := range products {
			if strings.EqualFold(p.SKU, product.SKU) {
				return nil, ErrDuplicateSKU
			}
		}
		product.ID = nextID(time.Now().UnixMilli(), productIDs(products))
		return append(products, *product), nil
	})
}

// FindByID retrieves a product by id, (nil, nil) when absent.
func (r *productRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	for _, p := range r.products.Read() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

// Update replaces the stored record with the same id, keeping its
// created_at. Fails with ErrNotFound when the id is unknown and with
// ErrDuplicateSKU when the new SKU collides with a different product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.products.Update(func(products []model.Product) ([]model.Product, error) {
		idx := -1
		for i, p := range products {
			if p.ID == product.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, ErrNotFound
		}
		for i, p := range products {
			if i != idx && strings.EqualFold(p.SKU, product.SKU) {
				return nil, ErrDuplicateSKU
			}
		}
		product.CreatedAt = products[idx].CreatedAt
		products[idx] = *product
		return products, nil
	})
}

// Delete removes the product with the given id, ErrNotFound when absent.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return r.products.Update(func(products []model.Product) ([]model.Product, error) {
		for i, p := range products {
			if p.ID == id {
				return append(products[:i], products[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

func productIDs(products []model.Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
