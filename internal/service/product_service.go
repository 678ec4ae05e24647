package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory_api/internal/model"
	"inventory_api/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUTaken        = errors.New("sku already exists")
)

// ProductService defines operations for products
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, req model.ProductRequest) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, id int64, req model.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) Create(ctx context.Context, req model.ProductRequest) (*model.Product, error) {
	product := &model.Product{
		Name:      strings.TrimSpace(req.Name),
		SKU:       strings.TrimSpace(req.SKU),
		Quantity:  *req.Quantity,
		Location:  normalizeLocation(req.Location),
		CreatedAt: time.Now().Unix(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateSKU) {
			return nil, ErrSKUTaken
		}
		return nil, fmt.Errorf("failed to create product in repository: %w", err)
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id int64, req model.ProductRequest) (*model.Product, error) {
	product := &model.Product{
		ID:       id,
		Name:     strings.TrimSpace(req.Name),
		SKU:      strings.TrimSpace(req.SKU),
		Quantity: *req.Quantity,
		Location: normalizeLocation(req.Location),
		// CreatedAt is restored from the stored record by the repository.
	}

	if err := s.repo.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrProductNotFound
		case errors.Is(err, repository.ErrDuplicateSKU):
			return nil, ErrSKUTaken
		default:
			return nil, fmt.Errorf("failed to update product in repository: %w", err)
		}
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product in repository: %w", err)
	}
	return nil
}

// normalizeLocation trims the optional location and collapses blank values
// to absent.
func normalizeLocation(location *string) *string {
	if location == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*location)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
