// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"

	"github.com/SamuGasto/productos-api/internal/product"
	"github.com/SamuGasto/productos-api/internal/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*product.Product, error)

	// FindAll returns all available products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]product.Product, error)

	// Create adds a new product to the system. The input must already have
	// passed validation.
	Create(ctx context.Context, in product.Input) (*product.Product, error)

	// Update modifies an existing product's details.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, in product.Input) (*product.Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// HealthCheck reports whether the storage backend is reachable.
	HealthCheck(ctx context.Context) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// FindByID retrieves a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	found, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return found, nil
}

// FindAll retrieves a list of all products.
// Returns an empty slice if no products exist or error if the retrieval fails.
func (s *Service) FindAll(ctx context.Context) ([]product.Product, error) {
	list, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return list, nil
}

// Create creates a new product. The input is expected to have passed
// validation, so Name and Price are non-nil.
func (s *Service) Create(ctx context.Context, in product.Input) (*product.Product, error) {
	created, err := s.repository.Create(ctx, *in.Name, *in.Price, in.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// Update modifies an existing product's details.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, in product.Input) (*product.Product, error) {
	updated, err := s.repository.Update(ctx, id, *in.Name, *in.Price, in.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	return updated, nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	return s.repository.DeleteByID(ctx, id)
}

// HealthCheck pings the storage backend.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.repository.Ping(ctx)
}
