// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/SamuGasto/productos-api/internal/product"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different
// implementations (in-memory, PostgreSQL).
type ProductStore interface {
	// Create adds a new product and assigns its unique identifier.
	// Never fails for input that already passed validation, except on
	// backend connectivity errors.
	Create(ctx context.Context, name string, price float64, description *string) (*product.Product, error)

	// FindAll returns all stored products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]product.Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*product.Product, error)

	// Update overwrites name, price and description of an existing product.
	// The ID is never changed and no row is created on absence.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, name string, price float64, description *string) (*product.Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
