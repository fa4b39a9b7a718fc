package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	perrors "github.com/SamuGasto/productos-api/internal/errors"
	"github.com/SamuGasto/productos-api/internal/product"
)

// inMemory implements ProductStore using an in-memory map. Products live for
// the lifetime of the process. The mutex serializes Create so that IDs stay
// unique under concurrent requests; identifiers are monotonically increasing
// and never reused, even after deletion.
type inMemory struct {
	mu       sync.RWMutex
	products map[int64]product.Product
	nextID   int64
}

// NewInMemoryStore creates a new instance of ProductStore.
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[int64]product.Product),
		nextID:   1,
	}
}

// Create assigns the next identifier to the product and stores it.
func (s *inMemory) Create(_ context.Context, name string, price float64, description *string) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := product.Product{
		ID:          s.nextID,
		Name:        name,
		Price:       price,
		Description: description,
	}
	s.nextID++
	s.products[p.ID] = p

	return &p, nil
}

// FindAll retrieves all products, ordered by ID.
func (s *inMemory) FindAll(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b product.Product) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return list, nil
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int64) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

// Update overwrites the mutable fields of an existing product.
func (s *inMemory) Update(_ context.Context, id int64, name string, price float64, description *string) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	p.Name = name
	p.Price = price
	p.Description = description
	s.products[id] = p

	return &p, nil
}

// DeleteByID deletes a product by its ID. The identifier is not reused.
func (s *inMemory) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return perrors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

// Ping always succeeds: the map lives in-process.
func (s *inMemory) Ping(_ context.Context) error {
	return nil
}
