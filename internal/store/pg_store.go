package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/SamuGasto/productos-api/internal/errors"
	"github.com/SamuGasto/productos-api/internal/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements ProductStore using PostgreSQL as the data store.
// Each operation acquires a connection from the pool for exactly one
// statement and releases it on every exit path; identifier uniqueness is
// delegated to the table's bigserial column.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// Create inserts a new row and returns it including its database-assigned ID.
func (p *PgStore) Create(ctx context.Context, name string, price float64, description *string) (*product.Product, error) {
	const query = `
		INSERT INTO products (name, price, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, price, description`

	var created product.Product
	err := p.db.QueryRow(ctx, query, name, price, description).
		Scan(&created.ID, &created.Name, &created.Price, &created.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

// FindAll retrieves every row, ordered by ID.
// It returns a slice of products, which may be empty if no products exist.
func (p *PgStore) FindAll(ctx context.Context) ([]product.Product, error) {
	const query = `
		SELECT id, name, price, description
		FROM products
		ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()

	list := make([]product.Product, 0)
	for rows.Next() {
		var pr product.Product
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.Price, &pr.Description); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		list = append(list, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return list, nil
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	const query = `
		SELECT id, name, price, description
		FROM products
		WHERE id = $1`

	var found product.Product
	err := p.db.QueryRow(ctx, query, id).
		Scan(&found.ID, &found.Name, &found.Price, &found.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &found, nil
}

// Update overwrites name, price and description of the row matching id.
// Returns ErrProductNotFound if no product exists with the given ID;
// no row is created on absence.
func (p *PgStore) Update(ctx context.Context, id int64, name string, price float64, description *string) (*product.Product, error) {
	const query = `
		UPDATE products
		SET name = $2, price = $3, description = $4
		WHERE id = $1
		RETURNING id, name, price, description`

	var updated product.Product
	err := p.db.QueryRow(ctx, query, id, name, price, description).
		Scan(&updated.ID, &updated.Name, &updated.Price, &updated.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &updated, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	const query = `DELETE FROM products WHERE id = $1`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// Ping reports whether the database is reachable.
func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
