// Package app contains the application setup for the productos API.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SamuGasto/productos-api/internal/config"
	"github.com/SamuGasto/productos-api/internal/service"
	"github.com/SamuGasto/productos-api/internal/store"
	"github.com/SamuGasto/productos-api/internal/transport/rest"
	"github.com/SamuGasto/productos-api/pkg/bootstrap"
	pkgconfig "github.com/SamuGasto/productos-api/pkg/config"
	"github.com/SamuGasto/productos-api/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger

	dbPool *pgxpool.Pool
}

// SetupDependencies constructs the storage backend selected by the
// configuration and wires the product service on top of it.
func SetupDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: logger}

	var productStore store.ProductStore
	switch cfg.Store.Backend {
	case pkgconfig.BackendPostgres:
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create database connection pool: %w", err)
		}
		deps.dbPool = dbPool
		productStore = store.NewPgStore(dbPool)
	case pkgconfig.BackendMemory:
		productStore = store.NewInMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}

	deps.ProductService = service.NewService(productStore)
	return deps, nil
}

// NewMemoryDependencies wires the service on an in-memory store. Used by
// tests that need a full HTTP stack without a database.
func NewMemoryDependencies(logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ProductService: service.NewService(store.NewInMemoryStore()),
		Logger:         logger,
	}
}

// Close releases the database pool, if one was created.
func (d *Dependencies) Close() {
	if d.dbPool != nil {
		d.dbPool.Close()
	}
}

// SetupHttpHandler initializes the router and routes for the productos API.
// Used by tests to set up the HTTP stack with the production middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the productos API.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the productos API.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
