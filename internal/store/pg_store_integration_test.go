package store

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	perrors "github.com/SamuGasto/productos-api/internal/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const skipIntegrationTests = "PRODUCTOS_SKIP_INTEGRATION_TESTS"

// PgStoreSuite is a test suite for the PostgreSQL ProductStore implementation.
type PgStoreSuite struct {
	suite.Suite                             // Embedding testify's suite for structured testing
	pgContainer *postgres.PostgresContainer // PostgreSQL container for integration tests
	dbPool      *pgxpool.Pool               // PostgreSQL connection pool
	store       ProductStore                //
	logger      *slog.Logger                // Logger for the test suite
	ctx         context.Context             // Context for the test suite
}

// SetupSuite initializes the test suite by setting up a PostgreSQL container.
func (s *PgStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dbName := "productos"
	dbUser := "user"
	dbPassword := "password"

	// 1. Start a PostgreSQL container. Wait for the container to be ready.
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	// 2. Get the connection string from the container
	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	// 3. Create a new pgxpool instance using the connection string
	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	// 3.1 Ping the database to ensure the connection is established
	for i := range 10 {
		s.logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		err = s.dbPool.Ping(s.ctx)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	// 4. Apply the products table migration
	wd, _ := os.Getwd()
	migrationsPath := filepath.Join(wd, "..", "..", "migrations")
	sourceURL := "file://" + migrationsPath
	m, err := migrate.New(sourceURL, connStr)
	require.NoError(s.T(), err, "Failed to create migrate instance")
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		_, _ = m.Close()
		require.NoError(s.T(), err, "Failed to apply migrations")
	}
	s.logger.Info("Migrations applied for integration tests")

	s.store = NewPgStore(s.dbPool)
	s.logger.Info("Initialization complete for PgStoreSuite")
}

// TearDownSuite cleans up resources after all tests in the suite have run.
func (s *PgStoreSuite) TearDownSuite() {
	s.logger.Info("Tearing down suite...")
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("failed to terminate PostgreSQL container", "error", err)
		}
	}
}

// SetupTest truncates the products table so every test starts from a clean slate.
func (s *PgStoreSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE products RESTART IDENTITY")
	require.NoError(s.T(), err, "Failed to truncate products table")
}

func (s *PgStoreSuite) TestCreateAssignsIDs() {
	// when
	first, err := s.store.Create(s.ctx, "Laptop", 999.99, strPtr("Gaming laptop"))
	require.NoError(s.T(), err)
	second, err := s.store.Create(s.ctx, "Mouse", 19.9, nil)
	require.NoError(s.T(), err)

	// then
	assert.Positive(s.T(), first.ID)
	assert.Positive(s.T(), second.ID)
	assert.NotEqual(s.T(), first.ID, second.ID)
	assert.Equal(s.T(), "Laptop", first.Name)
	assert.Equal(s.T(), 999.99, first.Price)
	require.NotNil(s.T(), first.Description)
	assert.Equal(s.T(), "Gaming laptop", *first.Description)
	assert.Nil(s.T(), second.Description, "absent description must persist as NULL")
}

func (s *PgStoreSuite) TestFindByID() {
	// given
	created, err := s.store.Create(s.ctx, "Laptop", 999.99, nil)
	require.NoError(s.T(), err)

	// when / then
	found, err := s.store.FindByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created, found)

	_, err = s.store.FindByID(s.ctx, created.ID+1000)
	assert.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *PgStoreSuite) TestFindAllOrderedByID() {
	// given
	names := []string{"Laptop", "Mouse", "Teclado"}
	for i, name := range names {
		_, err := s.store.Create(s.ctx, name, float64(i+1), nil)
		require.NoError(s.T(), err)
	}

	// when
	list, err := s.store.FindAll(s.ctx)

	// then
	require.NoError(s.T(), err)
	require.Len(s.T(), list, len(names))
	for i, p := range list {
		assert.Equal(s.T(), names[i], p.Name)
		if i > 0 {
			assert.Greater(s.T(), p.ID, list[i-1].ID)
		}
	}
}

func (s *PgStoreSuite) TestUpdate() {
	// given
	created, err := s.store.Create(s.ctx, "Laptop", 999.99, strPtr("old"))
	require.NoError(s.T(), err)

	// when
	updated, err := s.store.Update(s.ctx, created.ID, "Laptop Pro", 1299.99, nil)

	// then
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, updated.ID, "ID is immutable")
	assert.Equal(s.T(), "Laptop Pro", updated.Name)
	assert.Nil(s.T(), updated.Description)

	_, err = s.store.Update(s.ctx, created.ID+1000, "x", 1, nil)
	assert.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
	list, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)
	assert.Len(s.T(), list, 1, "update of an absent ID must not create a row")
}

func (s *PgStoreSuite) TestDeleteByID() {
	// given
	created, err := s.store.Create(s.ctx, "Laptop", 999.99, nil)
	require.NoError(s.T(), err)

	// when / then
	require.NoError(s.T(), s.store.DeleteByID(s.ctx, created.ID))
	assert.ErrorIs(s.T(), s.store.DeleteByID(s.ctx, created.ID), perrors.ErrProductNotFound)

	_, err = s.store.FindByID(s.ctx, created.ID)
	assert.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *PgStoreSuite) TestPing() {
	assert.NoError(s.T(), s.store.Ping(s.ctx))
}

func TestPgStoreSuite(t *testing.T) {
	if os.Getenv(skipIntegrationTests) != "" {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(PgStoreSuite))
}
