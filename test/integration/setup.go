package integration

import (
	"context"
	"testing"
	"time"

	"real-preco/internal/config"
	"real-preco/internal/database"
	"real-preco/internal/model"
	"real-preco/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPoolFromURL(ctx, connStr, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if _, err := pool.Exec(ctx, repository.Schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SampleProducts returns the catalogue seeded by SeedProducts.
func SampleProducts() []model.Product {
	deal := decimal.RequireFromString("89.90")
	return []model.Product{
		{ID: 1, Name: "Arroz Branco 5kg", Price: decimal.RequireFromString("24.90"), Category: "Mercearia", Subcategory: "Grãos"},
		{ID: 2, Name: "Feijão Carioca 1kg", Price: decimal.RequireFromString("8.49"), Category: "Mercearia", Subcategory: "Grãos"},
		{ID: 3, Name: "Leite Integral 1L", Price: decimal.RequireFromString("4.99"), Category: "Laticínios"},
		{ID: 4, Name: "Picanha kg", Price: decimal.RequireFromString("69.90"), OriginalPrice: &deal, Category: "Açougue", Warning: "Produto vendido por peso"},
		{ID: 5, Name: "Sabonete 90g", Price: decimal.RequireFromString("2.50")},
	}
}

// SeedProducts replaces the products table with SampleProducts.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	repo := repository.NewProductRepository(pool, zerolog.Nop())
	if err := repo.ReplaceAll(context.Background(), SampleProducts()); err != nil {
		t.Fatalf("failed to seed products: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM products"); err != nil {
		t.Logf("failed to clean table products: %v", err)
	}
}
