// Package integration runs the storefront against real backing services.
package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
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

// SetupTestDB creates a PostgreSQL test container, a connection pool and the
// products schema.
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
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPoolFromURL(ctx, connStr, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
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

// TestProducts returns the smartphone catalogue used by the integration tests:
// 14 products, two of them without a brand.
func TestProducts() []model.Product {
	products := []model.Product{
		{ID: "1", Title: "iPhone 9", Price: 549, Rating: 4.69, Brand: "Apple", Images: []string{"1.jpg", "2.jpg"}},
		{ID: "2", Title: "iPhone X", Price: 899, Rating: 4.44, Brand: "Apple", Images: []string{"1.jpg"}},
		{ID: "3", Title: "Samsung Universe 9", Price: 1249, Rating: 4.09, Brand: "Samsung", Images: []string{"1.jpg"}},
		{ID: "4", Title: "OPPOF19", Price: 280, Rating: 4.3, Brand: "OPPO", Images: []string{"1.jpg"}},
		{ID: "5", Title: "Huawei P30", Price: 499, Rating: 4.09, Brand: "Huawei", Images: []string{"1.jpg"}},
		{ID: "6", Title: "Galaxy S21", Price: 1199, Rating: 4.8, Brand: "Samsung", Images: []string{"1.jpg"}},
		{ID: "7", Title: "Pixel 7", Price: 599, Rating: 4.5, Brand: "Google", Images: []string{"1.jpg"}},
		{ID: "8", Title: "Nord CE 3", Price: 329, Rating: 3.9, Brand: "OnePlus", Images: []string{"1.jpg"}},
		{ID: "9", Title: "Redmi Note 12", Price: 199, Rating: 3.4, Brand: "Xiaomi", Images: []string{"1.jpg"}},
		{ID: "10", Title: "Moto G Power", Price: 249, Rating: 2.8, Brand: "Motorola", Images: []string{"1.jpg"}},
		{ID: "11", Title: "Flip Phone", Price: 59, Rating: 2.1, Images: []string{}},
		{ID: "12", Title: "iPhone 13 mini", Price: 699, Rating: 4.6, Brand: "Apple", Images: []string{"1.jpg"}},
		{ID: "13", Title: "Galaxy A54", Price: 449, Rating: 4.2, Brand: "Samsung", Images: []string{"1.jpg"}},
		{ID: "14", Title: "Budget 5G", Price: 129, Rating: 3.2, Images: []string{"1.jpg"}},
	}
	for i := range products {
		id := products[i].ID.String()
		products[i].Description = "Description of product " + id
		products[i].Thumbnail = "thumb-" + id + ".jpg"
	}
	return products
}

// SeedProducts imports TestProducts into the smartphones category and one
// laptop into another category.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	if _, err := catalog.ImportProducts(ctx, pool, "smartphones", TestProducts()); err != nil {
		t.Fatalf("failed to seed products: %v", err)
	}

	laptop := []model.Product{{ID: "100", Title: "MacBook Pro", Price: 1749, Rating: 4.57, Brand: "Apple"}}
	if _, err := catalog.ImportProducts(ctx, pool, "laptops", laptop); err != nil {
		t.Fatalf("failed to seed laptops: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
