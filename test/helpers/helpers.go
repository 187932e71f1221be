// test/helpers/helpers.go
package helpers

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stock-tracker/internal/adapters/db"
	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	DB       *sql.DB
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

// FixedClock returns a clock frozen at a known instant
func FixedClock() func() time.Time {
	at := time.Date(2025, 1, 15, 9, 30, 0, 250000000, time.UTC)
	return func() time.Time { return at }
}

// CreateTestStock builds a mapping holding entries in the given order
func CreateTestStock(entries ...domain.StockEntry) *domain.Stock {
	s := domain.NewStock()
	for _, e := range entries {
		s.Set(e.Item, e.Quantity)
	}
	return s
}

// DefaultTestStock returns the apple/banana mapping used across tests
func DefaultTestStock() *domain.Stock {
	return CreateTestStock(
		domain.StockEntry{Item: "apple", Quantity: 7},
		domain.StockEntry{Item: "banana", Quantity: 15},
	)
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_stock",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	// Clean up on test completion
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:           "localhost",
		Port:           resource.GetPort("5432/tcp"),
		User:           "test",
		Password:       "test",
		Database:       "test_stock",
		SSLMode:        "disable",
		MaxConnections: 4,
		ConnectTimeout: 10 * time.Second,
	}

	// Wait for database to be ready
	var database *sql.DB
	err = pool.Retry(func() error {
		var err error
		database, err = db.Open(context.Background(), dbConfig, TestLogger())
		return err
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(func() { database.Close() })

	migrator, err := db.NewMigrator(context.Background(), dbConfig, TestLogger())
	require.NoError(t, err, "Could not create migrator")
	defer migrator.Close()
	require.NoError(t, migrator.Up(context.Background()), "Could not run migrations")

	return &TestDB{
		DB:       database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, database *sql.DB) {
	t.Helper()

	_, err := database.ExecContext(context.Background(),
		"TRUNCATE TABLE inventory_snapshot_entries, inventory_snapshots CASCADE")
	require.NoError(t, err, "Failed to truncate tables")
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// SetupMockDB creates a mock database for unit testing
func SetupMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	database, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock DB")

	t.Cleanup(func() {
		database.Close()
	})

	return mock, database
}

// LoadTestConfig returns a test configuration using the file backend in dir
func LoadTestConfig(dir string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "stock-tracker-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
		},
		Store: config.StoreConfig{
			Backend:           config.BackendFile,
			Path:              "inventory.json",
			Dir:               dir,
			AtomicWrites:      true,
			LowStockThreshold: 5,
		},
		Redis: config.RedisConfig{
			Host:      "localhost",
			Port:      "6379",
			KeyPrefix: "stock-test",
		},
		AWS: config.AWSConfig{
			Region:   "us-east-1",
			S3Bucket: "stock-test",
			S3Prefix: "snapshots",
		},
		Database: config.DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "test",
			Password:       "test",
			Name:           "test_stock",
			SSLMode:        "disable",
			MaxConnections: 2,
		},
	}
}
