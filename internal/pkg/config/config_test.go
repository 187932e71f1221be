package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "stock-tracker", cfg.App.Name)
	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "inventory.json", cfg.Store.Path)
	assert.Equal(t, 5, cfg.Store.LowStockThreshold)
	assert.False(t, cfg.Store.AtomicWrites)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddress())
	assert.Equal(t, 3*time.Second, cfg.Redis.ReadTimeout)
	assert.Equal(t, "stock_tracker", cfg.Database.Name)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORE_BACKEND", "REDIS")
	t.Setenv("STORE_PATH", "warehouse.json")
	t.Setenv("STORE_ATOMIC_WRITES", "true")
	t.Setenv("LOW_STOCK_THRESHOLD", "10")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_READ_TIMEOUT", "750ms")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "warehouse.json", cfg.Store.Path)
	assert.True(t, cfg.Store.AtomicWrites)
	assert.Equal(t, 10, cfg.Store.LowStockThreshold)
	assert.Equal(t, "cache.internal:6379", cfg.GetRedisAddress())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 750*time.Millisecond, cfg.Redis.ReadTimeout)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORE_BACKEND", "floppy")

	_, err := Load(discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}

func TestBasicValidator_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Name: "stock-tracker"},
			Store:    StoreConfig{Backend: BackendFile, Path: "inventory.json", LowStockThreshold: 5},
			Redis:    RedisConfig{Host: "localhost", Port: "6379"},
			AWS:      AWSConfig{Region: "us-east-1", S3Bucket: "bucket"},
			Database: DatabaseConfig{Host: "localhost", Name: "stock", MaxConnections: 2},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		wantMissing bool
	}{
		{name: "valid_file_backend", mutate: func(c *Config) {}},
		{name: "valid_postgres_backend", mutate: func(c *Config) { c.Store.Backend = BackendPostgres }},
		{name: "missing_app_name", mutate: func(c *Config) { c.App.Name = "" }, wantErr: true, wantMissing: true},
		{name: "missing_path", mutate: func(c *Config) { c.Store.Path = "" }, wantErr: true, wantMissing: true},
		{name: "placeholder_path", mutate: func(c *Config) { c.Store.Path = "MISSING_PATH" }, wantErr: true, wantMissing: true},
		{
			name:        "s3_without_bucket",
			mutate:      func(c *Config) { c.Store.Backend = BackendS3; c.AWS.S3Bucket = "" },
			wantErr:     true,
			wantMissing: true,
		},
		{
			name:        "redis_without_host",
			mutate:      func(c *Config) { c.Store.Backend = BackendRedis; c.Redis.Host = "" },
			wantErr:     true,
			wantMissing: true,
		},
		{
			name:    "postgres_without_connections",
			mutate:  func(c *Config) { c.Store.Backend = BackendPostgres; c.Database.MaxConnections = 0 },
			wantErr: true,
		},
		{name: "negative_threshold", mutate: func(c *Config) { c.Store.LowStockThreshold = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := (&BasicValidator{}).Validate(cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantMissing {
				assert.ErrorIs(t, err, ErrMissingRequiredConfig)
			}
		})
	}
}

func TestProductionValidator_Validate(t *testing.T) {
	cfg := &Config{
		App:   AppConfig{Name: "stock-tracker", Environment: "production"},
		Store: StoreConfig{Backend: BackendFile, Path: "inventory.json"},
	}
	assert.Error(t, (&ProductionValidator{}).Validate(cfg))

	cfg.Store.AtomicWrites = true
	assert.NoError(t, (&ProductionValidator{}).Validate(cfg))

	cfg.Store.Backend = BackendPostgres
	cfg.Database = DatabaseConfig{SSLMode: "disable", Password: "secret"}
	assert.Error(t, (&ProductionValidator{}).Validate(cfg))

	cfg.Database.SSLMode = "require"
	assert.NoError(t, (&ProductionValidator{}).Validate(cfg))
}

type fakeSecretsAPI struct {
	secret string
	err    error
	calls  int
}

func (f *fakeSecretsAPI) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{
		Name:         params.SecretId,
		SecretString: aws.String(f.secret),
	}, nil
}

func TestAWSSecretsManager_GetSecretsCaches(t *testing.T) {
	api := &fakeSecretsAPI{secret: `{"REDIS_PASSWORD":"r3dis","DB_PASSWORD":"pg"}`}
	sm := newAWSSecretsManager(api, "stock-tracker/prod", discardLogger())
	ctx := context.Background()

	val, err := sm.GetSecret(ctx, SecretRedisPassword)
	require.NoError(t, err)
	assert.Equal(t, "r3dis", val)

	val, err = sm.GetSecret(ctx, SecretDBPassword)
	require.NoError(t, err)
	assert.Equal(t, "pg", val)
	assert.Equal(t, 1, api.calls)

	_, err = sm.GetSecret(ctx, "MISSING")
	assert.Error(t, err)
}

func TestAWSSecretsManager_Errors(t *testing.T) {
	ctx := context.Background()

	sm := newAWSSecretsManager(&fakeSecretsAPI{err: errors.New("access denied")}, "name", discardLogger())
	_, err := sm.GetSecrets(ctx, []string{SecretDBPassword})
	assert.ErrorContains(t, err, "access denied")

	sm = newAWSSecretsManager(&fakeSecretsAPI{secret: "not json"}, "name", discardLogger())
	_, err = sm.GetSecrets(ctx, []string{SecretDBPassword})
	assert.ErrorContains(t, err, "failed to parse secret JSON")
}

func TestConfig_ResolveSecrets(t *testing.T) {
	t.Setenv(SecretRedisPassword, "from-env")

	cfg := &Config{
		Redis:    RedisConfig{Password: "configured"},
		Database: DatabaseConfig{Password: "configured"},
	}
	require.NoError(t, cfg.ResolveSecrets(context.Background(), NewEnvSecretsManager()))

	assert.Equal(t, "from-env", cfg.Redis.Password)
	assert.Equal(t, "configured", cfg.Database.Password)
}
