// internal/adapters/redis/snapshot.go
package redis_a

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/ports"
	"github.com/ammerola/stock-tracker/internal/pkg/config"
)

// DefaultKeyPrefix namespaces snapshot keys when no prefix is configured
const DefaultKeyPrefix = "stock"

// Snapshots stores inventory snapshots as JSON strings under <prefix>:<name>
type Snapshots struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// Statically assert that *Snapshots implements the SnapshotStore interface.
var _ ports.SnapshotStore = (*Snapshots)(nil)

// NewSnapshots creates a Redis backed snapshot store. A zero ttl keeps
// snapshots until they are overwritten.
func NewSnapshots(client redis.UniversalClient, prefix string, ttl time.Duration, logger *slog.Logger) *Snapshots {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Snapshots{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "redis_snapshots")),
	}
}

// Connect opens a client from the Redis section of cfg and verifies it with PING
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	addr := cfg.GetRedisAddress()
	logger.Info("connecting to Redis",
		slog.String("addr", addr),
		slog.Int("db", cfg.Redis.DB))

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return client, nil
}

// Key returns the Redis key holding the snapshot called name
func (s *Snapshots) Key(name string) string {
	return s.prefix + ":" + name
}

// Load fetches and decodes the snapshot stored under name
func (s *Snapshots) Load(ctx context.Context, name string) (*domain.Stock, error) {
	key := s.Key(name)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.logger.DebugContext(ctx, "snapshot miss", slog.String("key", key))
			return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, key)
		}
		s.logger.ErrorContext(ctx, "failed to get snapshot",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	stock, err := domain.DecodeStock(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", key, err)
	}

	s.logger.DebugContext(ctx, "snapshot loaded",
		slog.String("key", key),
		slog.Int("items", stock.Len()))
	return stock, nil
}

// Save encodes stock and replaces whatever is stored under name
func (s *Snapshots) Save(ctx context.Context, name string, stock *domain.Stock) error {
	key := s.Key(name)

	data, err := stock.EncodeIndented()
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.ErrorContext(ctx, "failed to set snapshot",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("redis set error: %w", err)
	}

	s.logger.DebugContext(ctx, "snapshot saved",
		slog.String("key", key),
		slog.Duration("ttl", s.ttl))
	return nil
}
