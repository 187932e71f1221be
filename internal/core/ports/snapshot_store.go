// internal/core/ports/snapshot_store.go
package ports

import (
	"context"

	"github.com/ammerola/stock-tracker/internal/core/domain"
)

// SnapshotStore defines the persistence port for the stock mapping.
// Implementations are provided by the file, redis, s3 and postgres adapters.
//
// Load returns domain.ErrSnapshotNotFound when nothing was ever saved under
// name and domain.ErrMalformedSnapshot when the stored content cannot be decoded.
type SnapshotStore interface {
	Load(ctx context.Context, name string) (*domain.Stock, error)
	Save(ctx context.Context, name string, stock *domain.Stock) error
}
