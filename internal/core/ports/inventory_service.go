// internal/core/ports/inventory_service.go
package ports

import (
	"context"

	"github.com/ammerola/stock-tracker/internal/core/domain"
)

// LogSink receives human-readable records of stock changes.
// *domain.SessionLog implements it.
type LogSink interface {
	Append(record string)
}

// InventoryService defines the application service port for the stock mapping.
// This interface is implemented by the application service.
type InventoryService interface {
	Add(ctx context.Context, item domain.ItemName, qty domain.Quantity, sink LogSink) error
	Remove(ctx context.Context, item domain.ItemName, qty domain.Quantity) error
	AddRaw(ctx context.Context, item string, qty int64, sink LogSink) error
	RemoveRaw(ctx context.Context, item string, qty int64) error
	QuantityOf(item domain.ItemName) domain.Quantity
	LowStock(threshold domain.Quantity) []domain.ItemName
	Load(ctx context.Context, name string) error
	Save(ctx context.Context, name string) error
	Report() string
	Snapshot() *domain.Stock
}
