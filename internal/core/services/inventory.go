// internal/core/services/inventory.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/ports"
)

// DefaultSnapshotName is used by Load and Save when no name is given
const DefaultSnapshotName = "inventory.json"

// InventoryService holds the item to quantity mapping and mediates every
// change to it. Each public method runs under a single lock.
type InventoryService struct {
	mu     sync.Mutex
	stock  *domain.Stock
	store  ports.SnapshotStore
	diag   *Diagnostics
	logger *slog.Logger
	now    func() time.Time
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// Option configures an InventoryService
type Option func(*InventoryService)

// WithClock overrides the clock used for session log timestamps
func WithClock(now func() time.Time) Option {
	return func(s *InventoryService) {
		s.now = now
	}
}

// NewInventoryService creates a new inventory service with an empty mapping
func NewInventoryService(store ports.SnapshotStore, diag *Diagnostics, logger *slog.Logger, opts ...Option) *InventoryService {
	s := &InventoryService{
		stock:  domain.NewStock(),
		store:  store,
		diag:   diag,
		logger: logger.With(slog.String("service", "inventory")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add increments the stored quantity for item by qty, creating the entry if
// needed. When sink is non-nil a timestamped record is appended to it.
func (s *InventoryService) Add(ctx context.Context, item domain.ItemName, qty domain.Quantity, sink ports.LogSink) error {
	if err := item.Validate(); err != nil {
		s.reportInvalidItem(ctx, "add", string(item))
		return fmt.Errorf("add rejected: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := s.stock.Get(item)
	if qty > domain.Quantity(math.MaxUint64)-current {
		s.diag.Error(ctx,
			fmt.Sprintf("Quantity '%d' would overflow the stock of '%s'.", qty, item),
			slog.String("operation", "add"),
			slog.String("item", item.String()))
		return fmt.Errorf("add rejected: %w: overflow", domain.ErrInvalidQuantity)
	}

	s.stock.Set(item, current+qty)
	if sink != nil {
		sink.Append(domain.AddedRecord(s.now(), item, qty))
	}

	s.logger.DebugContext(ctx, "added stock",
		slog.String("item", item.String()),
		slog.Uint64("qty", uint64(qty)),
		slog.Uint64("total", uint64(current+qty)))

	return nil
}

// AddRaw validates untyped input and then behaves like Add
func (s *InventoryService) AddRaw(ctx context.Context, item string, qty int64, sink ports.LogSink) error {
	name, q, err := s.parseInput(ctx, "add", item, qty)
	if err != nil {
		return fmt.Errorf("add rejected: %w", err)
	}
	return s.Add(ctx, name, q, sink)
}

// Remove decrements the stored quantity for item by qty. The entry is
// deleted once its quantity would drop to zero or below.
func (s *InventoryService) Remove(ctx context.Context, item domain.ItemName, qty domain.Quantity) error {
	if err := item.Validate(); err != nil {
		s.reportInvalidItem(ctx, "remove", string(item))
		return fmt.Errorf("remove rejected: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.stock.Get(item)
	if !ok {
		s.diag.Error(ctx,
			fmt.Sprintf("Item '%s' not in stock. Cannot remove.", item),
			slog.String("operation", "remove"),
			slog.String("item", item.String()))
		return fmt.Errorf("remove %s: %w", item, domain.ErrItemNotInStock)
	}

	if qty >= current {
		s.stock.Delete(item)
		s.logger.DebugContext(ctx, "removed item from stock",
			slog.String("item", item.String()))
		return nil
	}

	s.stock.Set(item, current-qty)
	s.logger.DebugContext(ctx, "removed stock",
		slog.String("item", item.String()),
		slog.Uint64("qty", uint64(qty)),
		slog.Uint64("total", uint64(current-qty)))

	return nil
}

// RemoveRaw validates untyped input and then behaves like Remove
func (s *InventoryService) RemoveRaw(ctx context.Context, item string, qty int64) error {
	name, q, err := s.parseInput(ctx, "remove", item, qty)
	if err != nil {
		return fmt.Errorf("remove rejected: %w", err)
	}
	return s.Remove(ctx, name, q)
}

// QuantityOf returns the stored quantity for item, or 0 if absent
func (s *InventoryService) QuantityOf(item domain.ItemName) domain.Quantity {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty, _ := s.stock.Get(item)
	return qty
}

// LowStock returns the items whose quantity is strictly below threshold,
// in insertion order
func (s *InventoryService) LowStock(threshold domain.Quantity) []domain.ItemName {
	s.mu.Lock()
	defer s.mu.Unlock()

	low := []domain.ItemName{}
	for _, e := range s.stock.Entries() {
		if e.Quantity < threshold {
			low = append(low, e.Item)
		}
	}
	return low
}

// Load replaces the whole mapping with the snapshot stored under name.
// A missing or unreadable snapshot resets the mapping to empty.
func (s *InventoryService) Load(ctx context.Context, name string) error {
	if name == "" {
		name = DefaultSnapshotName
	}

	loaded, err := s.store.Load(ctx, name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		s.stock = loaded
		s.logger.InfoContext(ctx, "loaded inventory",
			slog.String("path", name),
			slog.Int("items", loaded.Len()))
		return nil
	}

	s.stock = domain.NewStock()
	attrs := []slog.Attr{
		slog.String("operation", "load"),
		slog.String("path", name),
		slog.String("error", err.Error()),
	}

	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		s.diag.Warning(ctx,
			fmt.Sprintf("File '%s' not found. Starting with empty inventory.", name),
			attrs...)
	case errors.Is(err, domain.ErrMalformedSnapshot):
		s.diag.Error(ctx,
			fmt.Sprintf("Could not decode JSON from '%s'. Starting with empty inventory.", name),
			attrs...)
	default:
		s.diag.Warning(ctx,
			fmt.Sprintf("Could not read '%s': %v. Starting with empty inventory.", name, err),
			attrs...)
	}

	return fmt.Errorf("failed to load inventory from %s: %w", name, err)
}

// Save writes the full mapping under name. The in-memory state is never
// affected by a failed save.
func (s *InventoryService) Save(ctx context.Context, name string) error {
	if name == "" {
		name = DefaultSnapshotName
	}

	s.mu.Lock()
	snapshot := s.stock.Clone()
	s.mu.Unlock()

	if err := s.store.Save(ctx, name, snapshot); err != nil {
		s.diag.Warning(ctx,
			fmt.Sprintf("Could not save data to '%s': %v", name, err),
			slog.String("operation", "save"),
			slog.String("path", name),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to save inventory to %s: %w", name, err)
	}

	s.logger.InfoContext(ctx, "saved inventory",
		slog.String("path", name),
		slog.Int("items", snapshot.Len()))

	return nil
}

// Report renders every item and its quantity, or an empty marker
func (s *InventoryService) Report() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("--- Items Report ---\n")
	if s.stock.Len() == 0 {
		b.WriteString("Inventory is empty.\n")
	} else {
		for _, e := range s.stock.Entries() {
			fmt.Fprintf(&b, "%s -> %d\n", e.Item, e.Quantity)
		}
	}
	b.WriteString("--------------------\n")
	return b.String()
}

// Snapshot returns a copy of the current mapping
func (s *InventoryService) Snapshot() *domain.Stock {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stock.Clone()
}

func (s *InventoryService) parseInput(ctx context.Context, op, rawItem string, rawQty int64) (domain.ItemName, domain.Quantity, error) {
	item, err := domain.ParseItemName(rawItem)
	if err != nil {
		s.reportInvalidItem(ctx, op, rawItem)
		return "", 0, err
	}

	qty, err := domain.ParseQuantity(rawQty)
	if err != nil {
		s.diag.Error(ctx,
			fmt.Sprintf("Quantity '%d' is not a valid non-negative integer.", rawQty),
			slog.String("operation", op),
			slog.String("item", rawItem),
			slog.Int64("qty", rawQty))
		return "", 0, err
	}

	return item, qty, nil
}

func (s *InventoryService) reportInvalidItem(ctx context.Context, op, raw string) {
	s.diag.Error(ctx,
		fmt.Sprintf("Item name '%s' is not a valid string.", raw),
		slog.String("operation", op),
		slog.String("item", raw))
}
