// internal/adapters/db/snapshot_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/ports"
)

// SnapshotRepository stores named inventory snapshots in PostgreSQL. Each
// snapshot is one inventory_snapshots row plus one entry row per item, the
// entry position preserving insertion order.
type SnapshotRepository struct {
	db     *sql.DB
	qb     squirrel.StatementBuilderType
	now    func() time.Time
	logger *slog.Logger
}

// Statically assert that *SnapshotRepository implements the SnapshotStore interface.
var _ ports.SnapshotStore = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB, logger *slog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:     db,
		qb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		now:    time.Now,
		logger: logger.With(slog.String("repository", "snapshots")),
	}
}

// Save replaces the snapshot called name with stock in a single transaction
func (r *SnapshotRepository) Save(ctx context.Context, name string, stock *domain.Stock) error {
	entries := stock.Entries()
	for _, e := range entries {
		if uint64(e.Quantity) > math.MaxInt64 {
			return fmt.Errorf("quantity of %s exceeds the column range: %w", e.Item, domain.ErrInvalidQuantity)
		}
	}

	upsert, upsertArgs, err := r.qb.
		Insert("inventory_snapshots").
		Columns("name", "saved_at", "item_count").
		Values(name, r.now().UTC(), len(entries)).
		Suffix("ON CONFLICT (name) DO UPDATE SET saved_at = EXCLUDED.saved_at, item_count = EXCLUDED.item_count").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert: %w", err)
	}

	clearQuery, clearArgs, err := r.qb.
		Delete("inventory_snapshot_entries").
		Where(squirrel.Eq{"snapshot_name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}

	err = Transaction(ctx, r.db, nil, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, upsert, upsertArgs...); err != nil {
			return fmt.Errorf("failed to upsert snapshot: %w", err)
		}
		if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
			return fmt.Errorf("failed to clear snapshot entries: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}

		insert := r.qb.
			Insert("inventory_snapshot_entries").
			Columns("snapshot_name", "position", "item", "quantity")
		for i, e := range entries {
			insert = insert.Values(name, i, string(e.Item), int64(e.Quantity))
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build entry insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert snapshot entries: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save snapshot",
			slog.String("name", name),
			slog.String("error", err.Error()))
		return err
	}

	r.logger.InfoContext(ctx, "snapshot saved",
		slog.String("name", name),
		slog.Int("items", len(entries)))

	return nil
}

// Load reads the snapshot called name back into insertion order
func (r *SnapshotRepository) Load(ctx context.Context, name string) (*domain.Stock, error) {
	headerQuery, headerArgs, err := r.qb.
		Select("saved_at").
		From("inventory_snapshots").
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	entriesQuery, entriesArgs, err := r.qb.
		Select("item", "quantity").
		From("inventory_snapshot_entries").
		Where(squirrel.Eq{"snapshot_name": name}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	stock := domain.NewStock()
	var savedAt time.Time

	err = Transaction(ctx, r.db, &sql.TxOptions{ReadOnly: true}, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, headerQuery, headerArgs...).Scan(&savedAt); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, name)
			}
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		rows, err := tx.QueryContext(ctx, entriesQuery, entriesArgs...)
		if err != nil {
			return fmt.Errorf("failed to read snapshot entries: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var item string
			var qty int64
			if err := rows.Scan(&item, &qty); err != nil {
				return fmt.Errorf("failed to scan snapshot entry: %w", err)
			}

			itemName, err := domain.ParseItemName(item)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrMalformedSnapshot, err)
			}
			q, err := domain.ParseQuantity(qty)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrMalformedSnapshot, err)
			}
			if _, dup := stock.Get(itemName); dup {
				return fmt.Errorf("%w: duplicate item %q", domain.ErrMalformedSnapshot, item)
			}
			stock.Set(itemName, q)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "snapshot loaded",
		slog.String("name", name),
		slog.Time("saved_at", savedAt),
		slog.Int("items", stock.Len()))

	return stock, nil
}
