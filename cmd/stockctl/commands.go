// cmd/stockctl/commands.go
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/ammerola/stock-tracker/internal/adapters/export"
	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/ports"
	"github.com/ammerola/stock-tracker/internal/core/services"
	"github.com/ammerola/stock-tracker/internal/pkg/config"
)

// demoSnapshot is where the walkthrough saves and reloads its inventory
const demoSnapshot = "inventory_clean.json"

type app struct {
	stdout       io.Writer
	stderr       io.Writer
	cfg          *config.Config
	logger       *slog.Logger
	diag         *services.Diagnostics
	newInventory func() ports.InventoryService
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "demo":
		return a.demo(ctx)
	case "add":
		return a.mutate(ctx, args, func(inv ports.InventoryService, item string, qty int64) error {
			return inv.AddRaw(ctx, item, qty, nil)
		})
	case "remove":
		return a.mutate(ctx, args, func(inv ports.InventoryService, item string, qty int64) error {
			return inv.RemoveRaw(ctx, item, qty)
		})
	case "qty":
		return a.quantity(ctx, args)
	case "low":
		return a.lowStock(ctx, args)
	case "report":
		return a.report(ctx)
	case "export":
		return a.exportWorkbook(ctx, args)
	case "import":
		return a.importWorkbook(ctx, args)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, command)
}

// demo walks through every store operation, including rejected input
func (a *app) demo(ctx context.Context) error {
	inventory := a.newInventory()
	session := domain.NewSessionLog()

	_ = inventory.AddRaw(ctx, "apple", 10, session)
	_ = inventory.AddRaw(ctx, "banana", 15, session)

	fmt.Fprintln(a.stdout, "\nTesting invalid inputs:")
	_ = inventory.AddRaw(ctx, "banana", -2, session)
	_ = inventory.AddRaw(ctx, "", 10, session)
	_ = inventory.RemoveRaw(ctx, "orange", 1)

	_ = inventory.RemoveRaw(ctx, "apple", 3)
	a.printReport(inventory)

	fmt.Fprintf(a.stdout, "Apple stock: %d\n", inventory.QuantityOf("apple"))
	fmt.Fprintf(a.stdout, "Low items (threshold=10): %v\n", inventory.LowStock(10))

	saveErr := inventory.Save(ctx, demoSnapshot)

	fmt.Fprintln(a.stdout, "Loading data into new inventory...")
	reloaded := a.newInventory()
	_ = reloaded.Load(ctx, demoSnapshot)
	a.printReport(reloaded)

	fmt.Fprintln(a.stdout, "Session Logs:")
	for _, record := range session.Records() {
		fmt.Fprintln(a.stdout, record)
	}

	return saveErr
}

// mutate loads the configured snapshot, applies op and saves the result
func (a *app) mutate(ctx context.Context, args []string, op func(ports.InventoryService, string, int64) error) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: expected <item> <qty>", errUsage)
	}

	qty, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		a.diag.Error(ctx, fmt.Sprintf("Quantity '%s' is not a valid non-negative integer.", args[1]))
		return fmt.Errorf("%w: %s", domain.ErrInvalidQuantity, args[1])
	}

	inventory, err := a.load(ctx, true)
	if err != nil {
		return err
	}

	if err := op(inventory, args[0], qty); err != nil {
		return err
	}

	return inventory.Save(ctx, a.cfg.Store.Path)
}

func (a *app) quantity(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected <item>", errUsage)
	}

	inventory, err := a.load(ctx, false)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, inventory.QuantityOf(domain.ItemName(args[0])))
	return nil
}

func (a *app) lowStock(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("low", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	threshold := fs.Uint64("threshold", uint64(a.cfg.Store.LowStockThreshold), "report items strictly below this quantity")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	inventory, err := a.load(ctx, false)
	if err != nil {
		return err
	}

	for _, item := range inventory.LowStock(domain.Quantity(*threshold)) {
		fmt.Fprintln(a.stdout, item)
	}
	return nil
}

func (a *app) report(ctx context.Context) error {
	inventory, err := a.load(ctx, false)
	if err != nil {
		return err
	}

	fmt.Fprint(a.stdout, inventory.Report())
	return nil
}

func (a *app) exportWorkbook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	out := fs.String("out", "", "path of the workbook to write")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *out == "" {
		return fmt.Errorf("%w: -out is required", errUsage)
	}

	inventory, err := a.load(ctx, false)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	threshold := domain.Quantity(a.cfg.Store.LowStockThreshold)
	if err := export.WriteWorkbook(&buf, inventory.Snapshot(), threshold); err != nil {
		return err
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	a.logger.InfoContext(ctx, "workbook exported",
		slog.String("path", *out),
		slog.Int("items", inventory.Snapshot().Len()))
	return nil
}

func (a *app) importWorkbook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	in := fs.String("in", "", "path of the workbook to read")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *in == "" {
		return fmt.Errorf("%w: -in is required", errUsage)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("failed to read workbook: %w", err)
	}
	rows, err := export.ReadWorkbook(data)
	if err != nil {
		a.diag.Error(ctx, fmt.Sprintf("Could not import '%s': %v", *in, err))
		return err
	}

	inventory, err := a.load(ctx, true)
	if err != nil {
		return err
	}

	for _, e := range rows.Entries() {
		if err := inventory.Add(ctx, e.Item, e.Quantity, nil); err != nil {
			return err
		}
	}

	return inventory.Save(ctx, a.cfg.Store.Path)
}

// load returns an inventory holding the configured snapshot. A missing
// snapshot starts empty. Any other failure aborts commands that would
// write back, so a damaged snapshot is never overwritten.
func (a *app) load(ctx context.Context, forWrite bool) (ports.InventoryService, error) {
	inventory := a.newInventory()

	err := inventory.Load(ctx, a.cfg.Store.Path)
	if err == nil || errors.Is(err, domain.ErrSnapshotNotFound) || !forWrite {
		return inventory, nil
	}
	return nil, err
}

func (a *app) printReport(inventory ports.InventoryService) {
	fmt.Fprint(a.stdout, "\n"+inventory.Report()+"\n")
}
