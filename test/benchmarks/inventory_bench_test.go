package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/ammerola/stock-tracker/internal/adapters/filestore"
	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/services"
	"github.com/ammerola/stock-tracker/test/helpers"
)

func newBenchmarkService(b *testing.B, atomic bool) *services.InventoryService {
	b.Helper()

	logger := helpers.TestLogger()
	store := filestore.NewJSONFile(b.TempDir(), atomic, logger)
	return services.NewInventoryService(store, services.NewDiagnostics(nil, logger), logger)
}

func seed(b *testing.B, service *services.InventoryService, n int) []domain.ItemName {
	b.Helper()

	items := make([]domain.ItemName, n)
	for i := range items {
		items[i] = domain.ItemName(fmt.Sprintf("item-%05d", i))
		if err := service.Add(context.Background(), items[i], domain.Quantity(i%20), nil); err != nil {
			b.Fatal(err)
		}
	}
	return items
}

func BenchmarkInventoryOperations(b *testing.B) {
	ctx := context.Background()
	service := newBenchmarkService(b, false)
	items := seed(b, service, 1000)

	b.Run("Add", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = service.Add(ctx, items[i%len(items)], 1, nil)
		}
	})

	b.Run("AddWithSessionLog", func(b *testing.B) {
		session := domain.NewSessionLog()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = service.Add(ctx, items[i%len(items)], 1, session)
		}
	})

	b.Run("QuantityOf", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = service.QuantityOf(items[i%len(items)])
		}
	})

	b.Run("LowStock", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = service.LowStock(domain.DefaultLowStockThreshold)
		}
	})

	b.Run("Report", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = service.Report()
		}
	})
}

func BenchmarkSnapshotPersistence(b *testing.B) {
	for _, atomic := range []bool{false, true} {
		b.Run(fmt.Sprintf("atomic=%t", atomic), func(b *testing.B) {
			ctx := context.Background()
			service := newBenchmarkService(b, atomic)
			seed(b, service, 500)

			b.Run("Save", func(b *testing.B) {
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					_ = service.Save(ctx, "bench.json")
				}
			})

			b.Run("Load", func(b *testing.B) {
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					_ = service.Load(ctx, "bench.json")
				}
			})
		})
	}
}

func BenchmarkStockCodec(b *testing.B) {
	stock := domain.NewStock()
	for i := 0; i < 1000; i++ {
		stock.Set(domain.ItemName(fmt.Sprintf("item-%05d", i)), domain.Quantity(i))
	}
	data, err := stock.EncodeIndented()
	if err != nil {
		b.Fatal(err)
	}

	b.Run("Encode", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = stock.EncodeIndented()
		}
	})

	b.Run("Decode", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(data)))
		for i := 0; i < b.N; i++ {
			_, _ = domain.DecodeStock(data)
		}
	})
}
