package seeder

import (
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/config"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func scenarioCounts() config.Counts {
	return config.Counts{
		Customers:        10,
		Suppliers:        3,
		Warehouses:       2,
		Categories:       8,
		Products:         20,
		Orders:           50,
		MaxItemsPerOrder: 5,
		MaxQuantity:      4,
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ExportPath:   t.TempDir(),
		ExportFormat: "csv",
		Metrics:      true,
		Seed:         42,
		FakerSeed:    1234,
		Database:     config.Database{Provider: "sqlite", URLEnv: "SHOPSEED_TEST_DATABASE_URL"},
		Counts:       scenarioCounts(),
		Batch:        config.Batch{Customers: 4, Products: 7, Orders: 16, OrderItems: 25},
	}
}

func generate(t *testing.T, counts config.Counts, seed int64) *Dataset {
	t.Helper()
	s := NewStreams(seed, seed+1, fixedNow)
	ref, err := GenerateReference(counts, s)
	if err != nil {
		t.Fatalf("reference: %v", err)
	}
	products, err := GenerateCatalog(counts.Products, ref, s)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	tx, err := GenerateTransactions(counts, ref, products, s)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	return &Dataset{Reference: ref, Products: products, Transactions: tx}
}
