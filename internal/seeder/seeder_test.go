package seeder

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/config"
	"github.com/Lumos-Labs-HQ/shopseed/internal/database/sqlite"
	"github.com/Lumos-Labs-HQ/shopseed/internal/manifest"
	"github.com/Lumos-Labs-HQ/shopseed/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *sqlite.Adapter {
	t.Helper()
	ctx := context.Background()
	adapter := sqlite.New()
	require.NoError(t, adapter.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "shop.db")))
	t.Cleanup(func() { adapter.Close() })
	require.NoError(t, adapter.ApplySchema(ctx))
	return adapter
}

func openSQLite(t *testing.T, store *sqlite.Adapter) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", sqlite.DSN(store.Path()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestSeeder(cfg *config.Config, adapter *sqlite.Adapter) *Seeder {
	var s *Seeder
	if adapter == nil {
		s = NewSeeder(cfg, nil)
	} else {
		s = NewSeeder(cfg, adapter)
	}
	s.SetClock(func() time.Time { return fixedNow })
	s.SetQuiet(true)
	return s
}

func storeCounts(t *testing.T, s *Seeder) map[string]int {
	t.Helper()
	counts, err := s.Status(context.Background())
	require.NoError(t, err)
	byName := make(map[string]int, len(counts))
	for _, c := range counts {
		byName[c.Name] = c.Rows
	}
	return byName
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	store := newSQLiteStore(t)
	s := newTestSeeder(cfg, store)

	report, err := s.Run(ctx, RunOptions{Export: true, Load: true, Verify: true})
	require.NoError(t, err)

	rows := func(table string) int {
		n, ok := report.Manifest.Rows(table)
		require.True(t, ok, table)
		return n
	}
	assert.Equal(t, 10, rows("customers"))
	assert.Equal(t, 50, rows("orders"))
	assert.Equal(t, 50, rows("shipments"))
	assert.LessOrEqual(t, rows("returns"), 50)

	loaded := storeCounts(t, s)
	for _, c := range report.Manifest.Tables {
		assert.Equal(t, c.Rows, loaded[c.Name], c.Name)
	}

	var first, last string
	db := openSQLite(t, store)
	require.NoError(t, db.QueryRow(`SELECT MIN(customer_id), MAX(customer_id) FROM customers`).Scan(&first, &last))
	assert.Equal(t, "C00001", first)
	assert.Equal(t, "C00010", last)
	require.NoError(t, db.QueryRow(`SELECT MIN(order_id), MAX(order_id) FROM orders`).Scan(&first, &last))
	assert.Equal(t, "O00000001", first)
	assert.Equal(t, "O00000050", last)

	var orphans int
	require.NoError(t, db.QueryRow(`
		SELECT COUNT(*) FROM returns r
		WHERE NOT EXISTS (
			SELECT 1 FROM order_items i WHERE i.order_id = r.order_id AND i.product_id = r.product_id
		)`).Scan(&orphans))
	assert.Zero(t, orphans)

	for _, name := range []string{"customers.csv", "orders.csv", "returns.csv", manifest.FileName, MetricsFile} {
		assert.FileExists(t, filepath.Join(cfg.ExportPath, name))
	}
	onDisk, err := manifest.Read(cfg.ExportPath)
	require.NoError(t, err)
	assert.Equal(t, report.Manifest.RunID, onDisk.RunID)
	assert.True(t, onDisk.Loaded)
	assert.Equal(t, "sqlite", onDisk.Provider)
	assert.Len(t, onDisk.Files, 10)
}

func TestRunTwiceReplacesData(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	store := newSQLiteStore(t)

	_, err := newTestSeeder(cfg, store).Run(ctx, RunOptions{Load: true})
	require.NoError(t, err)
	first := storeCounts(t, newTestSeeder(cfg, store))

	cfg.Seed = 7
	cfg.FakerSeed = 8
	_, err = newTestSeeder(cfg, store).Run(ctx, RunOptions{Load: true, Verify: true})
	require.NoError(t, err)
	second := storeCounts(t, newTestSeeder(cfg, store))

	for _, table := range []string{"customers", "suppliers", "warehouses", "categories", "products", "exchange_rates", "orders", "shipments"} {
		assert.Equal(t, first[table], second[table], table)
	}
}

func TestFailedLoadLeavesPriorData(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	store := newSQLiteStore(t)
	s := newTestSeeder(cfg, store)

	_, err := s.Run(ctx, RunOptions{Load: true})
	require.NoError(t, err)
	before := storeCounts(t, s)

	ds, err := s.Generate(fixedNow)
	require.NoError(t, err)
	tables := ds.Tables()
	for i := range tables {
		if tables[i].Name == "order_items" {
			tables[i].Rows = append(tables[i].Rows, tables[i].Rows[0])
		}
	}

	loader := NewLoader(store, cfg.BatchSizes(), nil)
	loader.quiet = true
	err = loader.Load(ctx, tables)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_items")

	assert.Equal(t, before, storeCounts(t, s))
}

func TestLoadRejectsUnknownTable(t *testing.T) {
	store := newSQLiteStore(t)
	loader := NewLoader(store, nil, nil)
	loader.quiet = true

	err := loader.Load(context.Background(), []types.Table{{Name: "coupons", Columns: []string{"code"}}})
	assert.ErrorContains(t, err, "not part of the target schema")
}

func TestRowsPerStatement(t *testing.T) {
	store := sqlite.New()
	loader := NewLoader(store, map[string]int{"orders": 1000, "order_items": 50000}, nil)

	orders := types.Table{Name: "orders", Columns: make([]string, 9)}
	items := types.Table{Name: "order_items", Columns: make([]string, 5)}
	rates := types.Table{Name: "exchange_rates", Columns: make([]string, 3)}

	assert.Equal(t, 1000, loader.rowsPerStatement(orders))
	assert.Equal(t, store.MaxBindParams()/5, loader.rowsPerStatement(items))
	assert.Equal(t, store.MaxBindParams()/3, loader.rowsPerStatement(rates))
}

func TestDeterministicExport(t *testing.T) {
	ctx := context.Background()
	cfgA, cfgB := testConfig(t), testConfig(t)

	_, err := newTestSeeder(cfgA, nil).Run(ctx, RunOptions{Export: true})
	require.NoError(t, err)
	_, err = newTestSeeder(cfgB, nil).Run(ctx, RunOptions{Export: true})
	require.NoError(t, err)

	for _, name := range []string{"customers.csv", "products.csv", "orders.csv", "order_items.csv", "shipments.csv", "returns.csv"} {
		a, err := os.ReadFile(filepath.Join(cfgA.ExportPath, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(cfgB.ExportPath, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), name)
	}

	cfgC := testConfig(t)
	cfgC.Seed = 43
	_, err = newTestSeeder(cfgC, nil).Run(ctx, RunOptions{Export: true})
	require.NoError(t, err)
	a, _ := os.ReadFile(filepath.Join(cfgA.ExportPath, "orders.csv"))
	c, _ := os.ReadFile(filepath.Join(cfgC.ExportPath, "orders.csv"))
	assert.NotEqual(t, string(a), string(c))
}

func TestRunLoadWithoutAdapter(t *testing.T) {
	_, err := newTestSeeder(testConfig(t), nil).Run(context.Background(), RunOptions{Load: true})
	assert.ErrorContains(t, err, "without a database adapter")
}

func TestRunRejectsBadCountsBeforeGenerating(t *testing.T) {
	cfg := testConfig(t)
	cfg.Counts.Orders = 0

	_, err := newTestSeeder(cfg, nil).Run(context.Background(), RunOptions{Export: true})
	require.ErrorContains(t, err, "counts.orders must be positive")

	entries, err := os.ReadDir(cfg.ExportPath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
