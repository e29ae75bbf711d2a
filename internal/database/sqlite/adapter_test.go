package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a := New()
	require.NoError(t, a.Connect(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "shop.db")))
	t.Cleanup(func() { a.Close() })
	require.NoError(t, a.ApplySchema(context.Background()))
	return a
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "data/shop.db?"+defaultParams, DSN("sqlite://data/shop.db"))
	assert.Equal(t, "shop.db?_foreign_keys=on", DSN("shop.db?_foreign_keys=on"))
}

func TestApplySchemaIsRepeatable(t *testing.T) {
	a := newTestAdapter(t)
	require.NoError(t, a.ApplySchema(context.Background()))

	count, err := a.GetTableRowCount(context.Background(), "returns")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, common.ParseSQLStatements(Schema()), 10)
}

func TestTruncateWithDeferredForeignKeys(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	_, err := a.db.ExecContext(ctx, `INSERT INTO categories (category_id, name) VALUES (1, 'Category 1')`)
	require.NoError(t, err)
	_, err = a.db.ExecContext(ctx, `INSERT INTO suppliers VALUES ('S0001', 'Acme', 4.5, 'India')`)
	require.NoError(t, err)
	_, err = a.db.ExecContext(ctx, `INSERT INTO products VALUES ('P00001', 'Product 1 lamp', 1, 'S0001', 10.50, 'USD', '2025-01-01 00:00:00')`)
	require.NoError(t, err)

	tx, err := a.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, a.DisableForeignKeys(ctx, tx))
	// Parents first would fail with immediate checks.
	require.NoError(t, a.TruncateTable(ctx, tx, "categories"))
	require.NoError(t, a.TruncateTable(ctx, tx, "suppliers"))
	require.NoError(t, a.TruncateTable(ctx, tx, "products"))
	require.NoError(t, a.EnableForeignKeys(ctx, tx))
	require.NoError(t, tx.Commit())

	for _, table := range []string{"categories", "suppliers", "products"} {
		count, err := a.GetTableRowCount(ctx, table)
		require.NoError(t, err)
		assert.Zero(t, count, table)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	a := newTestAdapter(t)
	_, err := a.db.ExecContext(context.Background(),
		`INSERT INTO products VALUES ('P00001', 'Orphan', 99, 'S9999', 1.00, 'USD', '2025-01-01 00:00:00')`)
	assert.Error(t, err)
}

func TestQuoteIdentifier(t *testing.T) {
	a := New()
	assert.Equal(t, `"order_items"`, a.QuoteIdentifier("order_items"))
	assert.Equal(t, `"a""b"`, a.QuoteIdentifier(`a"b`))
}
