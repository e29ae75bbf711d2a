package seeder

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database"
	"github.com/Lumos-Labs-HQ/shopseed/internal/metrics"
	"github.com/Lumos-Labs-HQ/shopseed/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/fatih/color"
)

// Loader replaces the contents of the target tables with a generated dataset
// inside a single transaction.
type Loader struct {
	adapter database.DatabaseAdapter
	graph   *DependencyGraph
	batches map[string]int
	metrics *metrics.Recorder
	quiet   bool
}

func NewLoader(adapter database.DatabaseAdapter, batches map[string]int, recorder *metrics.Recorder) *Loader {
	return &Loader{
		adapter: adapter,
		graph:   NewSchemaGraph(),
		batches: batches,
		metrics: recorder,
	}
}

// Load truncates every target table in reverse dependency order, then inserts
// tables in forward order. Nothing is visible to other readers until commit,
// and any failure rolls the whole load back.
func (l *Loader) Load(ctx context.Context, tables []types.Table) (err error) {
	byName := make(map[string]types.Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	insertOrder, err := l.graph.InsertionOrder()
	if err != nil {
		return fmt.Errorf("failed to build insertion order: %w", err)
	}
	truncateOrder, err := l.graph.TruncationOrder()
	if err != nil {
		return fmt.Errorf("failed to build truncation order: %w", err)
	}
	for name := range byName {
		if _, ok := l.graph.tables[name]; !ok {
			return fmt.Errorf("table %s is not part of the target schema", name)
		}
	}

	tx, err := l.adapter.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	l.logf(color.Cyan, "🔒 Transaction started")

	defer func() {
		if err == nil {
			return
		}
		l.logf(color.Yellow, "🔄 Rolling back transaction due to error...")
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			err = fmt.Errorf("load failed and rollback failed: %v (original: %w)", rbErr, err)
			return
		}
		l.logf(color.Yellow, "✅ Transaction rolled back")
	}()

	if err = l.truncate(ctx, tx, truncateOrder); err != nil {
		return err
	}

	loaded := make(map[string]int, len(insertOrder))
	for _, name := range insertOrder {
		table, ok := byName[name]
		if !ok || table.Len() == 0 {
			continue
		}
		if err = l.insertTable(ctx, tx, table); err != nil {
			return fmt.Errorf("failed to seed table %s: %w", name, err)
		}
		loaded[name] = table.Len()
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	l.logf(color.Cyan, "🔓 Transaction committed")

	for name, n := range loaded {
		l.metrics.RowsLoaded(name, n)
	}
	return nil
}

func (l *Loader) truncate(ctx context.Context, tx *sql.Tx, order []string) error {
	l.logf(color.Yellow, "🗑️  Truncating tables...")

	if err := l.adapter.DisableForeignKeys(ctx, tx); err != nil {
		return err
	}
	for _, name := range order {
		if err := l.adapter.TruncateTable(ctx, tx, name); err != nil {
			return err
		}
	}
	return l.adapter.EnableForeignKeys(ctx, tx)
}

func (l *Loader) insertTable(ctx context.Context, tx *sql.Tx, table types.Table) error {
	l.logf(color.Cyan, "  📝 Seeding %s (%d records)...", table.Name, table.Len())

	columns := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		columns[i] = l.adapter.QuoteIdentifier(col)
	}
	into := l.adapter.QuoteIdentifier(table.Name)

	for _, batch := range table.Batches(l.rowsPerStatement(table)) {
		insert := squirrel.Insert(into).Columns(columns...).PlaceholderFormat(l.adapter.Placeholder())
		for _, row := range batch {
			insert = insert.Values(row...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert batch: %w", err)
		}
	}

	l.logf(color.Green, "  ✅ %s seeded successfully", table.Name)
	return nil
}

// rowsPerStatement caps the configured batch so one statement never exceeds
// the dialect's bind-parameter limit. Tables without a configured batch go
// in as few statements as that limit allows.
func (l *Loader) rowsPerStatement(table types.Table) int {
	limit := table.Len()
	if len(table.Columns) > 0 {
		limit = l.adapter.MaxBindParams() / len(table.Columns)
	}
	if size, ok := l.batches[table.Name]; ok && size > 0 && size < limit {
		return size
	}
	return max(limit, 1)
}

func (l *Loader) logf(printer func(string, ...interface{}), format string, args ...interface{}) {
	if l.quiet {
		return
	}
	printer(format, args...)
}
