package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
)

// Only constraints declared DEFERRABLE are affected; the bundled schema
// declares every foreign key that way.
func (p *Adapter) DisableForeignKeys(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "SET CONSTRAINTS ALL DEFERRED"); err != nil {
		return fmt.Errorf("failed to defer constraints: %w", err)
	}
	return nil
}

func (p *Adapter) EnableForeignKeys(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "SET CONSTRAINTS ALL IMMEDIATE"); err != nil {
		return fmt.Errorf("failed to restore immediate constraints: %w", err)
	}
	return nil
}

// TruncateTable is transactional in PostgreSQL, so a rollback restores the rows.
func (p *Adapter) TruncateTable(ctx context.Context, tx *sql.Tx, table string) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", p.QuoteIdentifier(table))
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", table, err)
	}
	return nil
}

func (p *Adapter) GetTableRowCount(ctx context.Context, table string) (int64, error) {
	return common.CountRows(ctx, p.db, p.qb, p.QuoteIdentifier(table))
}
