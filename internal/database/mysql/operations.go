package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
)

// FOREIGN_KEY_CHECKS is session scoped, and the transaction pins one session.
func (m *Adapter) DisableForeignKeys(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		return fmt.Errorf("failed to disable foreign key checks: %w", err)
	}
	return nil
}

func (m *Adapter) EnableForeignKeys(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1"); err != nil {
		return fmt.Errorf("failed to enable foreign key checks: %w", err)
	}
	return nil
}

// TruncateTable deletes every row. TRUNCATE TABLE commits implicitly in MySQL
// and would escape the load transaction.
func (m *Adapter) TruncateTable(ctx context.Context, tx *sql.Tx, table string) error {
	query, args, err := m.qb.Delete(m.QuoteIdentifier(table)).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", table, err)
	}
	return nil
}

func (m *Adapter) GetTableRowCount(ctx context.Context, table string) (int64, error) {
	return common.CountRows(ctx, m.db, m.qb, m.QuoteIdentifier(table))
}
