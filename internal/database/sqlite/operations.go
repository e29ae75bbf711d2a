package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
)

// PRAGMA foreign_keys cannot change inside a transaction, so enforcement is
// deferred to commit instead.
func (s *Adapter) DisableForeignKeys(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "PRAGMA defer_foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to defer foreign keys: %w", err)
	}
	return nil
}

func (s *Adapter) EnableForeignKeys(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "PRAGMA defer_foreign_keys = OFF"); err != nil {
		return fmt.Errorf("failed to restore foreign key checks: %w", err)
	}
	return nil
}

func (s *Adapter) TruncateTable(ctx context.Context, tx *sql.Tx, table string) error {
	query, args, err := s.qb.Delete(s.QuoteIdentifier(table)).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", table, err)
	}
	return nil
}

func (s *Adapter) GetTableRowCount(ctx context.Context, table string) (int64, error) {
	return common.CountRows(ctx, s.db, s.qb, s.QuoteIdentifier(table))
}
