package database

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
)

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error
	BeginTx(ctx context.Context) (*sql.Tx, error)

	// Statement building
	Placeholder() squirrel.PlaceholderFormat
	QuoteIdentifier(name string) string
	MaxBindParams() int

	// Load operations, all run inside the caller's transaction
	DisableForeignKeys(ctx context.Context, tx *sql.Tx) error
	EnableForeignKeys(ctx context.Context, tx *sql.Tx) error
	TruncateTable(ctx context.Context, tx *sql.Tx, table string) error

	// Schema and reporting
	ApplySchema(ctx context.Context) error
	GetTableRowCount(ctx context.Context, table string) (int64, error)
}
