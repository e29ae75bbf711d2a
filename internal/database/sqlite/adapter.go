package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// maxBindParams is SQLITE_MAX_VARIABLE_NUMBER for the bundled amalgamation.
const maxBindParams = 32766

const defaultParams = "_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"

type Adapter struct {
	db   *sql.DB
	qb   squirrel.StatementBuilderType
	path string
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// DSN turns a sqlite:// or file URL into a go-sqlite3 DSN with foreign keys on.
func DSN(url string) string {
	dsn := strings.TrimPrefix(url, "sqlite://")
	dsn = strings.TrimPrefix(dsn, "sqlite3://")
	if !strings.Contains(dsn, "?") {
		return dsn + "?" + defaultParams
	}
	return dsn
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dsn := DSN(url)
	s.path = dsn
	if idx := strings.Index(s.path, "?"); idx > 0 {
		s.path = s.path[:idx]
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// A single writer avoids SQLITE_BUSY between the load transaction and pool peers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

func (s *Adapter) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

func (s *Adapter) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (s *Adapter) MaxBindParams() int {
	return maxBindParams
}

func (s *Adapter) Path() string {
	return s.path
}
