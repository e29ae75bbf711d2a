package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/types"
	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	SnapshotFile    = "snapshot.db"
)

// PerformExport writes every table under exportPath in the given format and
// returns the paths it wrote. Existing files of the same name are replaced.
func PerformExport(ctx context.Context, tables []types.Table, exportPath, format string) ([]string, error) {
	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	switch format {
	case "csv", "":
		return exportToCSV(tables, exportPath)
	case "json":
		return exportToJSON(tables, exportPath)
	case "sqlite":
		path, err := exportToSQLite(ctx, tables, exportPath)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

func exportToCSV(tables []types.Table, exportPath string) ([]string, error) {
	paths := make([]string, 0, len(tables))
	for _, table := range tables {
		path := filepath.Join(exportPath, table.Name+".csv")
		if err := writeCSV(path, table); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSV(path string, table types.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file for %s: %w", table.Name, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header for %s: %w", table.Name, err)
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, value := range row {
			record[i] = FormatValue(value)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", table.Name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV for %s: %w", table.Name, err)
	}
	return file.Close()
}

func exportToJSON(tables []types.Table, exportPath string) ([]string, error) {
	paths := make([]string, 0, len(tables))
	for _, table := range tables {
		records := make([]jsonRecord, 0, len(table.Rows))
		for _, row := range table.Rows {
			records = append(records, jsonRecord{columns: table.Columns, values: row})
		}

		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return paths, fmt.Errorf("failed to marshal %s: %w", table.Name, err)
		}

		path := filepath.Join(exportPath, table.Name+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("failed to write file: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func exportToSQLite(ctx context.Context, tables []types.Table, exportPath string) (string, error) {
	filePath := filepath.Join(exportPath, SnapshotFile)
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to replace %s: %w", filePath, err)
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create SQLite database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range tables {
		createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quote(table.Name), buildColumnDefs(table.Columns))
		if _, err := tx.ExecContext(ctx, createSQL); err != nil {
			return "", fmt.Errorf("failed to create table %s: %w", table.Name, err)
		}
		if table.Len() == 0 {
			continue
		}

		insertSQL, _, err := squirrel.Insert(quote(table.Name)).
			Columns(quoteAll(table.Columns)...).
			Values(make([]interface{}, len(table.Columns))...).
			ToSql()
		if err != nil {
			return "", err
		}
		stmt, err := tx.PrepareContext(ctx, insertSQL)
		if err != nil {
			return "", fmt.Errorf("failed to prepare insert for %s: %w", table.Name, err)
		}

		values := make([]interface{}, len(table.Columns))
		for _, row := range table.Rows {
			for i, value := range row {
				if value == nil {
					values[i] = nil
				} else {
					values[i] = FormatValue(value)
				}
			}
			if _, err := stmt.ExecContext(ctx, values...); err != nil {
				stmt.Close()
				return "", fmt.Errorf("failed to insert row into %s: %w", table.Name, err)
			}
		}
		stmt.Close()
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return filePath, nil
}

// FormatValue renders a cell the way every flat-file format prints it.
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.UTC().Format(TimestampLayout)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case decimal.Decimal:
		return v.StringFixed(2)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// jsonRecord marshals one row as an object whose keys follow the table's
// column order.
type jsonRecord struct {
	columns []string
	values  []interface{}
}

func (r jsonRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(jsonValue(r.values[i]))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil, int, float64:
		return v
	default:
		return FormatValue(v)
	}
}

func buildColumnDefs(columns []string) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quote(col) + " TEXT"
	}
	return strings.Join(defs, ", ")
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteAll(names []string) []string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quote(name)
	}
	return quoted
}
