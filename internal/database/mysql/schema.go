package mysql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
)

//go:embed schema.sql
var schemaSQL string

func Schema() string {
	return schemaSQL
}

// ApplySchema runs the DDL outside a transaction; MySQL commits DDL implicitly.
func (m *Adapter) ApplySchema(ctx context.Context) error {
	if err := common.ExecScript(ctx, m.db, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
