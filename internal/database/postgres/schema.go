package postgres

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

func (p *Adapter) ApplySchema(ctx context.Context) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := common.ExecScript(ctx, tx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return tx.Commit()
}
