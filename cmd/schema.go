package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/shopseed/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/shopseed/internal/database/sqlite"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var schemaPrint bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the target tables for the configured provider",
	Long: `Apply the bundled DDL for the configured provider. Every statement uses
CREATE TABLE IF NOT EXISTS, so running it against an existing schema is a no-op.
Use --print to write the DDL to stdout instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if schemaPrint {
			ddl, err := schemaFor(cfg.Database.Provider)
			if err != nil {
				return err
			}
			fmt.Print(ddl)
			return nil
		}

		ctx := cmd.Context()
		adapter, err := openAdapter(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		color.Cyan("🏗️  Applying %s schema...", cfg.Database.Provider)
		if err := adapter.ApplySchema(ctx); err != nil {
			return err
		}
		color.Green("✅ Schema applied")
		return nil
	},
}

func schemaFor(provider string) (string, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgres.Schema(), nil
	case "mysql":
		return mysql.Schema(), nil
	case "sqlite", "sqlite3":
		return sqlite.Schema(), nil
	default:
		return "", fmt.Errorf("unsupported database provider: %s", provider)
	}
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolVar(&schemaPrint, "print", false, "Print the DDL instead of applying it")
}
