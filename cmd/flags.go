package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/config"
	"github.com/Lumos-Labs-HQ/shopseed/internal/database"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// generationFlags maps CLI flags onto configuration keys.
var generationFlags = []struct {
	name  string
	key   string
	usage string
}{
	{"customers", "counts.customers", "number of customers"},
	{"suppliers", "counts.suppliers", "number of suppliers"},
	{"warehouses", "counts.warehouses", "number of warehouses"},
	{"categories", "counts.categories", "number of categories"},
	{"products", "counts.products", "number of products"},
	{"orders", "counts.orders", "number of orders"},
	{"max-items", "counts.max_items_per_order", "maximum items per order"},
	{"max-quantity", "counts.max_quantity", "maximum quantity per order item"},
	{"seed", "seed", "seed for business-rule randomness"},
	{"faker-seed", "faker_seed", "seed for names, places and timestamps"},
	{"out", "export_path", "directory for flat files and run artifacts"},
	{"format", "export_format", "flat file format (csv, json, sqlite)"},
}

func addGenerationFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	for _, f := range generationFlags {
		switch f.key {
		case "seed", "faker_seed":
			flags.Int64(f.name, 0, f.usage)
		case "export_path", "export_format":
			flags.String(f.name, "", f.usage)
		default:
			flags.Int(f.name, 0, f.usage)
		}
	}
}

// bindGenerationFlags runs in PreRunE so only the executing command's flags
// are bound to the shared configuration keys.
func bindGenerationFlags(cmd *cobra.Command, args []string) error {
	for _, f := range generationFlags {
		if err := viper.BindPFlag(f.key, cmd.Flags().Lookup(f.name)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", f.name, err)
		}
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openAdapter(ctx context.Context, cfg *config.Config) (database.DatabaseAdapter, error) {
	adapter, err := database.NewAdapter(cfg.Database.Provider)
	if err != nil {
		return nil, err
	}

	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return adapter, nil
}
