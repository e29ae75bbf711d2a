package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Version      string   `json:"version" mapstructure:"version"`
	ExportPath   string   `json:"export_path" mapstructure:"export_path"`
	ExportFormat string   `json:"export_format" mapstructure:"export_format"`
	Metrics      bool     `json:"metrics" mapstructure:"metrics"`
	Seed         int64    `json:"seed" mapstructure:"seed"`
	FakerSeed    int64    `json:"faker_seed" mapstructure:"faker_seed"`
	Database     Database `json:"database" mapstructure:"database"`
	Counts       Counts   `json:"counts" mapstructure:"counts"`
	Batch        Batch    `json:"batch" mapstructure:"batch"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Counts holds the generated row counts per entity.
type Counts struct {
	Customers        int `json:"customers" mapstructure:"customers"`
	Suppliers        int `json:"suppliers" mapstructure:"suppliers"`
	Warehouses       int `json:"warehouses" mapstructure:"warehouses"`
	Categories       int `json:"categories" mapstructure:"categories"`
	Products         int `json:"products" mapstructure:"products"`
	Orders           int `json:"orders" mapstructure:"orders"`
	MaxItemsPerOrder int `json:"max_items_per_order" mapstructure:"max_items_per_order"`
	MaxQuantity      int `json:"max_quantity" mapstructure:"max_quantity"`
}

// Batch holds per-table insert batch sizes. Tables without an entry are
// inserted as a single batch.
type Batch struct {
	Customers  int `json:"customers" mapstructure:"customers"`
	Products   int `json:"products" mapstructure:"products"`
	Orders     int `json:"orders" mapstructure:"orders"`
	OrderItems int `json:"order_items" mapstructure:"order_items"`
}

var SupportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}

var SupportedFormats = []string{"csv", "json", "sqlite"}

var defaults = map[string]interface{}{
	"version":                    "1",
	"export_path":                "data",
	"export_format":              "csv",
	"metrics":                    true,
	"seed":                       int64(42),
	"faker_seed":                 int64(1234),
	"database.provider":          "mysql",
	"database.url_env":           "DATABASE_URL",
	"counts.customers":           5000,
	"counts.suppliers":           50,
	"counts.warehouses":          8,
	"counts.categories":          25,
	"counts.products":            800,
	"counts.orders":              70000,
	"counts.max_items_per_order": 5,
	"counts.max_quantity":        4,
	"batch.customers":            1000,
	"batch.products":             1000,
	"batch.orders":               1000,
	"batch.order_items":          2000,
}

// SetDefaults registers every known key on v. Registering the keys is also
// what lets AutomaticEnv resolve SHOPSEED_* overrides during Unmarshal.
func SetDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix("SHOPSEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Database.Provider = strings.ToLower(strings.TrimSpace(cfg.Database.Provider))
	cfg.ExportFormat = strings.ToLower(strings.TrimSpace(cfg.ExportFormat))

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) EnsureDirectories() error {
	if c.ExportPath == "" || c.ExportPath == "." {
		return nil
	}
	if err := os.MkdirAll(c.ExportPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.ExportPath, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if !contains(SupportedProviders, c.Database.Provider) {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, SupportedProviders)
	}

	if !contains(SupportedFormats, c.ExportFormat) {
		return fmt.Errorf("unsupported export format: %s. Supported formats: %v", c.ExportFormat, SupportedFormats)
	}

	if c.ExportPath == "" {
		return fmt.Errorf("export_path cannot be empty")
	}

	if err := c.Counts.Validate(); err != nil {
		return err
	}

	batches := map[string]int{
		"batch.customers":   c.Batch.Customers,
		"batch.products":    c.Batch.Products,
		"batch.orders":      c.Batch.Orders,
		"batch.order_items": c.Batch.OrderItems,
	}
	for key, size := range batches {
		if size <= 0 {
			return fmt.Errorf("%s must be positive, got %d", key, size)
		}
	}

	return nil
}

// Validate rejects non-positive sizes before any generation starts.
func (c Counts) Validate() error {
	checks := []struct {
		key   string
		value int
	}{
		{"customers", c.Customers},
		{"suppliers", c.Suppliers},
		{"warehouses", c.Warehouses},
		{"categories", c.Categories},
		{"products", c.Products},
		{"orders", c.Orders},
		{"max_items_per_order", c.MaxItemsPerOrder},
		{"max_quantity", c.MaxQuantity},
	}
	for _, check := range checks {
		if check.value <= 0 {
			return fmt.Errorf("counts.%s must be positive, got %d", check.key, check.value)
		}
	}
	return nil
}

// BatchSizes maps table names to their insert batch size.
func (c *Config) BatchSizes() map[string]int {
	return map[string]int{
		"customers":   c.Batch.Customers,
		"products":    c.Batch.Products,
		"orders":      c.Batch.Orders,
		"order_items": c.Batch.OrderItems,
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
