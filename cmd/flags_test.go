package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationFlagsOverrideConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()

	cmd := &cobra.Command{Use: "generate"}
	addGenerationFlags(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{
		"--orders", "50", "--max-items", "3", "--seed", "7", "--format", "json", "--out", dir,
	}))
	require.NoError(t, bindGenerationFlags(cmd, nil))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Counts.Orders)
	assert.Equal(t, 3, cfg.Counts.MaxItemsPerOrder)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "json", cfg.ExportFormat)
	assert.Equal(t, dir, cfg.ExportPath)

	// Untouched flags fall through to the defaults.
	assert.Equal(t, 5000, cfg.Counts.Customers)
	assert.Equal(t, int64(1234), cfg.FakerSeed)
}

func TestLoadConfigRejectsZeroFlag(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "seed"}
	addGenerationFlags(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--customers", "0"}))
	require.NoError(t, bindGenerationFlags(cmd, nil))

	_, err := loadConfig()
	assert.ErrorContains(t, err, "counts.customers must be positive")
}

func TestSchemaFor(t *testing.T) {
	for _, provider := range []string{"mysql", "postgres", "postgresql", "sqlite", "sqlite3"} {
		ddl, err := schemaFor(provider)
		require.NoError(t, err, provider)
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS order_items", provider)
	}

	_, err := schemaFor("oracle")
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"seed", "generate", "schema", "status"} {
		assert.True(t, names[want], want)
	}
}
