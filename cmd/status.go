package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/manifest"
	"github.com/Lumos-Labs-HQ/shopseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts of the target tables",
	Long: `Show the current row count of every target table in insertion order. When
the export directory holds a manifest from an earlier run, its generated counts
are shown alongside.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		adapter, err := openAdapter(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		counts, err := seeder.NewSeeder(cfg, adapter).Status(ctx)
		if err != nil {
			return err
		}

		last, manifestErr := manifest.Read(cfg.ExportPath)
		hasManifest := manifestErr == nil

		color.Cyan("📊 %s database", cfg.Database.Provider)
		if hasManifest {
			color.White("   last run %s at %s", last.RunID, last.GeneratedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Println()

		for _, c := range counts {
			line := fmt.Sprintf("  %-16s %10d", c.Name, c.Rows)
			if !hasManifest {
				fmt.Println(line)
				continue
			}
			want, ok := last.Rows(c.Name)
			switch {
			case !ok:
				fmt.Println(line)
			case want == c.Rows:
				color.Green("%s  ✓", line)
			default:
				color.Yellow("%s  (generated %d)", line, want)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
