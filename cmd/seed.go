package cmd

import (
	"github.com/Lumos-Labs-HQ/shopseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	seedNoExport bool
	seedVerify   bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate the dataset, export it and load it into the database",
	Long: `Generate the full dataset, write flat files to the export directory and
replace the contents of the ten target tables in one transaction.

Tables are truncated in reverse dependency order and inserted in forward
order. Any failure rolls the whole load back and leaves existing data as it was.`,
	PreRunE: bindGenerationFlags,
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

		s := seeder.NewSeeder(cfg, adapter)
		report, err := s.Run(ctx, seeder.RunOptions{
			Export: !seedNoExport,
			Load:   true,
			Verify: seedVerify,
		})
		if err != nil {
			return err
		}

		if report.ManifestPath != "" {
			color.Cyan("📄 Manifest: %s", report.ManifestPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	addGenerationFlags(seedCmd)
	seedCmd.Flags().BoolVar(&seedNoExport, "no-export", false, "Skip writing flat files")
	seedCmd.Flags().BoolVar(&seedVerify, "verify", false, "Compare table row counts with the generated counts after commit")
}
