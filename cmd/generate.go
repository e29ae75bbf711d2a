package cmd

import (
	"github.com/Lumos-Labs-HQ/shopseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate the dataset and write flat files only",
	Long: `Generate the full dataset and write one flat file per table to the export
directory, together with manifest.yaml and metrics.prom. No database is touched.`,
	PreRunE: bindGenerationFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		report, err := seeder.NewSeeder(cfg, nil).Run(cmd.Context(), seeder.RunOptions{Export: true})
		if err != nil {
			return err
		}

		for _, f := range report.Files {
			color.White("  %s", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerationFlags(generateCmd)
}
