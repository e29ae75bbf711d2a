package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "shopseed",
	Short: "Generate a consistent e-commerce dataset and bulk-load it",
	Long: `
shopseed synthesizes a self-consistent e-commerce dataset (customers,
suppliers, warehouses, categories, exchange rates, products, orders,
order items, shipments and returns), writes flat-file snapshots and
replaces the contents of a relational store in one transaction.

Database Support:
- MySQL (default)
- PostgreSQL
- SQLite`,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("shopseed version %s\n", Version)
			return nil
		}
		color.New(color.FgGreen, color.Bold).Println("🛒 shopseed")
		fmt.Println()
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./shopseed.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("shopseed.config")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			color.Yellow("⚠️  Could not read config file: %v", err)
		}
	}
}
