// Package cmd implements the command-line interface for the haberhub
// scraper.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/haberhub/scraper/cmd/mappings"
	"github.com/haberhub/scraper/cmd/scrape"
	"github.com/haberhub/scraper/cmd/serve"
	"github.com/haberhub/scraper/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// rootCmd represents the root command for the scraper CLI.
	rootCmd = &cobra.Command{
		Use:   "scraper",
		Short: "News scraping and ingestion engine",
		Long:  `Scrapes configured news publishers, normalizes articles, and merges them into the shared content store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are visible to viper.
	_ = godotenv.Load()

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scraper version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(serve.Command())
	rootCmd.AddCommand(scrape.Command())
	rootCmd.AddCommand(mappings.Command())
}

// initConfig sets defaults and reads the optional config file.
func initConfig() error {
	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	config.SetDefaults(v)

	// Config file is optional; defaults and environment variables cover
	// everything.
	if err := v.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config file not found: %v (using defaults and environment variables)\n", err)
	}

	return nil
}
