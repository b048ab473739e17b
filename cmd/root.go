package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heliowatt/opsportal/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "opsportal",
	Short: "HelioWatt internal operations portal",
	Long: `The HelioWatt operations portal serves the internal web portal:
generation dashboards, the contact form, and the admin area behind
directory-backed sign-in.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("db-url", "", "Database connection URL (env: DATABASE_URL)")
	rootCmd.PersistentFlags().String("server-addr", "", "Server bind address (env: SERVER_ADDR)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (env: DEBUG)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
