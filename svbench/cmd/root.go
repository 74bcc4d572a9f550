// Package cmd provides the command-line interface for svbench.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "svbench",
	Short: "Svbench measures the cost of fixed-capacity vector operations " +
		"against a preallocated growable slice.",
	Long: `Svbench measures the wall-clock cost of insertion, access, and ` +
		`iteration on the staticvec fixed-capacity vector versus a ` +
		`general-purpose growable slice under equal preallocation. Results ` +
		`are recorded to a SQLite database and can be served for inspection.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is fine; flags and defaults still apply.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
