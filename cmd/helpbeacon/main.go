package main

import (
	"fmt"
	"os"

	"github.com/helpbeacon/helpbeacon/internal/cli"
	"github.com/helpbeacon/helpbeacon/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "helpbeacon",
		Short: "Helpbeacon CLI - Help site search with usage tracking",
		Long: `Helpbeacon CLI searches the configured help site and records what was searched.

Environment variables:
  HELPBEACON_SESSION_TOKEN   Session token for authentication (required)
  HELPBEACON_API_URL         API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("token", "", "Session token for authentication (overrides env and config)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.InitCmd())
	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.StatsCmd())
	rootCmd.AddCommand(client.SettingsCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
