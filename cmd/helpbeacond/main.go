package main

import (
	"fmt"
	"os"

	"github.com/helpbeacon/helpbeacon/internal/cli"
	"github.com/helpbeacon/helpbeacon/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "helpbeacond",
		Short: "Helpbeacon daemon and admin CLI",
		Long:  "Helpbeacon daemon for running the API server and managing tenants, sessions, settings and search statistics",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.TenantCmd())
	rootCmd.AddCommand(admin.SessionCmd())
	rootCmd.AddCommand(admin.SettingsCmd())
	rootCmd.AddCommand(admin.StatsCmd())
	rootCmd.AddCommand(admin.ExportCmd())
	rootCmd.AddCommand(admin.UninstallCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
