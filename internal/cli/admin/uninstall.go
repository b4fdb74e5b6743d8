package admin

import (
	"context"
	"fmt"

	"github.com/helpbeacon/helpbeacon/internal/repository"
	"github.com/helpbeacon/helpbeacon/internal/service"
	"github.com/spf13/cobra"
)

func UninstallCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove all helpbeacon data",
		Long:  "Remove stored settings and drop all helpbeacon tables. This is irreversible.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to uninstall without --yes")
			}
			return runUninstall()
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm removal of all data")

	return cmd
}

func runUninstall() error {
	ctx := context.Background()

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	settingsRepo := repository.NewSettingsRepository(pool)
	settingsSvc := service.NewSettingsService(settingsRepo)

	// Settings first, so a failed table drop still leaves the managed
	// options cleared.
	if err := settingsSvc.RemoveAll(ctx); err != nil {
		return fmt.Errorf("failed to remove settings: %w", err)
	}

	if err := repository.NewSearchLogRepository(pool).Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop search log table: %w", err)
	}
	if err := repository.NewSessionRepository(pool).Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop sessions table: %w", err)
	}
	if err := repository.NewTenantRepository(pool).Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop tenants table: %w", err)
	}
	if err := settingsRepo.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop settings table: %w", err)
	}

	if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS schema_migrations`); err != nil {
		return fmt.Errorf("failed to drop migrations table: %w", err)
	}

	fmt.Println("All helpbeacon data removed")
	return nil
}
