package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/helpbeacon/helpbeacon/internal/repository"
	"github.com/helpbeacon/helpbeacon/internal/service"
	"github.com/spf13/cobra"
)

func SettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage help search settings",
		Long:  "Show and update the help search action URL",
	}

	cmd.AddCommand(SettingsShowCmd())
	cmd.AddCommand(SettingsSetURLCmd())
	cmd.AddCommand(SettingsDismissNoticeCmd())

	return cmd
}

func SettingsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE:  runSettingsShow,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	settingsSvc := service.NewSettingsService(repository.NewSettingsRepository(pool))

	actionURL, err := settingsSvc.ActionURL(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	showNotice, err := settingsSvc.ShowNotice(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if outputFormat == "json" {
		data := map[string]interface{}{
			"action_url":  actionURL,
			"show_notice": showNotice,
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		if actionURL == "" {
			fmt.Println("Action URL: (not configured)")
		} else {
			fmt.Printf("Action URL: %s\n", actionURL)
		}
		fmt.Printf("Setup notice: %v\n", showNotice)
	}

	return nil
}

func SettingsSetURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-url <url>",
		Short: "Set the help search action URL",
		Long:  "Set the action URL template. Use the {query} placeholder to control where the search term is inserted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			pool, err := getDBPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			settingsSvc := service.NewSettingsService(repository.NewSettingsRepository(pool))
			if err := settingsSvc.UpdateActionURL(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to update action URL: %w", err)
			}

			fmt.Printf("Action URL set: %s\n", args[0])
			return nil
		},
	}
}

func SettingsDismissNoticeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss-notice",
		Short: "Dismiss the setup notice",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			pool, err := getDBPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			settingsSvc := service.NewSettingsService(repository.NewSettingsRepository(pool))
			if err := settingsSvc.DismissNotice(ctx); err != nil {
				return fmt.Errorf("failed to dismiss notice: %w", err)
			}

			fmt.Println("Setup notice dismissed")
			return nil
		},
	}
}
