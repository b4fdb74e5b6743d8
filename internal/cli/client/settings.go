package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Settings mirrors the /settings response payload.
type Settings struct {
	ActionURL  string `json:"action_url"`
	ShowNotice bool   `json:"show_notice"`
}

func SettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage help search settings",
		Long:  "Show and update the help search action URL (manager sessions only).",
	}

	cmd.AddCommand(settingsShowCmd())
	cmd.AddCommand(settingsSetURLCmd())

	return cmd
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")

			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			resp, err := api.Get("/settings/")
			if err != nil {
				return err
			}

			var settings Settings
			if err := json.Unmarshal(resp.Data, &settings); err != nil {
				return fmt.Errorf("failed to parse settings response: %w", err)
			}

			if outputJSON {
				data, _ := json.MarshalIndent(settings, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			if settings.ActionURL == "" {
				fmt.Println("Action URL: (not configured)")
			} else {
				fmt.Printf("Action URL: %s\n", settings.ActionURL)
			}
			fmt.Printf("Setup notice: %v\n", settings.ShowNotice)
			return nil
		},
	}
}

func settingsSetURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-url <url>",
		Short: "Set the help search action URL",
		Long:  "Set the action URL template. Use the {query} placeholder to control where the search term is inserted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			if _, err := api.Put("/settings/", map[string]string{"action_url": args[0]}); err != nil {
				return err
			}

			fmt.Printf("Action URL set: %s\n", args[0])
			return nil
		},
	}
}
