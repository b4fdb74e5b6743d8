package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func InitCmd() *cobra.Command {
	var token string
	var apiURL string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Store session credentials",
		Long:  "Verifies the session token against the server and stores it in the user config directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runInit(token, apiURL, outputJSON)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Session token")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "API base URL (default: http://localhost:8080)")

	return cmd
}

func runInit(token, apiURL string, outputJSON bool) error {
	_ = godotenv.Load()
	if token == "" {
		token = os.Getenv(envToken)
	}
	if token == "" {
		fmt.Print("Enter session token: ")
		reader := bufio.NewReader(os.Stdin)
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read session token: %w", err)
		}
		token = strings.TrimSpace(input)
		if token == "" {
			return fmt.Errorf("session token is required")
		}
	}

	if !IsValidSessionToken(token) {
		return fmt.Errorf("invalid token format (expected 'hbs_<64 hex chars>')")
	}

	if apiURL == "" {
		apiURL = os.Getenv(envAPIURL)
	}
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	api, err := NewAPIClientWithConfig(token, apiURL)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	if _, err := api.Get("/searchbox"); err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}

	if err := SaveGlobalConfig(&GlobalConfig{Token: token, APIURL: apiURL}); err != nil {
		return err
	}

	configPath, _ := GetConfigPath()
	if outputJSON {
		result := map[string]interface{}{
			"success": true,
			"api_url": apiURL,
			"config":  configPath,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Printf("Credentials verified and saved to %s\n", configPath)
	}

	return nil
}
