package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/helpbeacon/helpbeacon/internal/service"
	"github.com/spf13/cobra"
)

// SearchboxView mirrors the /searchbox response payload.
type SearchboxView struct {
	Configured bool   `json:"configured"`
	ActionURL  string `json:"action_url"`
	LogToken   string `json:"log_token"`
	ShowNotice bool   `json:"show_notice"`
}

func SearchCmd() *cobra.Command {
	var noLog bool

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the help site",
		Long:  "Resolves the destination URL for a search term, records the search, and prints the URL.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSearch(cmd, args[0], noLog, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&noLog, "no-log", false, "Do not record the search")

	return cmd
}

func runSearch(cmd *cobra.Command, term string, noLog, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/searchbox")
	if err != nil {
		return err
	}

	var view SearchboxView
	if err := json.Unmarshal(resp.Data, &view); err != nil {
		return fmt.Errorf("failed to parse searchbox response: %w", err)
	}

	if !view.Configured {
		return fmt.Errorf("help search is not configured (ask a manager to set the action URL)")
	}

	destination := service.ResolveSearchURL(view.ActionURL, term)

	// Fire-and-forget, same as a page beacon: a failed log call must
	// not block the search.
	if !noLog {
		if err := api.PostForm("/log", url.Values{
			"search":     {term},
			"search_url": {destination},
			"security":   {view.LogToken},
		}); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record search: %v\n", err)
		}
	}

	if outputJSON {
		result := map[string]interface{}{
			"term": term,
			"url":  destination,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Println(destination)
	}

	return nil
}
