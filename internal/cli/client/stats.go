package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// StatsRow mirrors one row of the /stats response payload.
type StatsRow struct {
	ID            int64     `json:"id"`
	TenantID      int64     `json:"tenant_id"`
	TenantAddress string    `json:"tenant_address"`
	SearchTerm    string    `json:"search_term"`
	SearchURL     string    `json:"search_url"`
	SearchCount   int       `json:"search_count"`
	FirstSearched time.Time `json:"first_searched"`
	LastSearched  time.Time `json:"last_searched"`
}

// StatsPage mirrors the paginated /stats response payload.
type StatsPage struct {
	Items      []StatsRow `json:"items"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
	Total      int64      `json:"total"`
	TotalPages int        `json:"total_pages"`
}

func StatsCmd() *cobra.Command {
	var (
		filter  string
		orderBy string
		order   string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "List search statistics",
		Long:  "List logged help searches with counts and timestamps (manager sessions only).",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runClientStats(cmd, filter, orderBy, order, page, perPage, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&filter, "search", "s", "", "Filter by search term substring")
	cmd.Flags().StringVar(&orderBy, "orderby", "", "Sort column (search_term, search_count, first_searched, last_searched, tenant_address)")
	cmd.Flags().StringVar(&order, "order", "", "Sort direction (asc or desc)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "Rows per page")

	return cmd
}

func runClientStats(cmd *cobra.Command, filter, orderBy, order string, page, perPage int, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	query := url.Values{}
	if filter != "" {
		query.Set("s", filter)
	}
	if orderBy != "" {
		query.Set("orderby", orderBy)
	}
	if order != "" {
		query.Set("order", order)
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	resp, err := api.Get("/stats?" + query.Encode())
	if err != nil {
		return err
	}

	var result StatsPage
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse stats response: %w", err)
	}

	if outputJSON {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(result.Items) == 0 {
		fmt.Println("No searches logged")
		return nil
	}

	fmt.Printf("Search statistics (page %d of %d, %d total):\n", result.Page, result.TotalPages, result.Total)
	for _, row := range result.Items {
		tenant := row.TenantAddress
		if tenant == "" {
			tenant = strconv.FormatInt(row.TenantID, 10)
		}
		fmt.Printf("  %-30s  %5d  first: %s  last: %s  tenant: %s\n",
			row.SearchTerm,
			row.SearchCount,
			row.FirstSearched.Format("2006-01-02 15:04"),
			row.LastSearched.Format("2006-01-02 15:04"),
			tenant,
		)
	}

	return nil
}
