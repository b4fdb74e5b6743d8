package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/helpbeacon/helpbeacon/internal/pagination"
	"github.com/helpbeacon/helpbeacon/internal/repository"
	"github.com/helpbeacon/helpbeacon/internal/service"
	"github.com/spf13/cobra"
)

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
		Long:  "List logged help searches with counts and timestamps",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("output")
			return runStats(filter, orderBy, order, page, perPage, outputFormat)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	cmd.Flags().StringVarP(&filter, "search", "s", "", "Filter by search term substring")
	cmd.Flags().StringVar(&orderBy, "orderby", "", "Sort column (search_term, search_count, first_searched, last_searched, tenant_address)")
	cmd.Flags().StringVar(&order, "order", "", "Sort direction (asc or desc)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", pagination.DefaultPerPage, "Rows per page")

	return cmd
}

func runStats(filter, orderBy, order string, page, perPage int, outputFormat string) error {
	ctx := context.Background()

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	statsSvc := service.NewStatsService(repository.NewSearchLogRepository(pool))

	result, err := statsSvc.List(ctx, service.StatsQuery{
		Filter:  filter,
		OrderBy: service.ParseSortColumn(orderBy),
		Order:   service.ParseSortOrder(order),
		Page:    pagination.NewPage(page, perPage),
	})
	if err != nil {
		return fmt.Errorf("failed to list statistics: %w", err)
	}

	if outputFormat == "json" {
		jsonBytes, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(jsonBytes))
		return nil
	}

	if len(result.Items) == 0 {
		fmt.Println("No searches logged")
		return nil
	}

	fmt.Printf("Search statistics (page %d of %d, %d total):\n", result.Page, result.TotalPages, result.Total)
	for _, row := range result.Items {
		fmt.Printf("  %-30s  %5d  first: %s  last: %s  tenant: %s\n",
			row.SearchTerm,
			row.SearchCount,
			row.FirstSearched.Format("2006-01-02 15:04"),
			row.LastSearched.Format("2006-01-02 15:04"),
			row.TenantDisplay(),
		)
	}

	return nil
}
