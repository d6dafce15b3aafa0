package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okazakilab/trackdash/internal/model"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search issues by text query with filters and sorting",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		state, _ := cmd.Flags().GetString("state")
		labels, _ := cmd.Flags().GetStringSlice("label")
		author, _ := cmd.Flags().GetString("author")
		assignee, _ := cmd.Flags().GetString("assignee")
		since, _ := cmd.Flags().GetString("since")
		until, _ := cmd.Flags().GetString("until")
		sortBy, _ := cmd.Flags().GetString("sort")
		order, _ := cmd.Flags().GetString("order")

		req := &model.SearchRequest{
			Query: query,
			Filters: model.SearchFilters{
				State:    model.State(state),
				Labels:   labels,
				Author:   author,
				Assignee: assignee,
			},
			SortBy:    model.SortField(sortBy),
			SortOrder: model.SortOrder(order),
		}

		if since != "" || until != "" {
			dr := &model.DateRange{}
			if since != "" {
				t, err := time.Parse("2006-01-02", since)
				if err != nil {
					return fmt.Errorf("invalid --since date: %w", err)
				}
				dr.Start = t
			}
			if until != "" {
				t, err := time.Parse("2006-01-02", until)
				if err != nil {
					return fmt.Errorf("invalid --until date: %w", err)
				}
				// Make the bound inclusive of the whole day.
				dr.End = t.Add(24*time.Hour - time.Nanosecond)
			}
			req.Filters.DateRange = dr
		}

		result, err := apiClient.Search(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(result)
		} else {
			printSearchResultTable(result)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringP("state", "s", "", "filter by state (open, closed, all)")
	searchCmd.Flags().StringSliceP("label", "l", nil, "filter by label (repeatable, all must match)")
	searchCmd.Flags().String("author", "", "filter by author login")
	searchCmd.Flags().StringP("assignee", "a", "", "filter by assignee login")
	searchCmd.Flags().String("since", "", "only issues created on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().String("until", "", "only issues created on or before this date (YYYY-MM-DD)")
	searchCmd.Flags().String("sort", "", "sort field (created, updated, priority, number)")
	searchCmd.Flags().String("order", "asc", "sort order (asc, desc)")
}
