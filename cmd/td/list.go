package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okazakilab/trackdash/internal/client"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _ := cmd.Flags().GetStringSlice("state")
		author, _ := cmd.Flags().GetString("author")
		assignee, _ := cmd.Flags().GetString("assignee")
		labels, _ := cmd.Flags().GetStringSlice("label")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		req := &client.ListIssuesRequest{
			State:    state,
			Author:   author,
			Assignee: assignee,
			Labels:   labels,
			Limit:    limit,
			Offset:   offset,
		}

		resp, err := apiClient.ListIssues(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp)
		} else {
			printIssueListTable(resp.Issues, resp.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringSliceP("state", "s", nil, "filter by state (repeatable)")
	listCmd.Flags().String("author", "", "filter by author login")
	listCmd.Flags().StringP("assignee", "a", "", "filter by assignee login")
	listCmd.Flags().StringSliceP("label", "l", nil, "filter by label (repeatable, all must match)")
	listCmd.Flags().Int("limit", 20, "maximum number of results")
	listCmd.Flags().Int("offset", 0, "number of results to skip")
}
