package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okazakilab/trackdash/internal/client"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update an issue's title, body, assignees, or labels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Only flags the user actually set are sent, so unset fields
		// keep their server-side values.
		req := &client.UpdateIssueRequest{}
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			req.Title = &v
		}
		if cmd.Flags().Changed("body") {
			v, _ := cmd.Flags().GetString("body")
			req.Body = &v
		}
		if cmd.Flags().Changed("assignee") {
			v, _ := cmd.Flags().GetStringSlice("assignee")
			req.Assignees = &v
		}
		if cmd.Flags().Changed("label") {
			v, _ := cmd.Flags().GetStringSlice("label")
			req.Labels = &v
		}
		if req.Title == nil && req.Body == nil && req.Assignees == nil && req.Labels == nil {
			return fmt.Errorf("nothing to update: set --title, --body, --assignee, or --label")
		}

		issue, err := apiClient.UpdateIssue(context.Background(), args[0], req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(issue)
		} else {
			printIssueTable(issue)
		}
		return nil
	},
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "new title")
	editCmd.Flags().StringP("body", "b", "", "new body text")
	editCmd.Flags().StringSliceP("assignee", "a", nil, "replacement assignee logins (repeatable)")
	editCmd.Flags().StringSliceP("label", "l", nil, "replacement label names (repeatable)")
}
