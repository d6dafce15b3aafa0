package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okazakilab/trackdash/internal/client"
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new issue",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		body, _ := cmd.Flags().GetString("body")
		author, _ := cmd.Flags().GetString("author")
		assignees, _ := cmd.Flags().GetStringSlice("assignee")
		labels, _ := cmd.Flags().GetStringSlice("label")

		req := &client.CreateIssueRequest{
			Title:     title,
			Body:      body,
			Author:    author,
			Assignees: assignees,
			Labels:    labels,
		}

		issue, err := apiClient.CreateIssue(context.Background(), req)
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
	createCmd.Flags().StringP("body", "b", "", "issue body text")
	createCmd.Flags().String("author", "", "author login")
	createCmd.Flags().StringSliceP("assignee", "a", nil, "assignee login (repeatable)")
	createCmd.Flags().StringSliceP("label", "l", nil, "label name (repeatable)")
}
