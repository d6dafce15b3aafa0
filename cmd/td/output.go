package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/okazakilab/trackdash/internal/model"
	"github.com/okazakilab/trackdash/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printIssueTable(issue *model.Issue) {
	fmt.Printf("ID:         %s\n", issue.ID)
	fmt.Printf("Number:     #%d\n", issue.Number)
	fmt.Printf("Title:      %s\n", ui.RenderMarks(issue.Title))
	fmt.Printf("State:      %s\n", issue.State)
	fmt.Printf("Author:     %s\n", issue.User.Login)
	if len(issue.Assignees) > 0 {
		logins := make([]string, len(issue.Assignees))
		for i, a := range issue.Assignees {
			logins[i] = a.Login
		}
		fmt.Printf("Assignees:  %s\n", strings.Join(logins, ", "))
	}
	if len(issue.Labels) > 0 {
		fmt.Printf("Labels:     %s\n", strings.Join(issue.LabelNames(), ", "))
	}
	fmt.Printf("Created At: %s\n", issue.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated At: %s\n", issue.UpdatedAt.Format("2006-01-02 15:04:05"))
	if issue.ClosedAt != nil {
		fmt.Printf("Closed At:  %s\n", issue.ClosedAt.Format("2006-01-02 15:04:05"))
	}
	if issue.Body != "" {
		fmt.Printf("\n%s\n", ui.RenderMarks(issue.Body))
	}
}

func printIssueListTable(issues []*model.Issue, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tSTATE\tTITLE\tAUTHOR\tLABELS")
	for _, issue := range issues {
		title := ui.RenderMarks(issue.Title)
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t#%d\t%s\t%s\t%s\t%s\n",
			issue.ID,
			issue.Number,
			issue.State,
			title,
			issue.User.Login,
			strings.Join(issue.LabelNames(), ","),
		)
	}
	w.Flush()
	fmt.Printf("\n%d issues (%d total)\n", len(issues), total)
}

func printSearchResultTable(result *model.SearchResult) {
	printIssueListTable(result.Issues, result.TotalCount)
	fmt.Printf("%d matching, %.2fms\n", result.MatchingCount, result.SearchTimeMs)
}
