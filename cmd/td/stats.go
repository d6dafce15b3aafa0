package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show issue counts for the dashboard stat cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := apiClient.Stats(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(stats)
			return nil
		}

		fmt.Printf("Total:  %d\n", stats.Total)
		fmt.Printf("Open:   %d\n", stats.Open)
		fmt.Printf("Closed: %d\n", stats.Closed)

		if len(stats.Labels) > 0 {
			names := make([]string, 0, len(stats.Labels))
			for name := range stats.Labels {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tOPEN ISSUES")
			for _, name := range names {
				fmt.Fprintf(w, "%s\t%d\n", name, stats.Labels[name])
			}
			w.Flush()
		}
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := apiClient.Health(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(status)
		return nil
	},
}
