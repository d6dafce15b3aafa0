package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/okazakilab/trackdash/internal/client"
)

var (
	serverURL  string
	jsonOutput bool

	apiClient client.DashClient
)

func defaultServer() string {
	if s := os.Getenv("TRACKDASH_SERVER"); s != "" {
		return s
	}
	if url := activeRemoteURL(); url != "" {
		return url
	}
	return "http://localhost:8080"
}

var rootCmd = &cobra.Command{
	Use:   "td",
	Short: "CLI client for the trackdash service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		apiClient = client.NewHTTPClient(serverURL, activeRemoteToken())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if apiClient != nil {
			apiClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "trackdash server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
