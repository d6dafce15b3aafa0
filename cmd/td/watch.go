package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okazakilab/trackdash/internal/events"
)

var watchCmd = &cobra.Command{
	Use:   "watch [topic]",
	Short: "Stream activity events from NATS",
	Long: `Stream activity events from the server's NATS bus.
The topic defaults to "trackdash.>" (all events) and supports NATS wildcards.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats-url")
		if natsURL == "" {
			natsURL = os.Getenv("TRACKDASH_NATS_URL")
		}
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}
		if natsURL == "" {
			return fmt.Errorf("no NATS URL: set --nats-url, TRACKDASH_NATS_URL, or a remote with nats_url")
		}

		topic := "trackdash.>"
		if len(args) == 1 {
			topic = args[0]
		}

		sub, err := events.NewNATSSubscriber(natsURL)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return err
		}
		defer cancel()

		fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", topic)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case env, ok := <-ch:
				if !ok {
					return nil
				}
				fmt.Printf("%s %s\n", env.Topic, env.Payload)
			case <-sigCh:
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().String("nats-url", "", "NATS server URL")
}
