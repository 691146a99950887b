package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/optimuscode/optimus/internal/apiclient"
	"github.com/optimuscode/optimus/pkg/models"
)

var queuesCmd = &cobra.Command{
	Use:   "queues <language>",
	Short: "Show pending queue depth for a language",
	Long: `Queues exposes the same signal the autoscaler polls
(spec.md §4.4): LLEN of queue:<language>.`,
	Args: cobra.ExactArgs(1),
	RunE: runQueues,
}

func init() {
	rootCmd.AddCommand(queuesCmd)
}

func runQueues(cmd *cobra.Command, args []string) error {
	client := apiclient.New(apiURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	length, err := client.QueueLength(ctx, models.Language(args[0]))
	if err != nil {
		printError("queue length check failed: %v", err)
		return err
	}

	printInfo(cmd, "%s: %d pending", length.Language, length.Length)
	return nil
}
