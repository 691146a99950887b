package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/optimuscode/optimus/internal/apiclient"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Request cancellation of an in-flight job",
	Long: `Cancel sets the job's cancel flag; the engine observes it at the next
phase boundary. Cancelling an already-terminal job is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runCancel,
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}

func runCancel(cmd *cobra.Command, args []string) error {
	jobID := args[0]
	client := apiclient.New(apiURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Cancel(ctx, jobID); err != nil {
		if errors.Is(err, apiclient.ErrJobNotFound) {
			printError("job not found: %s", jobID)
		} else {
			printError("cancel failed: %v", err)
		}
		return err
	}

	printInfo(cmd, "cancellation requested for %s", jobID)
	return nil
}
