package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/optimuscode/optimus/internal/apiclient"
)

var statusCmd = &cobra.Command{
	Use:     "status <job-id>",
	Aliases: []string{"get"},
	Short:   "Show a job's current status or result",
	Example: `  optimusctl status <job-id>
  optimusctl status <job-id> --wait`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

var (
	statusWait     bool
	statusInterval time.Duration
)

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&statusWait, "wait", "w", false, "poll until the job reaches a terminal state")
	statusCmd.Flags().DurationVar(&statusInterval, "interval", 500*time.Millisecond, "poll interval when --wait is set")
}

func runStatus(cmd *cobra.Command, args []string) error {
	jobID := args[0]
	client := apiclient.New(apiURL)

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		status, err := client.Get(ctx, jobID)
		cancel()
		if err != nil {
			if errors.Is(err, apiclient.ErrJobNotFound) {
				printError("job not found: %s", jobID)
			} else {
				printError("status check failed: %v", err)
			}
			return err
		}

		if status.Pending {
			printVerbose(cmd, "job %s still pending", jobID)
			if !statusWait {
				printInfo(cmd, "pending")
				return nil
			}
			time.Sleep(statusInterval)
			continue
		}

		printResult(cmd, status.Result)
		return nil
	}
}

func printResult(cmd *cobra.Command, r *apiclient.ResultResponse) {
	printInfo(cmd, "job %s: %s (score %d/%d)", r.JobID, r.OverallStatus, r.Score, r.MaxScore)
	for _, v := range r.Results {
		exitCode := "killed"
		if v.ExitCode != nil {
			exitCode = fmt.Sprintf("%d", *v.ExitCode)
		}
		printInfo(cmd, "  %-20s %-22s %6dms exit=%s", v.TestID, v.Status, v.ExecutionTimeMS, exitCode)
	}
}
