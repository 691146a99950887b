// Package commands implements optimusctl, a Cobra CLI over optimus-api's
// HTTP front door. Ported from the teacher's cmd/cli/commands/root.go
// (persistent flags, printInfo/printVerbose/printError helpers, version
// template) with the compiler-specific subcommands replaced by
// submit/status/cancel/queues/environments.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "optimusctl",
	Short: "Submit and track jobs on an optimus execution engine",
	Long: `optimusctl talks to an optimus-api front door over HTTP: submit a
program plus test cases, poll its per-test verdicts, cancel an in-flight job,
and inspect queue depth per language.`,
	Version: version,
	Example: `  # Submit a job
  optimusctl submit solve.py --lang python --tests tests.json

  # Poll a job until it finishes
  optimusctl status <job-id> --wait

  # Cancel a job
  optimusctl cancel <job-id>

  # Inspect queue depth
  optimusctl queues python`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("optimusctl version %s (commit: %s, built: %s)\n", version, commit, buildDate))

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultAPIURL(), "optimus-api base URL")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet mode (errors only)")
}

func defaultAPIURL() string {
	if v := os.Getenv("OPTIMUS_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

func isQuiet(cmd *cobra.Command) bool {
	quiet, _ := cmd.Flags().GetBool("quiet")
	return quiet
}

func printInfo(cmd *cobra.Command, format string, args ...interface{}) {
	if !isQuiet(cmd) {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

func printVerbose(cmd *cobra.Command, format string, args ...interface{}) {
	if isVerbose(cmd) {
		fmt.Fprintf(os.Stdout, "[VERBOSE] "+format+"\n", args...)
	}
}

func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
