package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/optimuscode/optimus/internal/apiclient"
	"github.com/optimuscode/optimus/pkg/models"
)

var ErrNoTestCases = errors.New("no test cases given")

var submitCmd = &cobra.Command{
	Use:   "submit <source-file>",
	Short: "Submit a job for execution",
	Long: `Submit reads a source file and a JSON test case file, then queues a
job on optimus-api. Test cases are a JSON array of
{"id":"...","input":"...","expected_output":"...","weight":1}.`,
	Example: `  optimusctl submit solve.py --lang python --tests tests.json
  optimusctl submit solve.cpp --lang cpp --tests tests.json --timeout-ms 10000`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

var (
	submitLanguage  string
	submitTestsFile string
	submitTimeoutMS int
	submitMemoryMB  int
	submitCPUCores  float64
)

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&submitLanguage, "lang", "", "language tag (e.g. python, cpp, rust)")
	submitCmd.Flags().StringVar(&submitTestsFile, "tests", "", "path to a JSON test case file")
	submitCmd.Flags().IntVar(&submitTimeoutMS, "timeout-ms", 5000, "per-test timeout in milliseconds")
	submitCmd.Flags().IntVar(&submitMemoryMB, "memory-mb", 0, "per-test memory cap (0 = language default)")
	submitCmd.Flags().Float64Var(&submitCPUCores, "cpu-cores", 0, "per-test CPU cap (0 = language default)")
	_ = submitCmd.MarkFlagRequired("lang")
	_ = submitCmd.MarkFlagRequired("tests")
}

// testCaseFile is the on-disk JSON shape accepted by --tests.
type testCaseFile struct {
	ID             string `json:"id"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	Weight         int    `json:"weight"`
}

func runSubmit(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		printError("failed to read source file: %v", err)
		return err
	}

	raw, err := os.ReadFile(submitTestsFile)
	if err != nil {
		printError("failed to read test case file: %v", err)
		return err
	}
	var entries []testCaseFile
	if err := json.Unmarshal(raw, &entries); err != nil {
		printError("failed to parse test case file: %v", err)
		return err
	}
	if len(entries) == 0 {
		printError("%v", ErrNoTestCases)
		return ErrNoTestCases
	}

	cases := make([]apiclient.SubmitTestCase, len(entries))
	for i, e := range entries {
		cases[i] = apiclient.SubmitTestCase{
			ID:             e.ID,
			Input:          []byte(e.Input),
			ExpectedOutput: []byte(e.ExpectedOutput),
			Weight:         e.Weight,
		}
	}

	req := apiclient.SubmitRequest{
		Language:  models.Language(submitLanguage),
		Source:    source,
		TestCases: cases,
		TimeoutMS: submitTimeoutMS,
		MemoryMB:  submitMemoryMB,
		CPUCores:  submitCPUCores,
	}

	printVerbose(cmd, "Submitting %d test case(s) for language %s", len(cases), submitLanguage)

	client := apiclient.New(apiURL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := client.Submit(ctx, req)
	if err != nil {
		printError("submit failed: %v", err)
		return err
	}

	printInfo(cmd, "Job queued: %s", resp.JobID)
	fmt.Println(resp.JobID)
	return nil
}
