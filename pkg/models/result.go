package models

// DisplayOutputCap bounds how much of a TestVerdict's Stdout/Stderr the HTTP
// layer renders. Verdict classification always runs against the untruncated
// bytes the driver captured; this cap applies only when building a response
// for display.
const DisplayOutputCap = 64 * 1024

const truncationMarker = "\n... [truncated]"

// TruncateForDisplay caps b at DisplayOutputCap bytes, appending a marker
// line when truncation occurred. Callers preparing wire responses use this;
// nothing that compares against expected output should.
func TruncateForDisplay(b []byte) []byte {
	if len(b) <= DisplayOutputCap {
		return b
	}
	out := make([]byte, 0, DisplayOutputCap+len(truncationMarker))
	out = append(out, b[:DisplayOutputCap]...)
	out = append(out, []byte(truncationMarker)...)
	return out
}

// TestVerdict is the outcome for one test case.
type TestVerdict struct {
	TestID           string        `json:"test_id"`
	Status           VerdictStatus `json:"status"`
	Stdout           []byte        `json:"stdout"`
	Stderr           []byte        `json:"stderr"`
	ExecutionTimeMS  int64         `json:"execution_time_ms"`
	ExitCode         *int          `json:"exit_code"`
}

// JobResult is the aggregate outcome of running every test case of a Job.
type JobResult struct {
	JobID         string        `json:"job_id"`
	OverallStatus JobState      `json:"overall_status"`
	Results       []TestVerdict `json:"results"`
	Score         int           `json:"score"`
	MaxScore      int           `json:"max_score"`
}

// ScoreResults computes Score from a set of test cases and their verdicts,
// matching spec order: score = sum(weight of passed tests).
func ScoreResults(cases []TestCase, verdicts []TestVerdict) int {
	weights := make(map[string]int, len(cases))
	for _, tc := range cases {
		weights[tc.ID] = tc.Weight
	}
	score := 0
	for _, v := range verdicts {
		if v.Status == VerdictPassed {
			score += weights[v.TestID]
		}
	}
	return score
}
