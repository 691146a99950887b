package api

import "github.com/optimuscode/optimus/pkg/models"

// submitRequest is POST /execute's body, matching spec.md §6's wire shape
// (source_code rather than pkg/models.Job's internal "source" field name).
type submitRequest struct {
	Language  models.Language      `json:"language"`
	Source    []byte               `json:"source_code"`
	TestCases []testCaseRequest    `json:"test_cases"`
	TimeoutMS int                  `json:"timeout_ms"`
	MemoryMB  int                  `json:"memory_mb,omitempty"`
	CPUCores  float64              `json:"cpu_cores,omitempty"`
}

type testCaseRequest struct {
	ID             string `json:"id"`
	Input          []byte `json:"input"`
	ExpectedOutput []byte `json:"expected_output"`
	Weight         int    `json:"weight"`
}

func (r submitRequest) toJob() *models.Job {
	cases := make([]models.TestCase, len(r.TestCases))
	for i, tc := range r.TestCases {
		cases[i] = models.TestCase{
			ID:             tc.ID,
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			Weight:         tc.Weight,
		}
	}
	return &models.Job{
		Language:  r.Language,
		Source:    r.Source,
		TestCases: cases,
		TimeoutMS: r.TimeoutMS,
		MemoryMB:  r.MemoryMB,
		CPUCores:  r.CPUCores,
	}
}

// submitResponse is POST /execute's 200 body.
type submitResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// pendingResponse is GET /job/:id's 202 body.
type pendingResponse struct {
	Status string `json:"status"`
}

// resultResponse is GET /job/:id's 200 body, matching spec.md §6's JobResult
// wire shape.
type resultResponse struct {
	JobID         string             `json:"job_id"`
	OverallStatus models.JobState    `json:"overall_status"`
	Score         int                `json:"score"`
	MaxScore      int                `json:"max_score"`
	Results       []verdictResponse  `json:"results"`
}

type verdictResponse struct {
	TestID          string               `json:"test_id"`
	Status          models.VerdictStatus `json:"status"`
	Stdout          []byte               `json:"stdout"`
	Stderr          []byte               `json:"stderr"`
	ExecutionTimeMS int64                `json:"execution_time_ms"`
	ExitCode        *int                 `json:"exit_code"`
}

// toResultResponse renders a JobResult for the wire, truncating each
// verdict's stdout/stderr to models.DisplayOutputCap. The stored JobResult
// (and the verdict classification that produced it) always used the full,
// untruncated bytes; this cap is display-only (spec.md §8).
func toResultResponse(r *models.JobResult) resultResponse {
	results := make([]verdictResponse, len(r.Results))
	for i, v := range r.Results {
		results[i] = verdictResponse{
			TestID:          v.TestID,
			Status:          v.Status,
			Stdout:          models.TruncateForDisplay(v.Stdout),
			Stderr:          models.TruncateForDisplay(v.Stderr),
			ExecutionTimeMS: v.ExecutionTimeMS,
			ExitCode:        v.ExitCode,
		}
	}
	return resultResponse{
		JobID:         r.JobID,
		OverallStatus: r.OverallStatus,
		Score:         r.Score,
		MaxScore:      r.MaxScore,
		Results:       results,
	}
}

// errorResponse is the body of the handlers' error responses. Errors raised
// by middleware (such as the submission rate limiter's 429) use Echo's
// default error body instead.
type errorResponse struct {
	Error string `json:"error"`
}

// environmentResponse is one entry of GET /environments.
type environmentResponse struct {
	Language      models.Language `json:"language"`
	Image         string          `json:"image"`
	Compiled      bool            `json:"compiled"`
	FileExtension string          `json:"file_extension"`
}

// queueLengthResponse is GET /queues/:language/length's body.
type queueLengthResponse struct {
	Language models.Language `json:"language"`
	Length   int64           `json:"length"`
}
