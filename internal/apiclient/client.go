// Package apiclient is an HTTP client for the optimus front door, shared by
// cmd/optimusctl and cmd/optimus-tui. Ported from the teacher's
// cmd/tui/client.Client (baseURL + *http.Client, one method per endpoint,
// sentinel errors checked with errors.Is) and generalized from the single
// compile endpoint to submit/status/cancel/queues/environments.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/optimuscode/optimus/pkg/models"
)

// Sentinel errors, ported from the teacher's cmd/tui/client error set.
var (
	ErrAPIError    = errors.New("api error")
	ErrJobNotFound = errors.New("job not found")
)

// Client talks to an optimus-api instance over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client rooted at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SubmitRequest mirrors internal/api's wire shape for POST /execute.
type SubmitRequest struct {
	Language  models.Language        `json:"language"`
	Source    []byte                 `json:"source_code"`
	TestCases []SubmitTestCase       `json:"test_cases"`
	TimeoutMS int                    `json:"timeout_ms"`
	MemoryMB  int                    `json:"memory_mb,omitempty"`
	CPUCores  float64                `json:"cpu_cores,omitempty"`
}

// SubmitTestCase mirrors one entry of SubmitRequest.TestCases.
type SubmitTestCase struct {
	ID             string `json:"id"`
	Input          []byte `json:"input"`
	ExpectedOutput []byte `json:"expected_output"`
	Weight         int    `json:"weight"`
}

// SubmitResponse is POST /execute's 200 body.
type SubmitResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// Submit queues a new job and returns its id.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error) {
	var out SubmitResponse
	err := c.doJSON(ctx, http.MethodPost, "/execute", req, &out)
	return out, err
}

// JobStatus is GET /job/:id's response, pending or terminal.
type JobStatus struct {
	Pending bool
	Result  *ResultResponse
}

// ResultResponse mirrors internal/api's resultResponse wire shape.
type ResultResponse struct {
	JobID         string            `json:"job_id"`
	OverallStatus models.JobState   `json:"overall_status"`
	Score         int               `json:"score"`
	MaxScore      int               `json:"max_score"`
	Results       []VerdictResponse `json:"results"`
}

// VerdictResponse mirrors one entry of ResultResponse.Results.
type VerdictResponse struct {
	TestID          string               `json:"test_id"`
	Status          models.VerdictStatus `json:"status"`
	Stdout          []byte               `json:"stdout"`
	Stderr          []byte               `json:"stderr"`
	ExecutionTimeMS int64                `json:"execution_time_ms"`
	ExitCode        *int                 `json:"exit_code"`
}

// Get polls a job's status, returning JobStatus.Pending == true until the
// engine has committed a terminal result.
func (c *Client) Get(ctx context.Context, jobID string) (JobStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/job/"+jobID, nil)
	if err != nil {
		return JobStatus{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return JobStatus{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted:
		return JobStatus{Pending: true}, nil
	case http.StatusNotFound:
		return JobStatus{}, ErrJobNotFound
	case http.StatusOK:
		var result ResultResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return JobStatus{}, fmt.Errorf("decode result: %w", err)
		}
		return JobStatus{Result: &result}, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return JobStatus{}, fmt.Errorf("%w (status %d): %s", ErrAPIError, resp.StatusCode, string(body))
	}
}

// Cancel requests cancellation of jobID. A 404 maps to ErrJobNotFound.
func (c *Client) Cancel(ctx context.Context, jobID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/jobs/"+jobID, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrJobNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w (status %d): %s", ErrAPIError, resp.StatusCode, string(body))
	}
	return nil
}

// QueueLength is GET /queues/:language/length's body.
type QueueLength struct {
	Language models.Language `json:"language"`
	Length   int64           `json:"length"`
}

// QueueLength reports the pending depth of language's queue.
func (c *Client) QueueLength(ctx context.Context, language models.Language) (QueueLength, error) {
	var out QueueLength
	err := c.doJSON(ctx, http.MethodGet, "/queues/"+string(language)+"/length", nil, &out)
	return out, err
}

// Environment is one entry of GET /environments.
type Environment struct {
	Language      models.Language `json:"language"`
	Image         string          `json:"image"`
	Compiled      bool            `json:"compiled"`
	FileExtension string          `json:"file_extension"`
}

// Environments lists every language the server's policy table supports.
func (c *Client) Environments(ctx context.Context) ([]Environment, error) {
	var out []Environment
	err := c.doJSON(ctx, http.MethodGet, "/environments", nil, &out)
	return out, err
}

// Health checks GET /health for liveness.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w (status %d): %s", ErrAPIError, resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
