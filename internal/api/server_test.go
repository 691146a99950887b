package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimuscode/optimus/internal/dispatcher"
	"github.com/optimuscode/optimus/internal/langpolicy"
	"github.com/optimuscode/optimus/internal/store/memory"
)

func newTestServer() *Server {
	d := dispatcher.New(memory.New(), langpolicy.Hardcoded(), dispatcher.DefaultLimits)
	return New(d)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitAndPollPending(t *testing.T) {
	s := newTestServer()

	body := submitRequest{
		Language:  "python",
		Source:    []byte("print(input())"),
		TimeoutMS: 5000,
		TestCases: []testCaseRequest{{ID: "t1", Input: []byte("hi"), ExpectedOutput: []byte("hi"), Weight: 1}},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/execute", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var submitResp submitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitResp))
	assert.NotEmpty(t, submitResp.JobID)
	assert.Equal(t, "queued", submitResp.Status)

	pollReq := httptest.NewRequest(http.MethodGet, "/job/"+submitResp.JobID, nil)
	pollRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(pollRec, pollReq)
	assert.Equal(t, http.StatusAccepted, pollRec.Code)
}

func TestSubmitRejectsEmptyTestCases(t *testing.T) {
	s := newTestServer()
	body := submitRequest{Language: "python", Source: []byte("print(1)"), TimeoutMS: 1000}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/execute", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUnknownJobReturns404(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/job/does-not-exist", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelUnknownJobReturns404(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodDelete, "/jobs/does-not-exist", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelInFlightJobReturns200(t *testing.T) {
	s := newTestServer()
	body := submitRequest{
		Language:  "go",
		Source:    []byte("package main"),
		TimeoutMS: 5000,
		TestCases: []testCaseRequest{{ID: "t1", Weight: 1}},
	}
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/execute", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var submitResp submitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitResp))

	cancelReq := httptest.NewRequest(http.MethodDelete, "/jobs/"+submitResp.JobID, nil)
	cancelRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(cancelRec, cancelReq)
	assert.Equal(t, http.StatusOK, cancelRec.Code)
}

func TestQueueLengthEndpoint(t *testing.T) {
	s := newTestServer()
	body := submitRequest{
		Language:  "python",
		Source:    []byte("print(1)"),
		TimeoutMS: 1000,
		TestCases: []testCaseRequest{{ID: "t1", Weight: 1}},
	}
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/execute", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(httptest.NewRecorder(), req)

	lenReq := httptest.NewRequest(http.MethodGet, "/queues/python/length", nil)
	lenRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(lenRec, lenReq)
	assert.Equal(t, http.StatusOK, lenRec.Code)

	var lenResp queueLengthResponse
	require.NoError(t, json.Unmarshal(lenRec.Body.Bytes(), &lenResp))
	assert.Equal(t, int64(1), lenResp.Length)
}

func TestEnvironmentsEndpoint(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/environments", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var envs []environmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envs))
	assert.Len(t, envs, len(langpolicy.Hardcoded()))
}
