// Package engine implements the job-execution worker: the Test Orchestration
// State Machine (S0_Prepare .. S6_Teardown) and the per-language worker pool
// that drives it. Ported from the teacher's internal/api.WorkerPool (pool
// shape, atomic stats, graceful shutdown) generalized from "N workers race on
// one shared channel" to "N workers per language, each blocking-popping
// internal/store's queue:<language>".
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/optimuscode/optimus/internal/langpolicy"
	"github.com/optimuscode/optimus/internal/runner"
	"github.com/optimuscode/optimus/internal/store"
	"github.com/optimuscode/optimus/pkg/container"
	"github.com/optimuscode/optimus/pkg/models"
)

// Config tunes one Engine instance.
type Config struct {
	// Parallelism is P, the number of concurrent workers per language.
	Parallelism int
	// CompileTimeout bounds S1_Compile, independent of any test's timeout_ms.
	CompileTimeout time.Duration
	// WorkDir is the sandbox scratch directory written into and executed
	// from, matching pkg/container.Spec.WorkDir's default.
	WorkDir string
	// DisableNetwork disables container networking for every job.
	DisableNetwork bool
	// PollInterval is defaulted by New but not read by the engine: Dequeue
	// takes only ctx, and how often a blocking pop re-checks ctx is fixed by
	// the store implementation (store.BlockingPollInterval for Redis).
	PollInterval time.Duration
	// DefaultTestTimeout is used for a test case's exec deadline when the
	// job's timeout_ms is missing or non-positive.
	DefaultTestTimeout time.Duration
}

// DefaultConfig matches spec.md §4.2's suggested defaults.
func DefaultConfig() Config {
	return Config{
		Parallelism:        3,
		CompileTimeout:     30 * time.Second,
		WorkDir:            "/code",
		DisableNetwork:     true,
		PollInterval:       2 * time.Second,
		DefaultTestTimeout: 10 * time.Second,
	}
}

// Engine owns one worker pool per language, each pool draining
// internal/store's per-language queue and running jobs through the state
// machine.
type Engine struct {
	store    store.Store
	driver   container.Driver
	policies langpolicy.Table
	cfg      Config
	stats    Stats
}

// New constructs an Engine over a store, a container driver, and a language
// policy table.
func New(s store.Store, driver container.Driver, policies langpolicy.Table, cfg Config) *Engine {
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.DefaultTestTimeout <= 0 {
		cfg.DefaultTestTimeout = 10 * time.Second
	}
	return &Engine{store: s, driver: driver, policies: policies, cfg: cfg}
}

// Stats returns a live reference to the engine's counters.
func (e *Engine) Stats() *Stats { return &e.stats }

// Run starts Parallelism workers for each given language and blocks until ctx
// is cancelled, then waits for in-flight jobs to reach a teardown point.
func (e *Engine) Run(ctx context.Context, languages []models.Language) {
	var wg sync.WaitGroup
	for _, language := range languages {
		for i := 0; i < e.cfg.Parallelism; i++ {
			wg.Add(1)
			go func(language models.Language) {
				defer wg.Done()
				e.workerLoop(ctx, language)
			}(language)
		}
	}
	wg.Wait()
}

func (e *Engine) workerLoop(ctx context.Context, language models.Language) {
	e.stats.activeWorkers.Add(1)
	defer e.stats.activeWorkers.Add(-1)

	for {
		if ctx.Err() != nil {
			return
		}
		jobID, err := e.store.Dequeue(ctx, language)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			log.Printf("engine: dequeue error for language %s: %v", language, err)
			continue
		}
		e.processJob(ctx, jobID)
	}
}

// processJob runs one job end to end: S0_Prepare through S6_Teardown,
// guaranteeing teardown on every exit path.
func (e *Engine) processJob(ctx context.Context, jobID string) {
	job, err := e.store.GetJob(ctx, jobID)
	if err != nil {
		log.Printf("engine: job %s: %v", jobID, err)
		e.stats.jobsFailed.Add(1)
		_ = e.store.SetState(ctx, jobID, models.StateFailed)
		return
	}

	if err := e.store.SetState(ctx, jobID, models.StateRunning); err != nil {
		log.Printf("engine: job %s: set running: %v", jobID, err)
	}

	policy, ok := e.policies.Lookup(job.Language)
	if !ok {
		e.commitInternalError(ctx, job, fmt.Errorf("no policy for language %s", job.Language))
		return
	}

	result := e.runJob(ctx, job, policy)
	e.commit(ctx, job.ID, result)
}

// runJob drives S0_Prepare..S5_Abort and always tears down the container
// before returning (S6_Teardown).
func (e *Engine) runJob(ctx context.Context, job *models.Job, policy langpolicy.Policy) *models.JobResult {
	// S0_Prepare
	memoryMB := job.MemoryMB
	if memoryMB <= 0 {
		memoryMB = policy.MemDefaultMB
	}
	cpuCores := job.CPUCores
	if cpuCores <= 0 {
		cpuCores = policy.CPUDefault
	}

	handle, err := e.driver.Create(ctx, container.Spec{
		Image:          policy.Image,
		MemoryMB:       memoryMB,
		CPUCores:       cpuCores,
		DisableNetwork: e.cfg.DisableNetwork,
		WorkDir:        e.cfg.WorkDir,
	})
	if err != nil {
		return e.internalErrorResult(job, fmt.Errorf("create container: %w", err))
	}
	defer e.teardown(handle) // S6_Teardown, guaranteed on every path below

	if err := e.driver.Start(ctx, handle); err != nil {
		return e.internalErrorResult(job, fmt.Errorf("start container: %w", err))
	}

	layout := runner.NewLayout(e.cfg.WorkDir, policy)

	if policy.Compiled {
		result, abort := e.runCompilePhase(ctx, handle, job, policy, layout)
		if abort != nil {
			return abort
		}
		if result != nil {
			return result // S4_FanOutCompileError result; processJob commits it
		}
	}

	if cancelled, err := e.checkCancelled(ctx, job.ID); err != nil {
		return e.internalErrorResult(job, err)
	} else if cancelled {
		return e.abortResult(job, nil, models.StateCancelled)
	}

	return e.runExecutePhase(ctx, handle, job, policy, layout)
}

// runCompilePhase implements S1_Compile. Returns (nil, nil) to proceed to
// S2_Execute, (result, nil) if S4_FanOutCompileError already produced the
// final JobResult, or (nil, result) if S5_Abort fired (e.g. compile timeout).
func (e *Engine) runCompilePhase(ctx context.Context, handle container.Handle, job *models.Job, policy langpolicy.Policy, layout runner.Layout) (*models.JobResult, *models.JobResult) {
	cmd, err := runner.CompileCommand(policy, layout)
	if err != nil {
		return nil, e.internalErrorResult(job, err)
	}

	env := runner.Encode(runner.Request{
		Language: job.Language,
		Mode:     runner.ModeCompile,
		Source:   job.Source,
	})

	res, err := e.driver.Exec(ctx, handle, container.ExecCommand{
		Cmd:      cmd,
		Env:      env,
		Deadline: time.Now().Add(e.cfg.CompileTimeout),
	})
	if err != nil {
		return nil, e.internalErrorResult(job, fmt.Errorf("compile exec: %w", err))
	}
	if res.TimedOut {
		return nil, e.abortResult(job, nil, models.StateTimedOut)
	}
	if res.ExitCode != 0 {
		e.stats.compileFailures.Add(1)
		return e.compileErrorResult(job, res.Stderr), nil
	}
	return nil, nil
}

// runExecutePhase implements S2_Execute followed by S3_Finalize, checking
// the cancel flag at each iteration boundary.
func (e *Engine) runExecutePhase(ctx context.Context, handle container.Handle, job *models.Job, policy langpolicy.Policy, layout runner.Layout) *models.JobResult {
	verdicts := make([]models.TestVerdict, 0, len(job.TestCases))

	for _, tc := range job.TestCases {
		if cancelled, err := e.checkCancelled(ctx, job.ID); err != nil {
			return e.internalErrorResult(job, err)
		} else if cancelled {
			return e.abortResult(job, verdicts, models.StateCancelled)
		}

		timeout := time.Duration(job.TimeoutMS) * time.Millisecond
		if timeout <= 0 {
			timeout = e.cfg.DefaultTestTimeout
		}

		cmd := runner.ExecuteCommand(policy, layout)
		req := runner.Request{Language: job.Language, Mode: runner.ModeExecute, Input: tc.Input}
		if !policy.Compiled {
			// Interpreted languages never ran S1_Compile, so the source has
			// not reached the container yet; fold it into this exec.
			req.Mode = runner.ModeCompileAndRun
			req.Source = job.Source
		}
		env := runner.Encode(req)

		res, err := e.driver.Exec(ctx, handle, container.ExecCommand{
			Cmd:      cmd,
			Env:      env,
			Stdin:    tc.Input,
			Deadline: time.Now().Add(timeout),
		})
		if err != nil {
			return e.internalErrorResult(job, fmt.Errorf("execute test %s: %w", tc.ID, err))
		}

		verdicts = append(verdicts, buildVerdict(tc, res))
	}

	return e.finalizeResult(job, verdicts)
}

// buildVerdict keeps the driver's full, untruncated stdout/stderr in the
// TestVerdict — classification already ran against these same bytes, and
// spec.md §8's boundary behavior requires comparison to use untruncated
// output. Truncation for display is applied only at the HTTP layer
// (internal/api/types.go's toResultResponse).
func buildVerdict(tc models.TestCase, res container.ExecResult) models.TestVerdict {
	status := classifyVerdict(res, tc.ExpectedOutput)
	exitCode := res.ExitCode
	return models.TestVerdict{
		TestID:          tc.ID,
		Status:          status,
		Stdout:          res.Stdout,
		Stderr:          res.Stderr,
		ExecutionTimeMS: res.ElapsedMS,
		ExitCode:        &exitCode,
	}
}

// S3_Finalize
func (e *Engine) finalizeResult(job *models.Job, verdicts []models.TestVerdict) *models.JobResult {
	e.stats.jobsProcessed.Add(1)
	return &models.JobResult{
		JobID:         job.ID,
		OverallStatus: models.StateCompleted,
		Results:       verdicts,
		Score:         models.ScoreResults(job.TestCases, verdicts),
		MaxScore:      job.MaxScore(),
	}
}

// S4_FanOutCompileError
func (e *Engine) compileErrorResult(job *models.Job, stderr []byte) *models.JobResult {
	verdicts := make([]models.TestVerdict, len(job.TestCases))
	for i, tc := range job.TestCases {
		verdicts[i] = models.TestVerdict{
			TestID: tc.ID,
			Status: models.VerdictCompileError,
			Stderr: stderr,
		}
	}
	return &models.JobResult{
		JobID:         job.ID,
		OverallStatus: models.StateFailed,
		Results:       verdicts,
		Score:         0,
		MaxScore:      job.MaxScore(),
	}
}

// abortResult implements S5_Abort: already-collected verdicts are kept,
// remaining tests are filled in per the abort reason.
func (e *Engine) abortResult(job *models.Job, completed []models.TestVerdict, reason models.JobState) *models.JobResult {
	if reason == models.StateCancelled {
		e.stats.jobsCancelled.Add(1)
	} else {
		e.stats.jobsFailed.Add(1)
	}

	status := verdictForAbortReason(reason)
	verdicts := make([]models.TestVerdict, len(job.TestCases))
	copy(verdicts, completed)
	for i := len(completed); i < len(job.TestCases); i++ {
		verdicts[i] = models.TestVerdict{TestID: job.TestCases[i].ID, Status: status}
	}

	return &models.JobResult{
		JobID:         job.ID,
		OverallStatus: reason,
		Results:       verdicts,
		Score:         models.ScoreResults(job.TestCases, verdicts),
		MaxScore:      job.MaxScore(),
	}
}

func verdictForAbortReason(reason models.JobState) models.VerdictStatus {
	switch reason {
	case models.StateCancelled:
		return models.VerdictInternalError // cancellation leaves no user-facing verdict class of its own
	case models.StateTimedOut:
		return models.VerdictTimeLimitExceeded
	default:
		return models.VerdictInternalError
	}
}

func (e *Engine) internalErrorResult(job *models.Job, err error) *models.JobResult {
	log.Printf("engine: job %s: internal error: %v", job.ID, err)
	e.stats.jobsFailed.Add(1)
	verdicts := make([]models.TestVerdict, len(job.TestCases))
	for i, tc := range job.TestCases {
		verdicts[i] = models.TestVerdict{TestID: tc.ID, Status: models.VerdictInternalError}
	}
	return &models.JobResult{
		JobID:         job.ID,
		OverallStatus: models.StateFailed,
		Results:       verdicts,
		Score:         0,
		MaxScore:      job.MaxScore(),
	}
}

func (e *Engine) commitInternalError(ctx context.Context, job *models.Job, err error) {
	e.commit(ctx, job.ID, e.internalErrorResult(job, err))
}

// commit writes the JobResult first and the terminal JobState second, so a
// reader that checks the state before the result (as the dispatcher does)
// finds the result already written. The two writes are separate Store calls,
// not one transaction: if SaveResult fails, the error is logged and the
// terminal state is still set without a result.
func (e *Engine) commit(ctx context.Context, jobID string, result *models.JobResult) {
	if err := e.store.SaveResult(ctx, result); err != nil {
		log.Printf("engine: job %s: save result: %v", jobID, err)
	}
	if err := e.store.SetState(ctx, jobID, result.OverallStatus); err != nil {
		log.Printf("engine: job %s: set terminal state: %v", jobID, err)
	}
}

func (e *Engine) checkCancelled(ctx context.Context, jobID string) (bool, error) {
	return e.store.IsCancelled(ctx, jobID)
}

// teardown implements S6_Teardown: kill then remove, best-effort, always
// attempted regardless of how runJob exited.
func (e *Engine) teardown(handle container.Handle) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.driver.Kill(ctx, handle); err != nil {
		log.Printf("engine: teardown kill %s: %v", handle.ID, err)
	}
	if err := e.driver.Remove(ctx, handle); err != nil {
		log.Printf("engine: teardown remove %s: %v", handle.ID, err)
	}
}
