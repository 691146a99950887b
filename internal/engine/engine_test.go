package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimuscode/optimus/internal/langpolicy"
	"github.com/optimuscode/optimus/internal/runner"
	"github.com/optimuscode/optimus/internal/store/memory"
	"github.com/optimuscode/optimus/pkg/container"
	"github.com/optimuscode/optimus/pkg/models"
)

func submitAndRun(t *testing.T, job *models.Job, mock *container.MockDriver) *models.JobResult {
	t.Helper()
	s := memory.New()
	ctx := context.Background()

	job.ID = "job-under-test"
	require.NoError(t, s.SaveJob(ctx, job))
	require.NoError(t, s.SetState(ctx, job.ID, models.StateQueued))

	e := New(s, mock, langpolicy.Hardcoded(), DefaultConfig())
	policy, ok := e.policies.Lookup(job.Language)
	require.True(t, ok)

	result := e.runJob(ctx, job, policy)
	require.NotNil(t, result)
	return result
}

// Scenario 1: python, print(input()), passes through unchanged.
func TestScenarioPythonPassed(t *testing.T) {
	mock := &container.MockDriver{
		ExecFunc: func(ctx context.Context, h container.Handle, cmd container.ExecCommand) (container.ExecResult, error) {
			req, err := runner.Decode(cmd.Env)
			require.NoError(t, err)
			return container.ExecResult{ExitCode: 0, Stdout: req.Input}, nil
		},
	}
	job := &models.Job{
		Language:  models.LanguagePython,
		Source:    []byte("print(input())"),
		TimeoutMS: 5000,
		TestCases: []models.TestCase{{ID: "t1", Input: []byte("hello"), ExpectedOutput: []byte("hello"), Weight: 1}},
	}
	result := submitAndRun(t, job, mock)
	assert.Equal(t, models.StateCompleted, result.OverallStatus)
	require.Len(t, result.Results, 1)
	assert.Equal(t, models.VerdictPassed, result.Results[0].Status)
	assert.Equal(t, 1, result.Score)
}

// Scenario 2/3: python runtime errors (parse error or exception) -> nonzero exit.
func TestScenarioPythonRuntimeError(t *testing.T) {
	mock := &container.MockDriver{
		ExecFunc: func(ctx context.Context, h container.Handle, cmd container.ExecCommand) (container.ExecResult, error) {
			return container.ExecResult{ExitCode: 1, Stderr: []byte("Traceback ...")}, nil
		},
	}
	job := &models.Job{
		Language:  models.LanguagePython,
		Source:    []byte("x=1/0"),
		TimeoutMS: 5000,
		TestCases: []models.TestCase{{ID: "t1", ExpectedOutput: []byte(""), Weight: 1}},
	}
	result := submitAndRun(t, job, mock)
	assert.Equal(t, models.StateCompleted, result.OverallStatus)
	assert.Equal(t, models.VerdictRuntimeError, result.Results[0].Status)
	assert.Equal(t, 0, result.Score)
}

// Scenario 4: wrong output.
func TestScenarioPythonWrongAnswer(t *testing.T) {
	mock := &container.MockDriver{
		ExecFunc: func(ctx context.Context, h container.Handle, cmd container.ExecCommand) (container.ExecResult, error) {
			return container.ExecResult{ExitCode: 0, Stdout: []byte("wrong")}, nil
		},
	}
	job := &models.Job{
		Language:  models.LanguagePython,
		Source:    []byte(`print("wrong")`),
		TimeoutMS: 5000,
		TestCases: []models.TestCase{{ID: "t1", Input: []byte("hello"), ExpectedOutput: []byte("hello"), Weight: 1}},
	}
	result := submitAndRun(t, job, mock)
	assert.Equal(t, models.VerdictWrongAnswer, result.Results[0].Status)
	assert.Equal(t, 0, result.Score)
}

// Scenario 5: infinite loop -> driver reports timeout.
func TestScenarioPythonTimeLimitExceeded(t *testing.T) {
	mock := &container.MockDriver{
		ExecFunc: func(ctx context.Context, h container.Handle, cmd container.ExecCommand) (container.ExecResult, error) {
			return container.ExecResult{ExitCode: -1, TimedOut: true}, nil
		},
	}
	job := &models.Job{
		Language:  models.LanguagePython,
		Source:    []byte("while True: pass"),
		TimeoutMS: 2000,
		TestCases: []models.TestCase{{ID: "t1", Weight: 1}},
	}
	result := submitAndRun(t, job, mock)
	assert.Equal(t, models.VerdictTimeLimitExceeded, result.Results[0].Status)
}

// Scenario 6: rust, compiled, passes.
func TestScenarioRustCompileAndPass(t *testing.T) {
	mock := &container.MockDriver{
		ExecFunc: func(ctx context.Context, h container.Handle, cmd container.ExecCommand) (container.ExecResult, error) {
			req, err := runner.Decode(cmd.Env)
			require.NoError(t, err)
			if req.Mode == runner.ModeCompile {
				return container.ExecResult{ExitCode: 0}, nil
			}
			return container.ExecResult{ExitCode: 0, Stdout: []byte("hello")}, nil
		},
	}
	job := &models.Job{
		Language:  models.LanguageRust,
		Source:    []byte(`fn main(){println!("hello");}`),
		TimeoutMS: 10000,
		TestCases: []models.TestCase{{ID: "t1", Input: []byte("x"), ExpectedOutput: []byte("hello"), Weight: 5}},
	}
	result := submitAndRun(t, job, mock)
	assert.Equal(t, models.StateCompleted, result.OverallStatus)
	assert.Equal(t, models.VerdictPassed, result.Results[0].Status)
	assert.Equal(t, 5, result.Score)
	assert.Equal(t, []string{"create", "start", "exec", "exec", "kill", "remove"}, mock.Calls)
}

// Scenario 7: rust compile failure fans out CompileError to every test.
func TestScenarioRustCompileError(t *testing.T) {
	mock := &container.MockDriver{
		ExecFunc: func(ctx context.Context, h container.Handle, cmd container.ExecCommand) (container.ExecResult, error) {
			return container.ExecResult{ExitCode: 1, Stderr: []byte("error: expected `}`")}, nil
		},
	}
	job := &models.Job{
		Language:  models.LanguageRust,
		Source:    []byte(`fn main(){println!("hello"`),
		TimeoutMS: 10000,
		TestCases: []models.TestCase{
			{ID: "t1", ExpectedOutput: []byte("hello"), Weight: 5},
			{ID: "t2", ExpectedOutput: []byte("hello"), Weight: 5},
		},
	}
	result := submitAndRun(t, job, mock)
	assert.Equal(t, models.StateFailed, result.OverallStatus)
	assert.Equal(t, 0, result.Score)
	require.Len(t, result.Results, 2)
	for _, v := range result.Results {
		assert.Equal(t, models.VerdictCompileError, v.Status)
	}
	// Only one exec call: the failed compile. No execute calls follow it.
	assert.Equal(t, []string{"create", "start", "exec", "kill", "remove"}, mock.Calls)
}

func TestCompileTimeoutAborts(t *testing.T) {
	mock := &container.MockDriver{
		ExecFunc: func(ctx context.Context, h container.Handle, cmd container.ExecCommand) (container.ExecResult, error) {
			return container.ExecResult{ExitCode: -1, TimedOut: true}, nil
		},
	}
	job := &models.Job{
		Language:  models.LanguageRust,
		Source:    []byte("fn main(){loop{}}"),
		TimeoutMS: 10000,
		TestCases: []models.TestCase{{ID: "t1", Weight: 1}},
	}
	result := submitAndRun(t, job, mock)
	assert.Equal(t, models.StateTimedOut, result.OverallStatus)
}

func TestCancellationBeforeFirstTestAborts(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	job := &models.Job{
		ID:        "job-cancel",
		Language:  models.LanguagePython,
		Source:    []byte("print(1)"),
		TimeoutMS: 5000,
		TestCases: []models.TestCase{
			{ID: "t1", ExpectedOutput: []byte("1"), Weight: 1},
			{ID: "t2", ExpectedOutput: []byte("1"), Weight: 1},
		},
	}
	require.NoError(t, s.SaveJob(ctx, job))
	require.NoError(t, s.SetState(ctx, job.ID, models.StateQueued))
	require.NoError(t, s.Cancel(ctx, job.ID))

	mock := &container.MockDriver{
		ExecFunc: func(ctx context.Context, h container.Handle, cmd container.ExecCommand) (container.ExecResult, error) {
			t.Fatal("exec should not be called once the cancel flag is set before S2")
			return container.ExecResult{}, nil
		},
	}
	e := New(s, mock, langpolicy.Hardcoded(), DefaultConfig())
	policy, _ := e.policies.Lookup(job.Language)
	result := e.runJob(ctx, job, policy)
	assert.Equal(t, models.StateCancelled, result.OverallStatus)
}

func TestNormalizeOutputStripsSingleTrailingNewline(t *testing.T) {
	assert.Equal(t, []byte("hello"), normalizeOutput([]byte("hello\n")))
	assert.Equal(t, []byte("hello"), normalizeOutput([]byte("hello\r\n")))
	// Only one trailing newline is stripped; internal/extra ones are kept.
	assert.Equal(t, []byte("hello\n\n"), normalizeOutput([]byte("hello\n\n\n")))
}

func TestEmptyExpectedOutputWithTrailingNewlinePasses(t *testing.T) {
	mock := &container.MockDriver{
		ExecFunc: func(ctx context.Context, h container.Handle, cmd container.ExecCommand) (container.ExecResult, error) {
			return container.ExecResult{ExitCode: 0, Stdout: []byte("\n")}, nil
		},
	}
	job := &models.Job{
		Language:  models.LanguagePython,
		Source:    []byte("print()"),
		TimeoutMS: 5000,
		TestCases: []models.TestCase{{ID: "t1", ExpectedOutput: []byte(""), Weight: 1}},
	}
	result := submitAndRun(t, job, mock)
	assert.Equal(t, models.VerdictPassed, result.Results[0].Status)
}

// The engine itself never truncates: verdict comparison and the stored
// TestVerdict both use the driver's full bytes. Truncation for display is
// internal/api's concern (see internal/api/types_test.go), not the engine's.
func TestVerdictUsesAndStoresFullUntruncatedBytes(t *testing.T) {
	big := make([]byte, models.DisplayOutputCap+100)
	for i := range big {
		big[i] = 'a'
	}
	mock := &container.MockDriver{
		ExecFunc: func(ctx context.Context, h container.Handle, cmd container.ExecCommand) (container.ExecResult, error) {
			return container.ExecResult{ExitCode: 0, Stdout: big}, nil
		},
	}
	job := &models.Job{
		Language:  models.LanguagePython,
		Source:    []byte("print('a'*100)"),
		TimeoutMS: 5000,
		TestCases: []models.TestCase{{ID: "t1", ExpectedOutput: big, Weight: 1}},
	}
	result := submitAndRun(t, job, mock)
	assert.Equal(t, models.VerdictPassed, result.Results[0].Status)
	assert.Equal(t, len(big), len(result.Results[0].Stdout))
}
