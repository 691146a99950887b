// Package dispatcher accepts, looks up, and cancels jobs, ported from the
// teacher's internal/api.Server HandleCompile/HandleGetJob logic with the
// HTTP concern stripped out — internal/api calls this package, it does not
// duplicate it.
package dispatcher

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/optimuscode/optimus/internal/langpolicy"
	"github.com/optimuscode/optimus/internal/store"
	"github.com/optimuscode/optimus/pkg/models"
)

// Limits bounds what Submit accepts, ported from the teacher's
// MaxSourceCodeSize/MaxTimeout validation constants.
type Limits struct {
	MaxPayloadBytes int
	MaxTimeoutMS    int
}

// DefaultLimits matches the teacher's hardcoded validation constants.
var DefaultLimits = Limits{
	MaxPayloadBytes: 1 << 20, // 1 MiB
	MaxTimeoutMS:    30_000,
}

// Dispatcher validates, persists, and queues jobs, and answers status and
// cancellation requests against internal/store.
type Dispatcher struct {
	store    store.Store
	policies langpolicy.Table
	limits   Limits
}

// New creates a Dispatcher over a store and a language policy table.
func New(s store.Store, policies langpolicy.Table, limits Limits) *Dispatcher {
	return &Dispatcher{store: s, policies: policies, limits: limits}
}

// Submit validates a job, assigns it an ID, persists it in the Queued state,
// and enqueues it on its language's queue.
func (d *Dispatcher) Submit(ctx context.Context, job *models.Job) (string, error) {
	if _, ok := d.policies.Lookup(job.Language); !ok {
		return "", fmt.Errorf("%w: %s", models.ErrUnknownLanguage, job.Language)
	}
	if err := job.Validate(d.limits.MaxPayloadBytes, d.limits.MaxTimeoutMS); err != nil {
		return "", err
	}

	job.ID = uuid.NewString()

	if err := d.store.SaveJob(ctx, job); err != nil {
		return "", fmt.Errorf("save job: %w", err)
	}
	if err := d.store.SetState(ctx, job.ID, models.StateQueued); err != nil {
		return "", fmt.Errorf("set initial state: %w", err)
	}
	if err := d.store.Enqueue(ctx, job.Language, job.ID); err != nil {
		return "", fmt.Errorf("enqueue job: %w", err)
	}
	return job.ID, nil
}

// Status is the current lifecycle snapshot for a job.
type Status struct {
	JobID  string
	State  models.JobState
	Result *models.JobResult // nil unless State is terminal
}

// Get returns a job's current state, including its result if the job has
// reached a terminal state.
func (d *Dispatcher) Get(ctx context.Context, jobID string) (Status, error) {
	state, err := d.store.GetState(ctx, jobID)
	if err != nil {
		return Status{}, err
	}
	status := Status{JobID: jobID, State: state}
	if !state.Terminal() {
		return status, nil
	}
	result, err := d.store.GetResult(ctx, jobID)
	if err != nil {
		// A terminal state with no readable result (the engine's SaveResult
		// failed, or the job record was missing when the engine popped it) is
		// reported with a nil Result rather than an error.
		return status, nil
	}
	status.Result = result
	return status, nil
}

// Cancel marks a job cancelled. The engine observes the flag at phase
// boundaries and stops processing; Cancel itself does not block for that to
// happen.
func (d *Dispatcher) Cancel(ctx context.Context, jobID string) error {
	state, err := d.store.GetState(ctx, jobID)
	if err != nil {
		return err
	}
	if state.Terminal() {
		return nil // already finished, nothing to cancel
	}
	return d.store.Cancel(ctx, jobID)
}

// QueueLength exposes a language's pending job count for the autoscaling
// signal and the /queues/:language/length endpoint.
func (d *Dispatcher) QueueLength(ctx context.Context, language models.Language) (int64, error) {
	return d.store.QueueLength(ctx, language)
}

// Policies exposes the loaded language policy table, used by the
// /environments endpoint.
func (d *Dispatcher) Policies() langpolicy.Table {
	return d.policies
}
