// Package store persists jobs, their lifecycle state, their results, and the
// per-language FIFO queues the dispatcher and workers communicate through.
// Grounded on the teacher's internal/storage.Storage interface and its
// memory/Redis implementations, generalized from a single compile-job record
// to the job/state/result/cancel/queue key families spec.md §6 names.
package store

import (
	"context"
	"time"

	"github.com/optimuscode/optimus/pkg/models"
)

// DefaultTTL is how long a completed job's record, state, and result survive
// before expiring, matching the teacher's Redis key TTL convention.
const DefaultTTL = 24 * time.Hour

// BlockingPollInterval bounds how long a single blocking dequeue call (e.g.
// Redis BLPop) blocks before the caller's context is re-checked.
const BlockingPollInterval = 2 * time.Second

// Store is the persistence and queueing contract the dispatcher and engine
// share. Implementations must be safe for concurrent use.
type Store interface {
	// SaveJob writes the immutable job record under job:<id>.
	SaveJob(ctx context.Context, job *models.Job) error
	// GetJob reads the job record, returning models.ErrJobNotFound if absent.
	GetJob(ctx context.Context, id string) (*models.Job, error)

	// SetState updates state:<id>.
	SetState(ctx context.Context, id string, state models.JobState) error
	// GetState reads state:<id>, returning models.ErrJobNotFound if absent.
	GetState(ctx context.Context, id string) (models.JobState, error)

	// SaveResult writes result:<id> once the job reaches a terminal state.
	SaveResult(ctx context.Context, result *models.JobResult) error
	// GetResult reads result:<id>, returning models.ErrJobNotFound if absent.
	GetResult(ctx context.Context, id string) (*models.JobResult, error)

	// Cancel sets cancel:<id>, a flag the engine polls at phase boundaries.
	Cancel(ctx context.Context, id string) error
	// IsCancelled reports whether cancel:<id> is set.
	IsCancelled(ctx context.Context, id string) (bool, error)

	// Enqueue pushes a job ID onto queue:<language>.
	Enqueue(ctx context.Context, language models.Language, jobID string) error
	// Dequeue blocks until a job ID is available on queue:<language> or ctx is
	// cancelled, in which case it returns ctx.Err().
	Dequeue(ctx context.Context, language models.Language) (string, error)
	// QueueLength reports the current depth of queue:<language>, the signal
	// internal/autoscale exposes for scale-out decisions.
	QueueLength(ctx context.Context, language models.Language) (int64, error)

	// Close releases any underlying connection.
	Close() error
}
