package engine

import "sync/atomic"

// Stats tracks worker-pool activity, ported from the teacher's
// internal/api.WorkerStats atomic-counter shape. Snapshot gives a read-only
// copy for the worker process's own shutdown logging; it is process-local
// and never crosses the wire to optimus-api.
type Stats struct {
	activeWorkers   atomic.Int64
	jobsProcessed   atomic.Int64
	jobsFailed      atomic.Int64
	jobsCancelled   atomic.Int64
	compileFailures atomic.Int64
}

// Snapshot is a point-in-time, immutable copy of Stats.
type Snapshot struct {
	ActiveWorkers   int64 `json:"active_workers"`
	JobsProcessed   int64 `json:"jobs_processed"`
	JobsFailed      int64 `json:"jobs_failed"`
	JobsCancelled   int64 `json:"jobs_cancelled"`
	CompileFailures int64 `json:"compile_failures"`
}

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		ActiveWorkers:   s.activeWorkers.Load(),
		JobsProcessed:   s.jobsProcessed.Load(),
		JobsFailed:      s.jobsFailed.Load(),
		JobsCancelled:   s.jobsCancelled.Load(),
		CompileFailures: s.compileFailures.Load(),
	}
}
