// Package memory implements internal/store.Store in-process, ported from the
// teacher's internal/storage.MemoryStorage map-plus-mutex shape and
// generalized to cover job/state/result/cancel records and per-language FIFO
// queues instead of a single compile-result map.
package memory

import (
	"context"
	"sync"

	"github.com/optimuscode/optimus/internal/store"
	"github.com/optimuscode/optimus/pkg/models"
)

// Store is an in-memory, single-process internal/store.Store. Intended for
// local development and tests; queue state is lost on restart.
type Store struct {
	mu        sync.Mutex
	jobs      map[string]*models.Job
	states    map[string]models.JobState
	results   map[string]*models.JobResult
	cancelled map[string]bool

	queueMu sync.Mutex
	queues  map[models.Language][]string
	notify  map[models.Language]chan struct{}
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		jobs:      make(map[string]*models.Job),
		states:    make(map[string]models.JobState),
		results:   make(map[string]*models.JobResult),
		cancelled: make(map[string]bool),
		queues:    make(map[models.Language][]string),
		notify:    make(map[models.Language]chan struct{}),
	}
}

func (s *Store) SaveJob(ctx context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, models.ErrJobNotFound
	}
	cp := *job
	return &cp, nil
}

func (s *Store) SetState(ctx context.Context, id string, state models.JobState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = state
	return nil
}

func (s *Store) GetState(ctx context.Context, id string) (models.JobState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[id]
	if !ok {
		return "", models.ErrJobNotFound
	}
	return state, nil
}

func (s *Store) SaveResult(ctx context.Context, result *models.JobResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *result
	s.results[result.JobID] = &cp
	return nil
}

func (s *Store) GetResult(ctx context.Context, id string) (*models.JobResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[id]
	if !ok {
		return nil, models.ErrJobNotFound
	}
	cp := *result
	return &cp, nil
}

func (s *Store) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled[id] = true
	return nil
}

func (s *Store) IsCancelled(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled[id], nil
}

func (s *Store) Enqueue(ctx context.Context, language models.Language, jobID string) error {
	s.queueMu.Lock()
	s.queues[language] = append(s.queues[language], jobID)
	ch, ok := s.notify[language]
	s.queueMu.Unlock()
	if ok {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

// Dequeue polls the queue, parking on a per-language notification channel
// between attempts rather than busy-spinning — the in-process analogue of
// Redis BLPop.
func (s *Store) Dequeue(ctx context.Context, language models.Language) (string, error) {
	for {
		s.queueMu.Lock()
		q := s.queues[language]
		if len(q) > 0 {
			id := q[0]
			s.queues[language] = q[1:]
			s.queueMu.Unlock()
			return id, nil
		}
		ch, ok := s.notify[language]
		if !ok {
			ch = make(chan struct{}, 1)
			s.notify[language] = ch
		}
		s.queueMu.Unlock()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ch:
		}
	}
}

func (s *Store) QueueLength(ctx context.Context, language models.Language) (int64, error) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return int64(len(s.queues[language])), nil
}

func (s *Store) Close() error { return nil }

var _ store.Store = (*Store)(nil)
