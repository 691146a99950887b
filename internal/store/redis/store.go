// Package redis implements internal/store.Store over go-redis/v9, ported
// from the teacher's internal/storage.RedisStorage key-naming and TTL
// conventions and generalized to the job/state/result/cancel/queue key
// families spec.md §6 names.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/optimuscode/optimus/internal/store"
	"github.com/optimuscode/optimus/pkg/models"
)

// Store is a Redis-backed internal/store.Store.
type Store struct {
	client *goredis.Client
	ttl    time.Duration
}

// New creates a Store against a Redis instance reachable at addr. ttl <= 0
// falls back to store.DefaultTTL.
func New(addr, password string, db int, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = store.DefaultTTL
	}
	return &Store{
		client: goredis.NewClient(&goredis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// NewWithClient wraps an already-configured *redis.Client, used by tests
// that point at a miniredis instance.
func NewWithClient(client *goredis.Client) *Store {
	return &Store{client: client, ttl: store.DefaultTTL}
}

func jobKey(id string) string    { return "job:" + id }
func stateKey(id string) string  { return "state:" + id }
func resultKey(id string) string { return "result:" + id }
func cancelKey(id string) string { return "cancel:" + id }
func queueKey(l models.Language) string { return "queue:" + string(l) }

func (s *Store) SaveJob(ctx context.Context, job *models.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := s.client.Set(ctx, jobKey(job.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	data, err := s.client.Get(ctx, jobKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, models.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	var job models.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return &job, nil
}

func (s *Store) SetState(ctx context.Context, id string, state models.JobState) error {
	if err := s.client.Set(ctx, stateKey(id), string(state), s.ttl).Err(); err != nil {
		return fmt.Errorf("set state: %w", err)
	}
	return nil
}

func (s *Store) GetState(ctx context.Context, id string) (models.JobState, error) {
	val, err := s.client.Get(ctx, stateKey(id)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", models.ErrJobNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get state: %w", err)
	}
	return models.JobState(val), nil
}

func (s *Store) SaveResult(ctx context.Context, result *models.JobResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := s.client.Set(ctx, resultKey(result.JobID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (s *Store) GetResult(ctx context.Context, id string) (*models.JobResult, error) {
	data, err := s.client.Get(ctx, resultKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, models.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	var result models.JobResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return &result, nil
}

func (s *Store) Cancel(ctx context.Context, id string) error {
	if err := s.client.Set(ctx, cancelKey(id), "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("cancel: %w", err)
	}
	return nil
}

func (s *Store) IsCancelled(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, cancelKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("check cancelled: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Enqueue(ctx context.Context, language models.Language, jobID string) error {
	if err := s.client.RPush(ctx, queueKey(language), jobID).Err(); err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}
	return nil
}

// pollInterval bounds how long a single BLPop call blocks before the caller's
// ctx is re-checked, matching the teacher's poll-with-timeout pattern for
// cancellable blocking Redis calls.
const pollInterval = store.BlockingPollInterval

func (s *Store) Dequeue(ctx context.Context, language models.Language) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		result, err := s.client.BLPop(ctx, pollInterval, queueKey(language)).Result()
		if errors.Is(err, goredis.Nil) {
			continue // timed out with nothing queued, loop and recheck ctx
		}
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("dequeue: %w", err)
		}
		// BLPop returns [key, value].
		if len(result) != 2 {
			return "", fmt.Errorf("dequeue: unexpected BLPop reply %v", result)
		}
		return result[1], nil
	}
}

func (s *Store) QueueLength(ctx context.Context, language models.Language) (int64, error) {
	n, err := s.client.LLen(ctx, queueKey(language)).Result()
	if err != nil {
		return 0, fmt.Errorf("queue length: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

var _ store.Store = (*Store)(nil)
