package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimuscode/optimus/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return NewWithClient(client)
}

func TestRedisJobRoundTrip(t *testing.T) {
	s := newTestStore(t)
	job := &models.Job{ID: "job-1", Language: models.LanguageGo, Source: []byte("package main")}
	require.NoError(t, s.SaveJob(context.Background(), job))

	got, err := s.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, job.Language, got.Language)
}

func TestRedisGetJobNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetJob(context.Background(), "missing")
	assert.True(t, errors.Is(err, models.ErrJobNotFound))
}

func TestRedisStateAndResult(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SetState(ctx, "job-1", models.StateCompleted))
	state, err := s.GetState(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.StateCompleted, state)

	result := &models.JobResult{JobID: "job-1", OverallStatus: models.StateCompleted, Score: 10, MaxScore: 10}
	require.NoError(t, s.SaveResult(ctx, result))
	got, err := s.GetResult(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, result.Score, got.Score)
}

func TestRedisCancelFlag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cancelled, err := s.IsCancelled(ctx, "job-1")
	require.NoError(t, err)
	assert.False(t, cancelled)

	require.NoError(t, s.Cancel(ctx, "job-1"))
	cancelled, err = s.IsCancelled(ctx, "job-1")
	require.NoError(t, err)
	assert.True(t, cancelled)
}

func TestRedisEnqueueDequeueFIFO(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Enqueue(ctx, models.LanguagePython, "job-1"))
	require.NoError(t, s.Enqueue(ctx, models.LanguagePython, "job-2"))

	length, err := s.QueueLength(ctx, models.LanguagePython)
	require.NoError(t, err)
	assert.Equal(t, int64(2), length)

	dctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	first, err := s.Dequeue(dctx, models.LanguagePython)
	require.NoError(t, err)
	assert.Equal(t, "job-1", first)
}

func TestRedisDequeueRespectsContextCancellation(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := s.Dequeue(ctx, models.LanguageRust)
	assert.Error(t, err)
}
