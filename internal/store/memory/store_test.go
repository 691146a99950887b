package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimuscode/optimus/pkg/models"
)

func TestJobRoundTrip(t *testing.T) {
	s := New()
	job := &models.Job{ID: "job-1", Language: models.LanguagePython, Source: []byte("print(1)")}
	require.NoError(t, s.SaveJob(context.Background(), job))

	got, err := s.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, job.Language, got.Language)
}

func TestGetJobNotFound(t *testing.T) {
	s := New()
	_, err := s.GetJob(context.Background(), "missing")
	assert.True(t, errors.Is(err, models.ErrJobNotFound))
}

func TestStateRoundTrip(t *testing.T) {
	s := New()
	require.NoError(t, s.SetState(context.Background(), "job-1", models.StateRunning))
	state, err := s.GetState(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.StateRunning, state)
}

func TestCancelFlag(t *testing.T) {
	s := New()
	cancelled, err := s.IsCancelled(context.Background(), "job-1")
	require.NoError(t, err)
	assert.False(t, cancelled)

	require.NoError(t, s.Cancel(context.Background(), "job-1"))
	cancelled, err = s.IsCancelled(context.Background(), "job-1")
	require.NoError(t, err)
	assert.True(t, cancelled)
}

func TestEnqueueDequeueFIFO(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Enqueue(ctx, models.LanguagePython, "job-1"))
	require.NoError(t, s.Enqueue(ctx, models.LanguagePython, "job-2"))

	length, err := s.QueueLength(ctx, models.LanguagePython)
	require.NoError(t, err)
	assert.Equal(t, int64(2), length)

	first, err := s.Dequeue(ctx, models.LanguagePython)
	require.NoError(t, err)
	assert.Equal(t, "job-1", first)

	second, err := s.Dequeue(ctx, models.LanguagePython)
	require.NoError(t, err)
	assert.Equal(t, "job-2", second)
}

func TestDequeueBlocksUntilEnqueue(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	var got string
	var dequeueErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		got, dequeueErr = s.Dequeue(ctx, models.LanguageGo)
	}()

	time.Sleep(20 * time.Millisecond) // give the goroutine time to park on Dequeue
	require.NoError(t, s.Enqueue(ctx, models.LanguageGo, "job-99"))
	wg.Wait()

	require.NoError(t, dequeueErr)
	assert.Equal(t, "job-99", got)
}

func TestDequeueRespectsContextCancellation(t *testing.T) {
	s := New()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Dequeue(ctx, models.LanguageRust)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
