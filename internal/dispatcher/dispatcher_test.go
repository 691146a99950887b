package dispatcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimuscode/optimus/internal/langpolicy"
	"github.com/optimuscode/optimus/internal/store/memory"
	"github.com/optimuscode/optimus/pkg/models"
)

func newTestDispatcher() *Dispatcher {
	return New(memory.New(), langpolicy.Hardcoded(), DefaultLimits)
}

func TestSubmitAssignsIDAndQueues(t *testing.T) {
	d := newTestDispatcher()
	ctx := context.Background()

	job := &models.Job{
		Language:  models.LanguagePython,
		Source:    []byte("print('hi')"),
		TimeoutMS: 1000,
		TestCases: []models.TestCase{{ID: "t1", ExpectedOutput: []byte("hi\n")}},
	}
	id, err := d.Submit(ctx, job)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	status, err := d.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateQueued, status.State)
	assert.Nil(t, status.Result)

	length, err := d.QueueLength(ctx, models.LanguagePython)
	require.NoError(t, err)
	assert.Equal(t, int64(1), length)
}

func TestSubmitRejectsUnknownLanguage(t *testing.T) {
	d := newTestDispatcher()
	job := &models.Job{Language: models.Language("cobol"), Source: []byte("x")}
	_, err := d.Submit(context.Background(), job)
	assert.ErrorIs(t, err, models.ErrUnknownLanguage)
}

func TestSubmitRejectsOversizedPayload(t *testing.T) {
	d := New(memory.New(), langpolicy.Hardcoded(), Limits{MaxPayloadBytes: 10, MaxTimeoutMS: 30_000})
	job := &models.Job{
		Language:  models.LanguagePython,
		Source:    []byte("this source is definitely over ten bytes"),
		TimeoutMS: 1000,
		TestCases: []models.TestCase{{ID: "t1", Weight: 1}},
	}
	_, err := d.Submit(context.Background(), job)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGetUnknownJob(t *testing.T) {
	d := newTestDispatcher()
	_, err := d.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, models.ErrJobNotFound)
}

func TestCancelMarksFlagOnNonTerminalJob(t *testing.T) {
	d := newTestDispatcher()
	ctx := context.Background()
	job := &models.Job{
		Language:  models.LanguageGo,
		Source:    []byte("package main"),
		TimeoutMS: 1000,
		TestCases: []models.TestCase{{ID: "t1", Weight: 1}},
	}
	id, err := d.Submit(ctx, job)
	require.NoError(t, err)

	require.NoError(t, d.Cancel(ctx, id))

	cancelled, err := d.store.IsCancelled(ctx, id)
	require.NoError(t, err)
	assert.True(t, cancelled)
}

func TestCancelNoOpOnTerminalJob(t *testing.T) {
	d := newTestDispatcher()
	ctx := context.Background()
	job := &models.Job{
		Language:  models.LanguageGo,
		Source:    []byte("package main"),
		TimeoutMS: 1000,
		TestCases: []models.TestCase{{ID: "t1", Weight: 1}},
	}
	id, err := d.Submit(ctx, job)
	require.NoError(t, err)

	require.NoError(t, d.store.SetState(ctx, id, models.StateCompleted))
	require.NoError(t, d.Cancel(ctx, id))

	cancelled, err := d.store.IsCancelled(ctx, id)
	require.NoError(t, err)
	assert.False(t, cancelled)
}
