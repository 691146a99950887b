package autoscale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimuscode/optimus/internal/store/memory"
	"github.com/optimuscode/optimus/pkg/models"
)

func TestQueueLengthReflectsEnqueuedJobs(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	signal := New(s)

	length, err := signal.QueueLength(ctx, models.LanguagePython)
	require.NoError(t, err)
	assert.Equal(t, int64(0), length)

	require.NoError(t, s.Enqueue(ctx, models.LanguagePython, "job-1"))
	length, err = signal.QueueLength(ctx, models.LanguagePython)
	require.NoError(t, err)
	assert.Equal(t, int64(1), length)
}
