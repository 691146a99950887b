package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimuscode/optimus/pkg/models"
)

func TestToResultResponseTruncatesDisplayOnly(t *testing.T) {
	big := make([]byte, models.DisplayOutputCap+100)
	for i := range big {
		big[i] = 'a'
	}
	exitCode := 0
	result := &models.JobResult{
		JobID:         "job-1",
		OverallStatus: models.StateCompleted,
		Score:         1,
		MaxScore:      1,
		Results: []models.TestVerdict{
			{TestID: "t1", Status: models.VerdictPassed, Stdout: big, ExitCode: &exitCode},
		},
	}

	resp := toResultResponse(result)
	require.Len(t, resp.Results, 1)
	assert.Less(t, len(resp.Results[0].Stdout), len(big))
	assert.Equal(t, models.VerdictPassed, resp.Results[0].Status)
}
