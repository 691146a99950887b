package engine

import (
	"bytes"

	"github.com/optimuscode/optimus/pkg/container"
	"github.com/optimuscode/optimus/pkg/models"
)

// normalizeOutput strips exactly one trailing "\n" (and a preceding "\r" if
// present) from b. Internal whitespace, including embedded CRLF, is left
// untouched — the Open Question in spec.md §9 decided narrowly on purpose.
func normalizeOutput(b []byte) []byte {
	if !bytes.HasSuffix(b, []byte("\n")) {
		return b
	}
	b = b[:len(b)-1]
	b = bytes.TrimSuffix(b, []byte("\r"))
	return b
}

// classifyVerdict applies spec.md §4.2's strict priority order: Timeout, then
// OOM, then nonzero exit, then output mismatch, then Passed.
func classifyVerdict(res container.ExecResult, expectedOutput []byte) models.VerdictStatus {
	switch {
	case res.TimedOut:
		return models.VerdictTimeLimitExceeded
	case res.OOMKilled:
		return models.VerdictMemoryLimitExceeded
	case res.ExitCode != 0:
		return models.VerdictRuntimeError
	case bytes.Equal(normalizeOutput(res.Stdout), normalizeOutput(expectedOutput)):
		return models.VerdictPassed
	default:
		return models.VerdictWrongAnswer
	}
}
