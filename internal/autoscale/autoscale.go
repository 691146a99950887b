// Package autoscale exposes the queue-depth signal spec.md §4.4 describes:
// a thin read over internal/store that an external scaler polls. Scaling
// policy (thresholds, cooldowns) is explicitly out of scope, same as
// spec.md §1 excludes the autoscaler itself.
package autoscale

import (
	"context"

	"github.com/optimuscode/optimus/internal/store"
	"github.com/optimuscode/optimus/pkg/models"
)

// Signal reads per-language queue depth for an external autoscaler.
type Signal struct {
	store store.Store
}

// New wraps a Store as a Signal.
func New(s store.Store) *Signal {
	return &Signal{store: s}
}

// QueueLength reports the number of jobs currently pending for a language.
func (s *Signal) QueueLength(ctx context.Context, language models.Language) (int64, error) {
	return s.store.QueueLength(ctx, language)
}
