// Package cleanup removes captures older than the retention period.
package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// sweepInterval is how often a sweep runs after the immediate startup run.
const sweepInterval = 24 * time.Hour

// Store is the slice of the capture store the sweeper needs.
type Store interface {
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

// Sweeper periodically deletes captures past the retention age. A failed
// sweep is logged and isolated; the next tick is the implicit retry.
type Sweeper struct {
	store         Store
	retentionDays int
	interval      time.Duration
	logger        zerolog.Logger
}

// NewSweeper is the constructor for Sweeper.
func NewSweeper(store Store, retentionDays int, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		store:         store,
		retentionDays: retentionDays,
		interval:      sweepInterval,
		logger:        logger,
	}
}

// Start runs one sweep immediately, then one per interval until the context
// is cancelled. It blocks; run it in a goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info().
		Int("retention_days", s.retentionDays).
		Msg("cleanup job scheduled")

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep. Errors never propagate; they must not
// stop future scheduled sweeps.
func (s *Sweeper) RunOnce(ctx context.Context) {
	deleted, err := s.store.DeleteOlderThan(ctx, s.retentionDays)
	if err != nil {
		s.logger.Error().Err(err).Msg("cleanup sweep failed")
		return
	}
	if deleted > 0 {
		s.logger.Info().
			Int64("deleted", deleted).
			Int("retention_days", s.retentionDays).
			Msg("cleanup removed old webhooks")
	}
}
