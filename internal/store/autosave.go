package store

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultAutosaveInterval backs up the write-through saves.
const DefaultAutosaveInterval = 30 * time.Second

// RunAutosave persists the store every interval until ctx is done, then
// persists one last time. Failures are logged and retried on the next tick.
func (s *Store) RunAutosave(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Persist(ctx); err != nil {
				s.logFor(ctx).Warn(ctx, "autosave failed", zap.Error(err))
			}
		case <-ctx.Done():
			// ctx is already cancelled; the final save runs detached from it
			if err := s.Persist(context.WithoutCancel(ctx)); err != nil {
				s.logFor(ctx).Error(ctx, "final save failed", zap.Error(err))
			}
			return
		}
	}
}
