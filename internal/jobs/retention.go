// Package jobs holds the scheduled maintenance work routingd runs alongside
// the request surfaces: pruning old plan history and draining the event
// outbox to Kafka.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/cashroute/cashroute/internal/domain/port"
)

// RetentionSweep deletes plan records older than the retention window.
type RetentionSweep struct {
	planRepo port.PlanRepository
	clock    port.Clock
	days     int
	logger   *slog.Logger
}

func NewRetentionSweep(planRepo port.PlanRepository, clock port.Clock, days int, logger *slog.Logger) *RetentionSweep {
	return &RetentionSweep{planRepo: planRepo, clock: clock, days: days, logger: logger}
}

// Run prunes one batch. Errors are logged, not returned: the sweep reruns on
// the next schedule and missed prunes only delay cleanup.
func (s *RetentionSweep) Run(ctx context.Context) {
	cutoff := s.clock.Now().AddDate(0, 0, -s.days)

	deleted, err := s.planRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("retention sweep failed", "cutoff", cutoff, "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("retention sweep pruned plans", "deleted", deleted, "cutoff", cutoff.Format(time.RFC3339))
	}
}
