package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the maintenance jobs on their cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler wires the retention sweep onto its cron expression (UTC) and
// the outbox relay onto a fixed interval.
func NewScheduler(
	retention *RetentionSweep,
	retentionCron string,
	relay *OutboxRelay,
	relayInterval time.Duration,
	logger *slog.Logger,
) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(retentionCron, func() {
		retention.Run(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("schedule retention sweep %q: %w", retentionCron, err)
	}

	if _, err := c.AddFunc(fmt.Sprintf("@every %s", relayInterval), func() {
		relay.Run(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("schedule outbox relay every %s: %w", relayInterval, err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start launches the schedules in background goroutines.
func (s *Scheduler) Start() {
	s.logger.Info("job scheduler starting")
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("job scheduler stopping")
	<-s.cron.Stop().Done()
}
