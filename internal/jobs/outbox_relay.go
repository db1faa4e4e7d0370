package jobs

import (
	"context"
	"log/slog"

	"github.com/cashroute/cashroute/pkg/events"
)

// RawPublisher sends already-serialized outbox payloads to a topic.
type RawPublisher interface {
	PublishRaw(ctx context.Context, topic string, entries ...events.OutboxEntry) error
}

// OutboxRelay drains unpublished outbox entries to the broker. Plans commit
// their events into the outbox transactionally; this relay is the only place
// the broker is actually touched, so an outage shows up as a growing
// backlog, never as failed plan requests.
type OutboxRelay struct {
	outbox    events.OutboxRepository
	publisher RawPublisher
	topic     string
	batchSize int
	logger    *slog.Logger
}

func NewOutboxRelay(outbox events.OutboxRepository, publisher RawPublisher, topic string, batchSize int, logger *slog.Logger) *OutboxRelay {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxRelay{
		outbox:    outbox,
		publisher: publisher,
		topic:     topic,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run publishes one batch of unpublished entries and marks them published.
// Failures leave entries unpublished for the next sweep.
func (r *OutboxRelay) Run(ctx context.Context) {
	entries, err := r.outbox.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("outbox fetch failed", "error", err)
		return
	}
	if len(entries) == 0 {
		return
	}

	if err := r.publisher.PublishRaw(ctx, r.topic, entries...); err != nil {
		r.logger.Error("outbox publish failed", "entries", len(entries), "error", err)
		return
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	if err := r.outbox.MarkPublished(ctx, ids); err != nil {
		// Entries will be republished next sweep; consumers must
		// deduplicate on event id.
		r.logger.Error("outbox mark published failed", "entries", len(ids), "error", err)
		return
	}

	r.logger.Debug("outbox relay published events", "entries", len(entries))
}
