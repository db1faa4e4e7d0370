package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/pkg/events"
)

// ErrPlanNotFound is returned by PlanRepository lookups that match nothing.
var ErrPlanNotFound = errors.New("plan not found")

// PlanRepository defines persistence operations for plan records.
type PlanRepository interface {
	// Save persists a plan record together with its pending domain events.
	Save(ctx context.Context, rec model.PlanRecord) error
	// FindByID retrieves a plan record by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (model.PlanRecord, error)
	// ListRecent returns plan records newest first, with the total count.
	ListRecent(ctx context.Context, limit, offset int) ([]model.PlanRecord, int, error)
	// DeleteOlderThan removes plan records created before the cutoff and
	// reports how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}

// Clock supplies the current instant, so plan evaluation can run against an
// injected time in tests and offline runs.
type Clock interface {
	Now() time.Time
}
