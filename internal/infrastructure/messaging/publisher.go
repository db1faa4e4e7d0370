package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cashroute/cashroute/internal/domain/port"
	"github.com/cashroute/cashroute/pkg/events"
	pkgkafka "github.com/cashroute/cashroute/pkg/kafka"
)

var _ port.EventPublisher = (*Publisher)(nil)

// Publisher implements EventPublisher using Kafka. In the routing service it
// sits behind the outbox relay rather than on the request path, so a broker
// outage delays events instead of failing plans.
type Publisher struct {
	producer *pkgkafka.Producer
}

func NewPublisher(producer *pkgkafka.Producer) *Publisher {
	return &Publisher{producer: producer}
}

func (p *Publisher) Publish(ctx context.Context, topic string, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"aggregate_type": evt.AggregateType(),
				"event_id":       evt.EventID(),
			},
		})
	}
	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

// PublishRaw sends already-serialized outbox payloads. Used by the relay,
// which holds payloads rather than live domain events.
func (p *Publisher) PublishRaw(ctx context.Context, topic string, entries ...events.OutboxEntry) error {
	messages := make([]pkgkafka.Message, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, pkgkafka.Message{
			Key:   []byte(e.AggregateID),
			Value: e.Payload,
			Headers: map[string]string{
				"event_type":     e.EventType,
				"aggregate_type": e.AggregateType,
				"event_id":       e.ID,
			},
		})
	}
	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}
