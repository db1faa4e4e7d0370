package kafka

import (
	"testing"
)

func TestNewProducer(t *testing.T) {
	cfg := Config{
		Brokers: []string{"localhost:9092", "localhost:9093"},
	}

	p := NewProducer(cfg)
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.cfg.Brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.cfg.Brokers))
	}
	if p.writers == nil {
		t.Fatal("expected writers map to be initialized")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
}

func TestMessageConstruction(t *testing.T) {
	msg := Message{
		Key:   []byte("plan-123"),
		Value: []byte(`{"goalAmount":"100"}`),
		Headers: map[string]string{
			"content-type": "application/json",
			"event-type":   "routing.plan.computed",
		},
	}

	if string(msg.Key) != "plan-123" {
		t.Errorf("expected key plan-123, got %s", string(msg.Key))
	}
	if len(msg.Headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(msg.Headers))
	}
	if msg.Headers["event-type"] != "routing.plan.computed" {
		t.Errorf("unexpected event-type header: %s", msg.Headers["event-type"])
	}
}

func TestGetOrCreateWriter_ReusesInstancePerTopic(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("routing.plan.events")
	if w1 == nil {
		t.Fatal("expected non-nil writer")
	}

	w2 := p.getOrCreateWriter("routing.plan.events")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}

	w3 := p.getOrCreateWriter("routing.plan.deadletter")
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}

	if len(p.writers) != 2 {
		t.Errorf("expected 2 writers, got %d", len(p.writers))
	}
}

func TestProducerClose_ResetsWriters(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	_ = p.getOrCreateWriter("routing.plan.events")
	_ = p.getOrCreateWriter("routing.plan.deadletter")

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}

	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}
