package kafka

import (
	"encoding/json"

	"go.uber.org/zap"
)

type Event struct {
	Topic     string
	Key       string
	EventType string
	Payload   []byte
}

// Publisher is what services enqueue domain events into. Publish failures
// must never fail the originating operation, so Enqueue has no error return.
type Publisher interface {
	Enqueue(event Event)
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Enqueue(Event) {}

// Outbox buffers events in process until the publish worker drains them.
// The snapshot store has no SQL outbox table, so durability of events ends
// at the process boundary; the buffer is bounded and drops on overflow
// rather than blocking a request.
type Outbox struct {
	ch     chan Event
	logger *zap.Logger
}

func NewOutbox(size int, logger ...*zap.Logger) *Outbox {
	l := zap.L().Named("kafka.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.outbox")
	}
	if size <= 0 {
		size = 256
	}
	return &Outbox{ch: make(chan Event, size), logger: l}
}

func (o *Outbox) Enqueue(event Event) {
	select {
	case o.ch <- event:
	default:
		o.logger.Warn("outbox full, event dropped",
			zap.String("topic", event.Topic),
			zap.String("event_type", event.EventType),
		)
	}
}

func (o *Outbox) Events() <-chan Event { return o.ch }

// Marshal is a small helper so services enqueue typed events in one line.
func Marshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
