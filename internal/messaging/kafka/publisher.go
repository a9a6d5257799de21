package kafka

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NewWriter builds a shared writer; the topic comes from each message.
func NewWriter(brokers []string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:     kafkago.TCP(brokers...),
		Balancer: &kafkago.LeastBytes{},
	}
}

// RunPublisher drains the outbox until ctx is canceled. A failed publish is
// logged and the event is lost; the domain mutation it described has already
// happened and must not be rolled back for a messaging failure.
func RunPublisher(ctx context.Context, outbox *Outbox, writer *kafkago.Writer, logger *zap.Logger) {
	log := logger.Named("kafka.publisher")
	log.Info("publisher started")

	for {
		select {
		case <-ctx.Done():
			log.Info("publisher stopped")
			return
		case event := <-outbox.Events():
			if err := publishEvent(ctx, writer, event); err != nil {
				log.Error("publish event failed",
					zap.String("topic", event.Topic),
					zap.String("event_type", event.EventType),
					zap.Error(err),
				)
				continue
			}
			log.Info("event published",
				zap.String("topic", event.Topic),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func publishEvent(ctx context.Context, writer *kafkago.Writer, event Event) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.Key),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	return writer.WriteMessages(ctx, msg)
}
