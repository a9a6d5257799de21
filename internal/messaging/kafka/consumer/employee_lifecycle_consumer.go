package consumer

import (
	"context"
	"encoding/json"

	"dayflow/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle watches employee.created events, the hook point
// for onboarding side effects (welcome mail, directory sync).
func ConsumeEmployeeLifecycle(ctx context.Context, reader *kafkago.Reader, logger *zap.Logger) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		log.Info("employee onboarded",
			zap.String("employee_id", event.EmployeeID),
			zap.String("email", event.Email),
			zap.String("full_name", event.FullName),
		)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}
