package consumer

import (
	"context"
	"encoding/json"

	"dayflow/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveDecisions turns leave decision events into notifications.
// Delivery today is the audit log; the loop is where mail or chat hooks
// would attach.
func ConsumeLeaveDecisions(ctx context.Context, reader *kafkago.Reader, logger *zap.Logger) {
	log := logger.Named("kafka.consumer.leave_decision")
	log.Info("leave decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decision consumer stopped")
				return
			}
			log.Error("fetch leave decision message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		log.Info("leave decision notification",
			zap.String("leave_id", event.LeaveID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("leave_type", event.LeaveType),
			zap.String("status", event.Status),
			zap.Int("days", event.Days),
			zap.String("decided_by", event.DecidedBy),
		)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decision message failed", zap.Error(err))
		}
	}
}
