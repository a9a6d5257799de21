package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"dayflow/internal/config"
	"dayflow/internal/events"
	"dayflow/internal/messaging/kafka/consumer"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// The consumer process turns domain events into notification log lines. It
// is deliberately separate from the API so a broker outage never slows a
// request path.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()
	if len(cfg.KafkaBrokers) == 0 {
		logger.Fatal("KAFKA_BROKERS is required for the consumer process")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	leaveReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		GroupID: "dayflow-notifications",
		Topic:   events.LeaveDecidedTopic,
	})
	defer leaveReader.Close()

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		GroupID: "dayflow-notifications",
		Topic:   events.EmployeeCreatedTopic,
	})
	defer lifecycleReader.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeLeaveDecisions(ctx, leaveReader, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, logger)
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")
	wg.Wait()
}
