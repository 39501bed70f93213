package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"go-leaveflow/internal/config"
	"go-leaveflow/internal/messaging/kafka"
	"go-leaveflow/internal/messaging/kafka/producer"
	"go-leaveflow/internal/shared/connection"
)

// RunWorker relays pending outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	_, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DBMaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	relay := producer.NewRelay(outboxRepo, kafkaWriter, producer.RelayOptions{
		PollInterval: cfg.OutboxPollInterval,
	}, logger)
	relay.Run(ctx)

	logger.Info("worker shutting down")
	return nil
}
