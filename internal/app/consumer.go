package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-leaveflow/internal/bootstrap"
	"go-leaveflow/internal/config"
	"go-leaveflow/internal/events"
	"go-leaveflow/internal/messaging/kafka/consumer"
)

// RunConsumer feeds leave and profile lifecycle events into the audit log.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		GroupID:        cfg.ConsumerGroupID,
		GroupTopics:    []string{events.LeaveLifecycleTopic, events.IdentityProfileTopic},
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeAuditTrail(ctx, reader, bootstrap.NewStdoutAuditLogger(logger), logger)

	logger.Info("consumer shutting down")
	return nil
}
