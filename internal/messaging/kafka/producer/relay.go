package producer

import (
	"context"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-leaveflow/internal/messaging/kafka"
)

type RelayOptions struct {
	BatchSize    int
	PollInterval time.Duration
}

// BatchResult counts what one flush did with the rows it picked up.
type BatchResult struct {
	Sent   int
	Failed int
}

// Relay moves pending outbox rows to Kafka. Rows are written as one batch;
// a partial failure only reschedules the rows the broker refused.
type Relay struct {
	repo   kafka.OutboxRepository
	writer MessageWriter
	opts   RelayOptions
	log    *zap.Logger
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, opts RelayOptions, logger *zap.Logger) *Relay {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Relay{repo: repo, writer: writer, opts: opts, log: logger.Named("kafka.producer.relay")}
}

// Run flushes on every tick until ctx is done.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.opts.PollInterval)
	defer ticker.Stop()

	r.log.Info("outbox relay started",
		zap.Duration("poll_interval", r.opts.PollInterval),
		zap.Int("batch_size", r.opts.BatchSize),
	)
	for {
		select {
		case <-ctx.Done():
			r.log.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
				r.log.Error("outbox flush failed", zap.Error(err))
			}
		}
	}
}

func (r *Relay) Flush(ctx context.Context) (BatchResult, error) {
	rows, err := r.repo.ListPending(ctx, r.opts.BatchSize)
	if err != nil {
		return BatchResult{}, err
	}
	if len(rows) == 0 {
		return BatchResult{}, nil
	}

	msgs := make([]kafkago.Message, len(rows))
	for i, row := range rows {
		msgs[i] = toMessage(row)
	}

	writeErr := r.writer.WriteMessages(ctx, msgs...)

	var perMessage kafkago.WriteErrors
	hasPerMessage := errors.As(writeErr, &perMessage) && len(perMessage) == len(rows)

	var res BatchResult
	for i, row := range rows {
		rowErr := writeErr
		if hasPerMessage {
			rowErr = perMessage[i]
		}
		if rowErr != nil {
			r.fail(ctx, row, rowErr)
			res.Failed++
			continue
		}
		if err := r.repo.MarkSent(ctx, row.ID); err != nil {
			r.log.Error("mark outbox row sent failed", zap.String("outbox_id", row.ID), zap.Error(err))
			continue
		}
		res.Sent++
	}

	r.log.Debug("outbox batch flushed", zap.Int("sent", res.Sent), zap.Int("failed", res.Failed))
	return res, nil
}

func (r *Relay) fail(ctx context.Context, row kafka.OutboxEvent, cause error) {
	r.log.Warn("publish outbox row failed",
		zap.String("outbox_id", row.ID),
		zap.String("event_type", row.EventType),
		zap.Int("retry_count", row.RetryCount),
		zap.Error(cause),
	)
	if err := r.repo.MarkFailed(ctx, row.ID, cause.Error()); err != nil {
		r.log.Error("mark outbox row failed failed", zap.String("outbox_id", row.ID), zap.Error(err))
	}
}
