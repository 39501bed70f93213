package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-leaveflow/internal/bootstrap"
	"go-leaveflow/internal/events"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeAuditTrail records leave decisions and profile changes in the audit
// log. Messages that cannot be decoded are committed and skipped.
func ConsumeAuditTrail(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit")
	log.Info("audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit consumer stopped")
				return
			}
			log.Error("fetch audit message failed", zap.Error(err))
			continue
		}

		entry, err := toAuditLog(msg)
		if err != nil {
			log.Warn("skipping undecodable message",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		} else {
			audit.Log(ctx, entry)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit audit message failed", zap.Error(err))
		}
	}
}

func toAuditLog(msg kafkago.Message) (bootstrap.AuditLog, error) {
	switch msg.Topic {
	case events.LeaveLifecycleTopic:
		var ev events.LeaveEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			return bootstrap.AuditLog{}, err
		}
		meta := map[string]any{
			"leave_id":    ev.LeaveID,
			"national_id": ev.NationalID,
			"status":      ev.Status,
			"actor_id":    ev.ActorID,
			"request_id":  ev.RequestID,
		}
		if ev.RejectionReason != nil {
			meta["rejection_reason"] = *ev.RejectionReason
		}
		return bootstrap.AuditLog{
			Action:  strings.ToUpper(ev.EventType),
			Message: fmt.Sprintf("leave %s is now %s", ev.LeaveID, ev.Status),
			Meta:    meta,
		}, nil

	case events.IdentityProfileTopic:
		var ev events.ProfileEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			return bootstrap.AuditLog{}, err
		}
		return bootstrap.AuditLog{
			Action:  strings.ToUpper(ev.EventType),
			Message: fmt.Sprintf("profile %s changed by %s", ev.ProfileID, ev.ActorID),
			Meta: map[string]any{
				"profile_id":    ev.ProfileID,
				"previous_role": ev.PreviousRole,
				"new_role":      ev.NewRole,
				"self_demotion": ev.SelfDemotion,
				"request_id":    ev.RequestID,
			},
		}, nil
	}

	return bootstrap.AuditLog{}, fmt.Errorf("unexpected topic %q", msg.Topic)
}
