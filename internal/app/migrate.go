package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"go-leaveflow/internal/auth"
	"go-leaveflow/internal/employee"
	"go-leaveflow/internal/leave"
	"go-leaveflow/internal/profile"
)

// outboxDDL backs kafka.OutboxRepository, which is plain database/sql and has
// no gorm model.
const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	topic TEXT NOT NULL,
	payload JSONB NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	next_retry_at TIMESTAMPTZ,
	error_message TEXT,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_retry ON outbox_events (status, next_retry_at);
`

func Migrate(ctx context.Context, db *gorm.DB) error {
	conn := db.WithContext(ctx)
	if err := conn.AutoMigrate(
		&auth.Identity{},
		&profile.Profile{},
		&employee.Employee{},
		&leave.Leave{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := conn.Exec(outboxDDL).Error; err != nil {
		return fmt.Errorf("create outbox table: %w", err)
	}
	return nil
}
