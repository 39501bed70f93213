package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-leaveflow/internal/shared/contextutil"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := NewStdoutAuditLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "rid-7")
	audit.Log(ctx, AuditLog{Action: "LEAVE_APPROVED", Message: "leave l-1 is now APPROVED", Meta: map[string]any{"leave_id": "l-1"}})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "audit", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, "LEAVE_APPROVED", fields["action"])
	assert.Equal(t, "rid-7", fields["request_id"])
}
