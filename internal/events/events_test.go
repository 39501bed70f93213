package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveEvent_WireNames(t *testing.T) {
	reason := "overlaps audit week"
	raw, err := json.Marshal(LeaveEvent{
		EventType:       LeaveRejected,
		LeaveID:         "l-1",
		RejectionReason: &reason,
		OccurredAt:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "leave_rejected", m["event_type"])
	assert.Equal(t, reason, m["rejection_reason"])
	assert.NotContains(t, m, "request_id")
}
