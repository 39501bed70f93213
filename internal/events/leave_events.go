package events

import "time"

const LeaveLifecycleTopic = "leave.lifecycle.v1"

const (
	LeaveSubmitted = "leave_submitted"
	LeaveUpdated   = "leave_updated"
	LeaveDeleted   = "leave_deleted"
	LeaveApproved  = "leave_approved"
	LeaveRejected  = "leave_rejected"
)

type LeaveEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	LeaveID         string    `json:"leave_id"`
	ApplicantID     string    `json:"applicant_id"`
	NationalID      string    `json:"national_id"`
	LeaveType       string    `json:"leave_type"`
	Status          string    `json:"status"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	ActorID         string    `json:"actor_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}
