package events

import "time"

const IdentityProfileTopic = "identity.profile.v1"

const (
	ProfileCreated     = "profile_created"
	ProfileRoleChanged = "profile_role_changed"
	ProfileDeleted     = "profile_deleted"
)

type ProfileEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	ProfileID    string    `json:"profile_id"`
	Email        string    `json:"email"`
	PreviousRole *string   `json:"previous_role,omitempty"`
	NewRole      *string   `json:"new_role,omitempty"`
	SelfDemotion bool      `json:"self_demotion,omitempty"`
	ActorID      string    `json:"actor_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
