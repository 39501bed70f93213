package session

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"go-leaveflow/internal/access"
)

// Session is the server side record behind an access token.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Snapshot is the resolved identity and role for one request. It is built
// once by the auth middleware and never mutated afterwards.
type Snapshot struct {
	SessionID  string
	UserID     string
	Email      string
	Role       *access.Role
	IssuedAt   time.Time
	ResolvedAt time.Time
}

func (s Snapshot) HasRole() bool { return s.Role != nil }

func (s Snapshot) IsAdmin() bool { return s.Role != nil && *s.Role == access.RoleAdmin }

// RoleName returns the role or "" when none is assigned.
func (s Snapshot) RoleName() string {
	if s.Role == nil {
		return ""
	}
	return string(*s.Role)
}

type ctxKey struct{}

const ContextKey = "session.snapshot"

func WithSnapshot(ctx context.Context, snap Snapshot) context.Context {
	return context.WithValue(ctx, ctxKey{}, snap)
}

func FromContext(ctx context.Context) (Snapshot, bool) {
	snap, ok := ctx.Value(ctxKey{}).(Snapshot)
	return snap, ok
}

func FromGin(c *gin.Context) (Snapshot, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return Snapshot{}, false
	}
	snap, ok := v.(Snapshot)
	return snap, ok
}
