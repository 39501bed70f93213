package session

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-leaveflow/internal/access"
	"go-leaveflow/internal/shared/contextutil"
)

// RoleLookup reads the role attribute of the profile owned by userID.
// A nil role with nil error means the profile exists without a role.
type RoleLookup interface {
	FindRoleByUserID(ctx context.Context, userID string) (*string, error)
}

type Identity struct {
	SessionID string
	UserID    string
	Email     string
	IssuedAt  time.Time
}

type Resolver interface {
	Resolve(ctx context.Context, id Identity) Snapshot
}

type resolver struct {
	lookup RoleLookup
	sf     singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewResolver(lookup RoleLookup, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("session.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.resolver")
	}
	return &resolver{lookup: lookup, now: time.Now, logger: l}
}

// Resolve never fails: any problem reading the profile yields a snapshot
// without a role, which every gate treats as a denial.
func (r *resolver) Resolve(ctx context.Context, id Identity) Snapshot {
	log := contextutil.GetLogger(ctx, r.logger)

	snap := Snapshot{
		SessionID:  id.SessionID,
		UserID:     id.UserID,
		Email:      id.Email,
		IssuedAt:   id.IssuedAt,
		ResolvedAt: r.now(),
	}

	// The shared lookup must outlive whichever request started it; each caller
	// still stops waiting when its own request is cancelled.
	lookupCtx := context.WithoutCancel(ctx)
	ch := r.sf.DoChan(id.UserID, func() (any, error) {
		return r.lookup.FindRoleByUserID(lookupCtx, id.UserID)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		log.Warn("request cancelled while resolving role",
			zap.String("user_id", id.UserID),
			zap.Error(ctx.Err()),
		)
		return snap
	}
	if res.Err != nil {
		log.Warn("role lookup failed, resolving without role",
			zap.String("user_id", id.UserID),
			zap.Bool("shared", res.Shared),
			zap.Error(res.Err),
		)
		return snap
	}

	raw, _ := res.Val.(*string)
	snap.Role = access.RoleFromPtr(raw)
	if snap.Role == nil {
		log.Debug("profile has no usable role", zap.String("user_id", id.UserID))
	}
	return snap
}
