package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-leaveflow/internal/access"
	"go-leaveflow/internal/session"
	sessionerrors "go-leaveflow/internal/session/errors"
	"go-leaveflow/internal/shared/contextutil"
	"go-leaveflow/internal/shared/response"
)

const (
	AccessTokenCookie = "access_token"
	ContextUserID     = "user_id"
)

func extractToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

// Authenticate validates the token, checks the backing session is still
// active and resolves exactly one snapshot for the rest of the request.
func Authenticate(tokens *session.TokenManager, store session.Store, resolver session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L().Named("middleware.auth"))

		claims, err := tokens.Parse(extractToken(c))
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		sess, err := store.Active(ctx, claims.ID)
		if err != nil {
			log.Debug("session rejected", zap.String("session_id", claims.ID), zap.Error(err))
			response.AbortWithError(c, err)
			return
		}
		if sess.UserID != claims.Subject {
			response.AbortWithError(c, sessionerrors.ErrInvalidToken)
			return
		}

		snap := resolver.Resolve(ctx, claims.Identity())

		c.Set(session.ContextKey, snap)
		c.Set(access.ContextRoleKey, snap.Role)
		c.Set(ContextUserID, snap.UserID)

		ctx = session.WithSnapshot(ctx, snap)
		ctx = contextutil.WithUserID(ctx, snap.UserID)
		ctx = contextutil.WithLogger(ctx, log.With(
			zap.String("user_id", snap.UserID),
			zap.String("role", snap.RoleName()),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
