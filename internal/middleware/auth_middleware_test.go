package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go-leaveflow/internal/access"
	"go-leaveflow/internal/middleware"
	"go-leaveflow/internal/session"
	sessionerrors "go-leaveflow/internal/session/errors"
	sessionMock "go-leaveflow/internal/session/mock"
	"go-leaveflow/internal/shared/contextutil"
)

type stubResolver struct {
	role  *access.Role
	calls int
}

func (s *stubResolver) Resolve(ctx context.Context, id session.Identity) session.Snapshot {
	s.calls++
	return session.Snapshot{SessionID: id.SessionID, UserID: id.UserID, Email: id.Email, Role: s.role}
}

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := session.NewTokenManager("secret", time.Hour)
	sess := session.Session{ID: "sid-1", UserID: "u-1", Email: "a@example.com", CreatedAt: time.Now()}
	token, _, err := tokens.Issue(sess)
	require.NoError(t, err)

	setup := func(t *testing.T, store session.Store, resolver session.Resolver) (*gin.Engine, *session.Snapshot) {
		var seen session.Snapshot
		r := gin.New()
		r.GET("/me", middleware.Authenticate(tokens, store, resolver), func(c *gin.Context) {
			snap, ok := session.FromGin(c)
			require.True(t, ok)
			fromCtx, ok := session.FromContext(c.Request.Context())
			require.True(t, ok)
			assert.Equal(t, snap, fromCtx)
			assert.Equal(t, "u-1", contextutil.GetUserID(c.Request.Context()))
			seen = snap
			c.Status(http.StatusNoContent)
		})
		return r, &seen
	}

	t.Run("bearer token resolves snapshot once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sessionMock.NewMockStore(ctrl)
		store.EXPECT().Active(gomock.Any(), "sid-1").Return(sess, nil)
		resolver := &stubResolver{role: access.RoleUser.Ptr()}

		r, seen := setup(t, store, resolver)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 1, resolver.calls)
		assert.Equal(t, access.RoleUser.Ptr(), seen.Role)
	})

	t.Run("cookie token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sessionMock.NewMockStore(ctrl)
		store.EXPECT().Active(gomock.Any(), "sid-1").Return(sess, nil)

		r, _ := setup(t, store, &stubResolver{})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r, _ := setup(t, sessionMock.NewMockStore(ctrl), &stubResolver{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sessionMock.NewMockStore(ctrl)
		store.EXPECT().Active(gomock.Any(), "sid-1").Return(session.Session{}, sessionerrors.ErrSessionRevoked)
		resolver := &stubResolver{}

		r, _ := setup(t, store, resolver)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "SESSION_REVOKED")
		assert.Equal(t, 0, resolver.calls)
	})

	t.Run("session owned by someone else", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sessionMock.NewMockStore(ctrl)
		store.EXPECT().Active(gomock.Any(), "sid-1").Return(session.Session{ID: "sid-1", UserID: "u-2"}, nil)

		r, _ := setup(t, store, &stubResolver{})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
