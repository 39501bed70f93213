package profile_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go-leaveflow/internal/access"
	"go-leaveflow/internal/profile"
	profileMock "go-leaveflow/internal/profile/mock"
	"go-leaveflow/internal/session"
)

func fakeAuthenticate(snap session.Snapshot) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(session.ContextKey, snap)
		c.Set(access.ContextRoleKey, snap.Role)
		c.Next()
	}
}

func setupRouter(t *testing.T, svc profile.Service, snap session.Snapshot) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authz, err := access.NewDefaultService()
	require.NoError(t, err)

	r := gin.New()
	profile.RegisterRoutes(r.Group("/api"), profile.NewHandler(svc), authz, fakeAuthenticate(snap))
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandler_UpdateRoleSelfDemotion(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := profileMock.NewMockService(ctrl)
	admin := session.Snapshot{UserID: "admin-1", Role: access.RoleAdmin.Ptr()}
	router := setupRouter(t, svc, admin)

	svc.EXPECT().
		UpdateRole(gomock.Any(), "admin-1", "admin-1", profile.UpdateRoleRequest{Role: "user"}).
		Return(profile.RoleChangeResult{SelfDemotion: true, SignedOutInMs: 2000}, nil)

	body, _ := json.Marshal(profile.UpdateRoleRequest{Role: "user"})
	req := httptest.NewRequest(http.MethodPut, "/api/profiles/admin-1/role", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	assert.Equal(t, profile.SelfDemotionNotice, res["message"])
	data := res["data"].(map[string]any)
	assert.EqualValues(t, 2000, data["signed_out_in_ms"])
}

func TestHandler_AdminRoutesRejectUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := profileMock.NewMockService(ctrl)
	user := session.Snapshot{UserID: "user-1", Role: access.RoleUser.Ptr()}
	router := setupRouter(t, svc, user)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "error", decode(t, w)["status"])
}

func TestHandler_MeWithoutRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := profileMock.NewMockService(ctrl)
	router := setupRouter(t, svc, session.Snapshot{UserID: "u-2"})

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	res := decode(t, w)
	errBody := res["error"].(map[string]any)
	assert.Equal(t, "NO_ROLE", errBody["code"])
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := profileMock.NewMockService(ctrl)
	router := setupRouter(t, svc, session.Snapshot{UserID: "u-3", Role: access.RoleUser.Ptr()})

	svc.EXPECT().GetByID(gomock.Any(), "u-3").Return(profile.ProfileResponse{ID: "u-3", Email: "u3@example.com"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "u3@example.com", data["email"])
}

func TestHandler_CreateValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := profileMock.NewMockService(ctrl)
	router := setupRouter(t, svc, session.Snapshot{UserID: "admin-1", Role: access.RoleAdmin.Ptr()})

	body, _ := json.Marshal(map[string]string{"email": "bad", "full_name": "X", "role": "user"})
	req := httptest.NewRequest(http.MethodPost, "/api/profiles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
