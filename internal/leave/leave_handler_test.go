package leave_test

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
	"go-leaveflow/internal/leave"
	leaveerrors "go-leaveflow/internal/leave/errors"
	leaveMock "go-leaveflow/internal/leave/mock"
	"go-leaveflow/internal/middleware"
	"go-leaveflow/internal/session"
)

func fakeAuthenticate(snap session.Snapshot) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(session.ContextKey, snap)
		c.Set(access.ContextRoleKey, snap.Role)
		c.Set(middleware.ContextUserID, snap.UserID)
		c.Next()
	}
}

func passThrough(c *gin.Context) { c.Next() }

func setupRouter(t *testing.T, svc leave.Service, snap session.Snapshot) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authz, err := access.NewDefaultService()
	require.NoError(t, err)

	r := gin.New()
	leave.RegisterRoutes(r.Group(""), leave.NewHandler(svc), authz, fakeAuthenticate(snap), passThrough)
	return r
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

var (
	adminSnap = session.Snapshot{UserID: "admin-1", Role: access.RoleAdmin.Ptr()}
	userSnap  = session.Snapshot{UserID: "user-1", Role: access.RoleUser.Ptr()}
)

func TestHandler_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leaveMock.NewMockService(ctrl)
	router := setupRouter(t, svc, userSnap)

	req := validRequest("c0ffee00-0000-0000-0000-000000000001")
	svc.EXPECT().
		Submit(gomock.Any(), leave.Actor{UserID: "user-1", Role: access.RoleUser.Ptr()}, req).
		Return(leave.LeaveResponse{ID: "leave-1", Status: "PENDING"}, nil)

	w := doJSON(router, http.MethodPost, "/leave", req)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "PENDING", data["status"])
	assert.Nil(t, data["rejectionReason"])
}

func TestHandler_SubmitMissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leaveMock.NewMockService(ctrl)
	router := setupRouter(t, svc, userSnap)

	w := doJSON(router, http.MethodPost, "/leave", map[string]string{"reason": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w)["error"].(map[string]any)["code"])
}

func TestHandler_ListEmptyIsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leaveMock.NewMockService(ctrl)
	router := setupRouter(t, svc, adminSnap)

	svc.EXPECT().List(gomock.Any(), gomock.Any(), leave.ListFilter{Status: "PENDING"}).
		Return(leave.ListResult{Items: []leave.LeaveResponse{}}, nil)

	w := doJSON(router, http.MethodGet, "/leave?status=PENDING", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","data":[]}`, w.Body.String())
}

func TestHandler_ListPaginated(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leaveMock.NewMockService(ctrl)
	router := setupRouter(t, svc, adminSnap)

	svc.EXPECT().List(gomock.Any(), gomock.Any(), leave.ListFilter{Page: 2, PageSize: 5}).
		Return(leave.ListResult{Items: []leave.LeaveResponse{{ID: "a"}}, Total: 6, Page: 2, PageSize: 5}, nil)

	w := doJSON(router, http.MethodGet, "/leave?page=2&page_size=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	meta := decode(t, w)["meta"].(map[string]any)
	assert.EqualValues(t, 2, meta["totalPages"])
}

func TestHandler_UserCannotDecide(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leaveMock.NewMockService(ctrl)
	router := setupRouter(t, svc, userSnap)

	w := doJSON(router, http.MethodPut, "/leave/abc/approve", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPut, "/leave/abc/reject", leave.RejectRequest{Reason: "no"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_NoRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leaveMock.NewMockService(ctrl)
	router := setupRouter(t, svc, session.Snapshot{UserID: "nobody"})

	w := doJSON(router, http.MethodGet, "/leave", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NO_ROLE", decode(t, w)["error"].(map[string]any)["code"])
}

func TestHandler_RejectEmptyBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leaveMock.NewMockService(ctrl)
	router := setupRouter(t, svc, adminSnap)

	svc.EXPECT().Reject(gomock.Any(), gomock.Any(), "leave-1", leave.RejectRequest{}).
		Return(leave.LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired)

	req := httptest.NewRequest(http.MethodPut, "/leave/leave-1/reject", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_EditDecidedConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leaveMock.NewMockService(ctrl)
	router := setupRouter(t, svc, adminSnap)

	req := validRequest("c0ffee00-0000-0000-0000-000000000001")
	svc.EXPECT().Edit(gomock.Any(), gomock.Any(), "leave-1", req).
		Return(leave.LeaveResponse{}, leaveerrors.ErrLeaveNotEditable)

	w := doJSON(router, http.MethodPut, "/leave/leave-1", req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATE", decode(t, w)["error"].(map[string]any)["code"])
}
