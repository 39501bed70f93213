package access

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

func setupRouter(t *testing.T, role *Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		c.Set(ContextRoleKey, role)
		c.Next()
	}
	RegisterRoutes(r.Group("/api"), NewHandler(newTestService(t)), fakeAuth)
	return r
}

func TestHandler_Pages(t *testing.T) {
	t.Run("user", func(t *testing.T) {
		w := httptest.NewRecorder()
		setupRouter(t, RoleUser.Ptr()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/access/pages", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body envelope[PagesResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "success", body.Status)
		assert.Equal(t, PageLeave, body.Data.Home)
		assert.ElementsMatch(t, []string{PageLeave, PageProfile}, body.Data.Pages)
	})

	t.Run("no role", func(t *testing.T) {
		w := httptest.NewRecorder()
		setupRouter(t, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/access/pages", nil))

		var body envelope[PagesResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Nil(t, body.Data.Role)
		assert.Empty(t, body.Data.Pages)
		assert.Equal(t, "", body.Data.Home)
	})
}

func TestHandler_CheckPage(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/access/pages/Pending%20Approval", nil)
	setupRouter(t, RoleUser.Ptr()).ServeHTTP(w, req)

	var body envelope[PageCheckResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, PagePendingApproval, body.Data.Page)
	assert.False(t, body.Data.Allowed)
	assert.Equal(t, ReasonPageRestricted, body.Data.Reason)
}
