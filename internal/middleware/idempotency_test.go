package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-leaveflow/internal/middleware"
)

func setupIdempotency(t *testing.T) (*gin.Engine, *miniredis.Miniredis, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	calls := 0
	r := gin.New()
	r.POST("/leave",
		func(c *gin.Context) { c.Set(middleware.ContextUserID, "u-1"); c.Next() },
		middleware.Idempotency(rdb, time.Hour),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"status": "success", "data": gin.H{"n": calls}})
		},
	)
	return r, mr, &calls
}

func TestIdempotency_ReplaysFirstResponse(t *testing.T) {
	r, _, calls := setupIdempotency(t)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/leave", nil)
		req.Header.Set(middleware.HeaderIdempotencyKey, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := send()
	second := send()

	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(middleware.HeaderReplayed))
	assert.Equal(t, 1, *calls)
}

func TestIdempotency_InFlightConflict(t *testing.T) {
	r, mr, calls := setupIdempotency(t)
	require.NoError(t, mr.Set("idemp:/leave:u-1:key-2:lock", "locked"))

	req := httptest.NewRequest(http.MethodPost, "/leave", nil)
	req.Header.Set(middleware.HeaderIdempotencyKey, "key-2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, *calls)
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	r, _, calls := setupIdempotency(t)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	}
	assert.Equal(t, 2, *calls)
}
