package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-leaveflow/internal/config"
)

func setupRegistry(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := config.Config{
		JWTSecret:                "test-secret",
		AccessTokenTTL:           time.Hour,
		SessionTTL:               24 * time.Hour,
		SignupDefaultRole:        "user",
		SelfDemotionSignoutDelay: 2 * time.Second,
		TempPasswordLength:       16,
		Timezone:                 "UTC",
	}

	router := gin.New()
	require.NoError(t, registerModules(router, &Infra{GormDB: gdb, SQLDB: sqlDB, Redis: rdb}, cfg))
	return router
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRegisterModules_RouteBasePaths(t *testing.T) {
	router := setupRegistry(t)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"leave submit at root", http.MethodPost, "/leave", http.StatusUnauthorized},
		{"leave list at root", http.MethodGet, "/leave", http.StatusUnauthorized},
		{"leave approve at root", http.MethodPut, "/leave/abc/approve", http.StatusUnauthorized},
		{"leave not under api", http.MethodPost, "/api/leave", http.StatusNotFound},
		{"employees under api", http.MethodGet, "/api/users", http.StatusUnauthorized},
		{"employees not at root", http.MethodGet, "/users", http.StatusNotFound},
		{"dashboard under api", http.MethodGet, "/api/dashboard/stats", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code, w.Body.String())
			if tt.want == http.StatusNotFound {
				assert.Equal(t, "NOT_FOUND", errorCode(t, w))
			}
		})
	}
}
