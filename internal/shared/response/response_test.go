package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-leaveflow/internal/shared/apperror"
)

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, 3, NewPaginationMeta(21, 1, 10).TotalPages)
	assert.Equal(t, 0, NewPaginationMeta(21, 1, 0).TotalPages)
}

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Success(c, http.StatusOK, map[string]string{"id": "1"}, nil)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "success", body["status"])
		assert.NotContains(t, body, "error")
	})

	t.Run("abort with app error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		AbortWithError(c, apperror.ErrNoRole)

		var body ApiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, StatusError, body.Status)
		assert.Equal(t, apperror.CodeNoRole, body.Error.Code)
		assert.True(t, c.IsAborted())
	})
}
