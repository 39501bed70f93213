package contextutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetLoggerFallbacks(t *testing.T) {
	fallback := zap.NewExample()
	scoped := zap.NewExample().Named("scoped")

	assert.Same(t, fallback, GetLogger(context.Background(), fallback))
	assert.Same(t, scoped, GetLogger(WithLogger(context.Background(), scoped), fallback))
	assert.NotNil(t, GetLogger(context.Background(), nil))
}

func TestFields(t *testing.T) {
	assert.Empty(t, Fields(context.Background()))

	ctx := WithUserID(WithRequestID(context.Background(), "rid-1"), "u-1")
	assert.Equal(t, []zap.Field{zap.String("request_id", "rid-1"), zap.String("user_id", "u-1")}, Fields(ctx))
}
