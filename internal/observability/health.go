package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-leaveflow/internal/shared/apperror"
	"go-leaveflow/internal/shared/response"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Check is one named dependency probe.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

func PingCheck(name string, p Pinger) Check {
	return Check{Name: name, Probe: p.PingContext}
}

// Healthz answers 200 when every check passes and 503 naming the first
// failing dependency otherwise.
func Healthz(timeout time.Duration, checks ...Check) gin.HandlerFunc {
	log := zap.L().Named("observability.health")
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		for _, check := range checks {
			if err := check.Probe(ctx); err != nil {
				log.Warn("health check failed", zap.String("dependency", check.Name), zap.Error(err))
				response.AbortWithError(c, apperror.ErrServiceUnavailable.WithDetails(map[string]string{
					"dependency": check.Name,
				}))
				return
			}
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	}
}

// RedisCheck probes a go-redis client.
func RedisCheck(rdb *redis.Client) Check {
	return Check{Name: "redis", Probe: func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}}
}
