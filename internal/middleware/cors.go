package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", HeaderIdempotencyKey, HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID, HeaderReplayed},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
