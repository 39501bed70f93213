package auth

import (
	"github.com/gin-gonic/gin"

	"go-leaveflow/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authenticate gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", middleware.RateLimitByIP(0.1, 3), handler.SignUp)
		auth.POST("/signin", middleware.RateLimitByIP(0.2, 5), handler.SignIn)
		auth.POST("/signout", authenticate, handler.SignOut)
		auth.POST("/refresh", authenticate, middleware.RateLimitByUser(1, 3), handler.Refresh)
		auth.GET("/session", authenticate, handler.Session)
		auth.PUT("/password", authenticate, middleware.RateLimitByUser(0.2, 2), handler.ChangePassword)
	}
}
