package dashboard

import (
	"github.com/gin-gonic/gin"

	"go-leaveflow/internal/access"
	"go-leaveflow/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer, authenticate gin.HandlerFunc) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(authenticate)
	{
		dashboard.GET("/stats", middleware.Authorize(authz, access.ResourceDashboard, access.ActionRead), handler.Stats)
	}
}
