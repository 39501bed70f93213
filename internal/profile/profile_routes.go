package profile

import (
	"github.com/gin-gonic/gin"

	"go-leaveflow/internal/access"
	"go-leaveflow/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer, authenticate gin.HandlerFunc) {
	profiles := r.Group("/profiles", authenticate)
	{
		profiles.GET("/me", middleware.Authorize(authz, access.ResourceProfile, access.ActionSelf), handler.Me)
		profiles.PUT("/me", middleware.Authorize(authz, access.ResourceProfile, access.ActionSelf), handler.UpdateMe)

		profiles.GET("", middleware.Authorize(authz, access.ResourceProfile, access.ActionRead), handler.List)
		profiles.GET("/:id", middleware.Authorize(authz, access.ResourceProfile, access.ActionRead), handler.GetByID)
		profiles.POST("", middleware.Authorize(authz, access.ResourceProfile, access.ActionCreate), handler.Create)
		profiles.PUT("/:id", middleware.Authorize(authz, access.ResourceProfile, access.ActionUpdate), handler.Update)
		profiles.PUT("/:id/role", middleware.Authorize(authz, access.ResourceProfile, access.ActionUpdateRole), handler.UpdateRole)
		profiles.DELETE("/:id", middleware.Authorize(authz, access.ResourceProfile, access.ActionDelete), handler.Delete)
	}
}
