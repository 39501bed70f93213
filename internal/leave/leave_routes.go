package leave

import (
	"github.com/gin-gonic/gin"

	"go-leaveflow/internal/access"
	"go-leaveflow/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authz middleware.Authorizer,
	authenticate gin.HandlerFunc,
	idempotency gin.HandlerFunc,
) {
	leaves := r.Group("/leave")
	leaves.Use(authenticate)
	{
		leaves.GET("", middleware.Authorize(authz, access.ResourceLeave, access.ActionRead), handler.List)
		leaves.GET("/:id", middleware.Authorize(authz, access.ResourceLeave, access.ActionRead), handler.GetByID)
		leaves.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.Authorize(authz, access.ResourceLeave, access.ActionCreate),
			idempotency,
			handler.Submit,
		)
		leaves.PUT("/:id", middleware.Authorize(authz, access.ResourceLeave, access.ActionUpdate), handler.Edit)
		leaves.DELETE("/:id", middleware.Authorize(authz, access.ResourceLeave, access.ActionDelete), handler.Delete)
		leaves.PUT("/:id/approve", middleware.Authorize(authz, access.ResourceLeave, access.ActionApprove), handler.Approve)
		leaves.PUT("/:id/reject", middleware.Authorize(authz, access.ResourceLeave, access.ActionReject), handler.Reject)
	}
}
