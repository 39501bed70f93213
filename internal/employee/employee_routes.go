package employee

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
) {
	users := r.Group("/users")
	users.Use(authenticate)
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(authz, access.ResourceEmployee, access.ActionRead),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(authz, access.ResourceEmployee, access.ActionRead),
			handler.GetByID,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(authz, access.ResourceEmployee, access.ActionCreate),
			handler.Create,
		)

		users.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(authz, access.ResourceEmployee, access.ActionUpdate),
			handler.Update,
		)

		users.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.Authorize(authz, access.ResourceEmployee, access.ActionDelete),
			handler.Delete,
		)
	}
}
