package middleware

import (
	"github.com/gin-gonic/gin"

	"go-leaveflow/internal/access"
	"go-leaveflow/internal/shared/apperror"
	"go-leaveflow/internal/shared/response"
)

// Authorizer is satisfied by access.Service.
type Authorizer interface {
	Authorize(role *access.Role, resource, action string) bool
}

// RequireRole blocks callers whose profile has no usable role.
func RequireRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		if access.RoleFromGin(c) == nil {
			response.AbortWithError(c, apperror.ErrNoRole)
			return
		}
		c.Next()
	}
}

func Authorize(authz Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := access.RoleFromGin(c)
		if role == nil {
			response.AbortWithError(c, apperror.ErrNoRole)
			return
		}

		if !authz.Authorize(role, resource, action) {
			response.AbortWithError(c, apperror.ErrForbidden.WithDetails(map[string]string{
				"required": resource + ":" + action,
			}))
			return
		}
		c.Next()
	}
}
