package access

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-leaveflow/internal/shared/response"
)

// ContextRoleKey holds the caller's *Role on the gin context. It is set by
// the session middleware and is nil for callers without a role.
const ContextRoleKey = "access.role"

func RoleFromGin(c *gin.Context) *Role {
	v, ok := c.Get(ContextRoleKey)
	if !ok {
		return nil
	}
	role, _ := v.(*Role)
	return role
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("access.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("access.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Pages(c *gin.Context) {
	role := RoleFromGin(c)
	response.Success(c, http.StatusOK, PagesResponse{
		Role:  role,
		Home:  h.service.HomePage(role),
		Pages: h.service.AllowedPages(role),
	}, nil)
}

func (h *Handler) CheckPage(c *gin.Context) {
	page := c.Param("page")
	decision := h.service.CanAccessPage(RoleFromGin(c), page)
	if !decision.Allowed {
		h.logger.Debug("page denied",
			zap.String("page", page),
			zap.String("reason", decision.Reason),
		)
	}
	response.Success(c, http.StatusOK, PageCheckResponse{
		Page:    page,
		Allowed: decision.Allowed,
		Reason:  decision.Reason,
	}, nil)
}
