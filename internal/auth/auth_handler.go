package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-leaveflow/internal/access"
	"go-leaveflow/internal/session"
	"go-leaveflow/internal/shared/apperror"
	"go-leaveflow/internal/shared/response"
)

const AccessTokenCookie = "access_token"

// PageResolver answers which pages a role may open.
type PageResolver interface {
	AllowedPages(role *access.Role) []string
	HomePage(role *access.Role) string
}

type Handler struct {
	service      Service
	pages        PageResolver
	cookieSecure bool
	logger       *zap.Logger
}

func NewHandler(s Service, pages PageResolver, cookieSecure bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, pages: pages, cookieSecure: cookieSecure, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bindError(c *gin.Context, err error) {
	h.writeServiceError(c, apperror.MapValidationError(err))
}

func (h *Handler) setTokenCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if token == "" {
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	res, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	res, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setTokenCookie(c, res.AccessToken, res.ExpiresAt)
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	snap, ok := session.FromGin(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	res, err := h.service.Refresh(c.Request.Context(), snap.SessionID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setTokenCookie(c, res.AccessToken, res.ExpiresAt)
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) SignOut(c *gin.Context) {
	snap, ok := session.FromGin(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	if err := h.service.SignOut(c.Request.Context(), snap.SessionID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setTokenCookie(c, "", time.Time{})
	response.SuccessWithMessage(c, http.StatusOK, "Signed out", nil)
}

// Session returns the resolved snapshot. A caller without a role still gets
// a 200 so the client can render its access denied screen.
func (h *Handler) Session(c *gin.Context) {
	snap, ok := session.FromGin(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var role *string
	if snap.Role != nil {
		r := snap.Role.String()
		role = &r
	}

	response.Success(c, http.StatusOK, SessionResponse{
		User:     IdentityResponse{ID: snap.UserID, Email: snap.Email},
		Role:     role,
		Home:     h.pages.HomePage(snap.Role),
		Pages:    h.pages.AllowedPages(snap.Role),
		IssuedAt: snap.IssuedAt,
	}, nil)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	snap, ok := session.FromGin(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), snap.UserID, req.Password); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Password updated", nil)
}
