package sessionerrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrSessionNotFound = apperror.New(
		"SESSION_NOT_FOUND",
		"Session not found or expired",
		http.StatusUnauthorized,
	)

	ErrSessionRevoked = apperror.New(
		"SESSION_REVOKED",
		"Session has been revoked, please sign in again",
		http.StatusUnauthorized,
	)
)

var (
	ErrTokenMissing = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"Invalid token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"Token has expired",
		http.StatusUnauthorized,
	)
)
