package profileerrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Profile not found",
		http.StatusNotFound,
	)

	ErrInvalidProfileID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid profile ID",
		http.StatusBadRequest,
	)

	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A profile with the same email already exists",
		http.StatusConflict,
	)

	ErrNationalIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A profile with the same national ID already exists",
		http.StatusConflict,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be admin or user",
		http.StatusBadRequest,
	)

	ErrCannotDeleteSelf = apperror.New(
		apperror.CodeConflict,
		"You cannot delete your own profile",
		http.StatusConflict,
	)

	ErrProvisioningFailed = apperror.New(
		apperror.CodeInternalError,
		"Profile could not be created, the account was rolled back",
		http.StatusInternalServerError,
	)
)
