package leaveerrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave ID",
		http.StatusBadRequest,
	)
	ErrInvalidApplicantID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
	ErrApplicantNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Selected user does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrDateNotInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"Start and end date must be tomorrow or later",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must be on or after start date",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Reason is required",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Type must be SICK, ANNUAL or MATERNITY",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Rejection reason is required",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave application not found",
		http.StatusNotFound,
	)
	ErrLeaveNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"Only pending leave applications can be changed",
		http.StatusConflict,
	)
	ErrLeaveAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Leave application has already been decided",
		http.StatusConflict,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"You can only manage your own leave applications",
		http.StatusForbidden,
	)
)
