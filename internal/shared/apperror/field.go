package apperror

import (
	"fmt"
	"net/http"
)

func RequiredField(field string) *AppError {
	return New(
		CodeValidationError,
		fmt.Sprintf("%s is required", field),
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": field, "rule": "required"})
}

func InvalidField(field string) *AppError {
	return New(
		CodeValidationError,
		fmt.Sprintf("%s is invalid", field),
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": field, "rule": "invalid"})
}
