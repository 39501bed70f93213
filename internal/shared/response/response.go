package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-leaveflow/internal/shared/apperror"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

type ErrorBody struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

type ApiEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    any             `json:"data,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
	Error   *ErrorBody      `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Status: StatusSuccess,
		Data:   data,
		Meta:   meta,
	})
}

// SuccessWithMessage is used when the caller should surface a notice, e.g. a
// role change that will end the current session.
func SuccessWithMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, ApiEnvelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Status:  StatusError,
		Message: message,
		Error: &ErrorBody{
			Code:    errorCode,
			Details: details,
		},
	})
}

// AbortWithError writes err through apperror.ToHTTP and stops the chain.
func AbortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
