package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentloop/service-booking/internal/platform/domain"
)

// ErrorBody is the error part of the response envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the JSON shape of every response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// Success writes a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Paginated writes a 200 response with a page of items.
func Paginated[T any](c *gin.Context, items []T, total int64, page, limit int) {
	Success(c, domain.NewPaginatedResult(items, total, page, limit))
}

// BadRequest writes a 400 validation failure.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, string(domain.KindValidation), message)
}

// Unauthorized writes a 401.
func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, string(domain.KindUnauthorized), message)
}

// Forbidden writes a 403.
func Forbidden(c *gin.Context, message string) {
	abort(c, http.StatusForbidden, string(domain.KindForbidden), message)
}

// Error maps err to a status code. Causes of 5xx responses are never exposed.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	kind := domain.KindOf(err)
	status := StatusFor(kind)
	if kind == "" {
		abort(c, status, "INTERNAL_ERROR", "internal server error")
		return
	}

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "service temporarily unavailable, retry later"
	}
	abort(c, status, string(kind), message)
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindInvalidState:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	})
}
