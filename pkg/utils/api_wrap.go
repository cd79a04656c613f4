package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scaffold/pkg/logger"
)

// MessageSuccess is the message of every successful response. The reset
// screen relies on it to recognise a completed reset.
const MessageSuccess = "success"

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: MessageSuccess,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// RespondValidationError reports the first failing request field.
func RespondValidationError(c *gin.Context, err error) {
	RespondError(c, http.StatusUnprocessableEntity, ValidationMessage(err))
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNameAlreadyExists),
		errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusUnprocessableEntity, userMessage(err))
	case errors.Is(err, ErrInvalidSign),
		errors.Is(err, ErrSignEmailMismatch):
		RespondError(c, http.StatusBadRequest, userMessage(err))
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrDatabaseError):
		logger.Error("database error", "err", err, "trace_id", traceID(c))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		logger.Error("unhandled error", "err", err, "trace_id", traceID(c))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// userMessage returns the sentinel text so wrapped detail never leaks.
func userMessage(err error) string {
	for _, sentinel := range []error{
		ErrNameAlreadyExists, ErrEmailAlreadyExists, ErrInvalidCredentials,
		ErrAccountNotFound, ErrInvalidSign, ErrSignEmailMismatch,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
