package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope for every JSON response.
type APIResponse[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      T      `json:"data,omitempty"`
	Error     any    `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success writes a successful envelope with the given status.
func Success[T any](ctx *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: ctx.GetString("request_id"),
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes a failure envelope. err is client-visible detail, never a raw
// internal error.
func Error[T any](ctx *gin.Context, status int, message string, err any) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: ctx.GetString("request_id"),
	}
	ctx.JSON(status, resp)
	return resp
}

// Abort writes a failure envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, err any) {
	Error[any](ctx, status, message, err)
	ctx.Abort()
}
