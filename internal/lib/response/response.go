// Package response writes the uniform JSON envelope used by every endpoint.
package response

import (
	"errors"
	"net/http"

	"github.com/14kear/online_elections/internal/services"
	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message, Error: http.StatusText(status)})
}

// Error maps err to its HTTP status. Anything that is not a business error
// becomes a 500 with a generic message.
func Error(c *gin.Context, err error) {
	status := StatusOf(err)
	message := services.Message(err)
	if status == http.StatusInternalServerError || message == "" {
		status, message = http.StatusInternalServerError, "Internal server error"
	}
	Fail(c, status, message)
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
