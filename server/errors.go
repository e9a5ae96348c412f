package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ui_mockups/generator"
)

var errSessionNotFound = errors.New("session not found")

func statusFor(err error) int {
	var parseErr *generator.PlanParseError
	switch {
	case errors.Is(err, errSessionNotFound), errors.Is(err, generator.ErrMockupNotFound):
		return http.StatusNotFound
	case errors.Is(err, generator.ErrMissingCredential):
		return http.StatusServiceUnavailable
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generator.ErrInvalidOptions), errors.Is(err, generator.ErrNoPlan):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, generator.ErrGenerationFailed), errors.Is(err, generator.ErrPlannerFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError 写出 {"error": "..."} 并把错误挂到 gin 上下文，交给日志中间件记录。
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
