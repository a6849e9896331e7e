package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OutcomePanic is recorded under OutcomeKey when a handler panics.
const OutcomePanic = "panic"

// errorResponse mirrors api.ErrorResponse. The api package imports this one,
// so the shape is repeated here.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RecoveryMiddleware recovers handler panics. The panic is logged with the
// matched route and stack, the request log sees outcome "panic", and the
// client gets a 500 in the same shape the handlers use for errors.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		panic("RecoveryMiddleware requires a non-nil zap.Logger instance")
	}
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			c.Set(OutcomeKey, OutcomePanic)

			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			logger.Error("Panic recovered",
				zap.String("route", route),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("client_ip", c.ClientIP()),
				zap.String("outcome", OutcomePanic),
				zap.Any("panic", rec),
				zap.ByteString("stacktrace", debug.Stack()),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
				Error:   "Internal Server Error",
				Details: fmt.Sprintf("%s %s failed unexpectedly", c.Request.Method, route),
			})
		}()
		c.Next()
	}
}
