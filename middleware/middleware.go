package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a handler panic into a 500 response instead of a
// dead process. The panic value goes to sentry and the log with its stack.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				sentry.CurrentHub().Recover(r)
				zap.L().Error("Recovered from handler panic",
					zap.Any("recovered", r),
					zap.String("path", ctx.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()))
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error. Please try again later.",
				})
			}
		}()
		ctx.Next()
	}
}
