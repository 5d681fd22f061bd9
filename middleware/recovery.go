package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/pskill9/PreclinicalResearch/model"
	"github.com/pskill9/PreclinicalResearch/pkg/logger"
)

// Recovery turns a handler panic into a 500 in the webhook response shape.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)

				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"status":     model.StatusError,
					"message":    "Internal server error",
					"request_id": requestID,
				})
			}
		}()

		c.Next()
	}
}
