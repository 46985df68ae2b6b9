package middleware

import (
	"time"

	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

// Logger records one line per request with method, path, status and
// latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if utils.InfoLogger == nil {
			return
		}
		utils.InfoLogger.WithFields(map[string]interface{}{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"ip":      c.ClientIP(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
