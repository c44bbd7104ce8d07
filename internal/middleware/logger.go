package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/dashboard-api/internal/logger"
	"go.uber.org/zap"
)

// Logger attaches a request scoped logger and writes one access log line per request.
func Logger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		reqLogger := base.With(zap.String("request_id", GetRequestID(c)))
		logger.WithContext(c, reqLogger)

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		// Pick up fields added further down the chain, such as user_id.
		l := logger.FromContext(c)
		switch status := c.Writer.Status(); {
		case status >= 500:
			l.Error("Request completed", fields...)
		case status >= 400:
			l.Warn("Request completed", fields...)
		default:
			l.Info("Request completed", fields...)
		}
	}
}
