package httpapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	clientHeader = "X-Client-ID"
	clientQuery  = "client"
	clientKey    = "client_id"
)

// RequestLogger logs every request once it has been served.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []zap.Field{
			zap.String("method", strings.ToUpper(c.Request.Method)),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if client := c.GetString(clientKey); client != "" {
			fields = append(fields, zap.String("client_id", client))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("http request", fields...)
		case status >= 400:
			logger.Warn("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}

// ClientID resolves the state owner from the X-Client-ID header or the
// client query parameter. No id means the default owner.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := strings.TrimSpace(c.GetHeader(clientHeader))
		if client == "" {
			client = strings.TrimSpace(c.Query(clientQuery))
		}
		c.Set(clientKey, client)
		c.Next()
	}
}

func clientID(c *gin.Context) string {
	return c.GetString(clientKey)
}
