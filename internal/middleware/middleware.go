package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dhouhaelaouni/tunimed/pkg/utils"
)

// Identity extracts the acting user from the X-User-ID header and stores
// it in the request context. Authentication itself is handled upstream;
// services re-validate that the ID resolves to a real, active user.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	}
}

// CorrelationID propagates an X-Correlation-ID header, generating one
// when the caller did not supply it.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader("X-Correlation-ID")
		if correlationID == "" {
			correlationID = utils.GenerateID()
		}
		c.Set("correlationID", correlationID)
		c.Writer.Header().Set("X-Correlation-ID", correlationID)
		c.Next()
	}
}

// RequestLogger emits one structured log line per request
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"status":         c.Writer.Status(),
			"duration_ms":    time.Since(start).Milliseconds(),
			"correlation_id": c.GetString("correlationID"),
		}).Info("Request handled")
	}
}
