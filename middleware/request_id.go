package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	// LoggerKey holds a *zap.Logger tagged with the request ID.
	LoggerKey = "logger"
)

// RequestIDMiddleware echoes the caller's request ID or assigns a new one,
// and stores a logger carrying it for the handlers.
func RequestIDMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		c.Header(RequestIDHeader, id)
		c.Set(LoggerKey, logger.With(zap.String("requestID", id)))
		c.Next()
	}
}
