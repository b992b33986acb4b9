package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"plugevents/internal/shared/utils/response"
	"plugevents/pkg/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID reuses the caller's X-Request-ID or mints one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs every request once it has been served.
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		scoped(l, c).LogHTTPRequest(c, time.Since(start))
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		scoped(l, c).LogHTTPError(c, fmt.Errorf("panic: %v", recovered), http.StatusInternalServerError)
		response.Fail(c, http.StatusInternalServerError, "Internal server error", nil)
	})
}

func scoped(l *logger.Logger, c *gin.Context) *logger.Logger {
	if id := c.GetString(RequestIDKey); id != "" {
		return l.WithRequestID(id)
	}
	return l
}
