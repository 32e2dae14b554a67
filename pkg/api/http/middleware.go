package http

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader carries the request id in both directions
	RequestIDHeader = "X-Request-ID"

	requestIDKey       = "request_id"
	maxRequestIDLength = 128
	unmatchedRoute     = "unmatched"
	otherMethod        = "other"
)

// requestID reuses a sane client supplied id or generates one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// requestLogger is a middleware for request logging. It logs at debug so the
// default level keeps one line per request, written by the handler.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		duration := time.Since(start)

		logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)))
	}
}

// requestMetrics records every request under its route template
func requestMetrics(metrics MetricsRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metrics.ObserveRequest(methodLabel(c.Request.Method), route, c.Writer.Status(), time.Since(start))
	}
}

// methodLabel bounds the method label to the standard verbs
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPost,
		http.MethodPut, http.MethodDelete, http.MethodPatch:
		return method
	default:
		return otherMethod
	}
}

// recovery turns a panic into a JSON 500 and keeps the process alive
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("500 internal server error",
			zap.String("error", fmt.Sprint(recovered)),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: MsgInternalServerError})
	})
}
