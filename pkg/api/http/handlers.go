package http

import (
	"net/http"

	"github.com/aescanero/myapplication/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthcheckPath is the only route of the public server
const HealthcheckPath = "/healthcheck"

// allowedMethods lists what HealthcheckPath answers
const allowedMethods = "GET, HEAD, OPTIONS"

// Error messages returned to clients
const (
	MsgNotFound            = "Resource not found"
	MsgMethodNotAllowed    = "Method Not Allowed"
	MsgInternalServerError = "Internal Server Error"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHealthcheck serves the build metadata report
func (s *Server) handleHealthcheck(c *gin.Context) {
	report, err := s.health.Snapshot(c.Request.Context())
	if err != nil {
		s.logger.Error("error occurred in /healthcheck", zap.Error(err))
		s.metrics.IncHealthchecks(prometheus.OutcomeError)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: MsgInternalServerError})
		return
	}

	s.logger.Info("healthcheck served", zap.String("request_id", c.GetString(requestIDKey)))
	s.metrics.IncHealthchecks(prometheus.OutcomeOK)
	c.JSON(http.StatusOK, report)
}

// handleNotFound answers every unmatched path
func (s *Server) handleNotFound(c *gin.Context) {
	s.logger.Error("404 not found", zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusNotFound, ErrorResponse{Error: MsgNotFound})
}

// handleMethodNotAllowed answers a known path requested with another method
func (s *Server) handleMethodNotAllowed(c *gin.Context) {
	s.logger.Error("405 method not allowed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path))
	c.Header("Allow", allowedMethods)
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: MsgMethodNotAllowed})
}

// handleOptions advertises the methods of the health check route
func (s *Server) handleOptions(c *gin.Context) {
	c.Header("Allow", allowedMethods)
	c.Status(http.StatusOK)
}
