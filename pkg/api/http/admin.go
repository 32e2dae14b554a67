package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MetricsPath is served by the admin server
const MetricsPath = "/metrics"

// AdminServer exposes operational endpoints on a separate listener
type AdminServer struct {
	listener

	router *gin.Engine
}

// AdminConfig holds admin server configuration
type AdminConfig struct {
	Addr    string
	Metrics http.Handler
	Logger  *zap.Logger
}

// NewAdminServer creates the admin server
func NewAdminServer(cfg *AdminConfig) *AdminServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(recovery(cfg.Logger))
	router.GET(MetricsPath, gin.WrapH(cfg.Metrics))

	return &AdminServer{
		listener: newListener("metrics", cfg.Addr, router, cfg.Logger),
		router:   router,
	}
}

// Handler returns the router, for use with httptest
func (s *AdminServer) Handler() http.Handler {
	return s.router
}
