package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aescanero/myapplication/internal/application/health"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MetricsRecorder receives request and health check observations
type MetricsRecorder interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
	IncHealthchecks(outcome string)
}

// readHeaderTimeout bounds slow clients
const readHeaderTimeout = 10 * time.Second

// Server represents the public HTTP API server
type Server struct {
	listener

	router  *gin.Engine
	health  health.Snapshotter
	metrics MetricsRecorder
	logger  *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Addr    string
	Health  health.Snapshotter
	Metrics MetricsRecorder
	Logger  *zap.Logger
}

// NewServer creates a new HTTP server. The listener is bound by Listen.
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.HandleMethodNotAllowed = true
	router.Use(requestID())
	router.Use(requestLogger(cfg.Logger))
	router.Use(requestMetrics(metrics))
	router.Use(recovery(cfg.Logger))

	s := &Server{
		router:  router,
		health:  cfg.Health,
		metrics: metrics,
		logger:  cfg.Logger,
	}
	s.listener = newListener("HTTP", cfg.Addr, router, cfg.Logger)

	s.setupRoutes()

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	s.router.GET(HealthcheckPath, s.handleHealthcheck)
	s.router.HEAD(HealthcheckPath, s.handleHealthcheck)
	s.router.OPTIONS(HealthcheckPath, s.handleOptions)

	s.router.NoRoute(s.handleNotFound)
	s.router.NoMethod(s.handleMethodNotAllowed)
}

// Handler returns the router, for use with httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// listener owns the lifecycle of one net/http server
type listener struct {
	name   string
	server *http.Server
	ln     net.Listener
	logger *zap.Logger
}

func newListener(name, addr string, handler http.Handler, logger *zap.Logger) listener {
	return listener{
		name: name,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}
}

// Listen binds the server address. Bind failures are returned here rather
// than from Serve so startup can fail before the service reports serving.
func (l *listener) Listen() error {
	ln, err := net.Listen("tcp", l.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s server on %s: %w", l.name, l.server.Addr, err)
	}
	l.ln = ln
	return nil
}

// Addr returns the bound address, or the configured one before Listen
func (l *listener) Addr() string {
	if l.ln != nil {
		return l.ln.Addr().String()
	}
	return l.server.Addr
}

// Serve accepts connections until Shutdown. It returns nil after a
// graceful shutdown.
func (l *listener) Serve() error {
	if l.ln == nil {
		return fmt.Errorf("%s server is not listening", l.name)
	}

	l.logger.Info("starting "+l.name+" server", zap.String("addr", l.Addr()))

	if err := l.server.Serve(l.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve %s: %w", l.name, err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (l *listener) Shutdown(ctx context.Context) error {
	l.logger.Info("shutting down " + l.name + " server")

	if err := l.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown %s server: %w", l.name, err)
	}

	l.logger.Info(l.name + " server shut down complete")
	return nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveRequest(string, string, int, time.Duration) {}
func (nopMetrics) IncHealthchecks(string) {}
