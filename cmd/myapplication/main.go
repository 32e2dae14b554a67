package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/myapplication/internal/application/health"
	"github.com/aescanero/myapplication/internal/config"
	"github.com/aescanero/myapplication/internal/logger"
	"github.com/aescanero/myapplication/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/myapplication/pkg/api/grpc"
	"github.com/aescanero/myapplication/pkg/api/http"

	"go.uber.org/zap"
)

// BuildTime is set by build flags
var BuildTime = "unknown"

func main() {
	// Registered first so a signal during startup still shuts down through
	// run and flushes the logger.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	code := run(cfg, log, cfg.GetHTTPAddr(), sigCh)
	_ = log.Sync()
	os.Exit(code)
}

// stopper is a component shut down on exit
type stopper struct {
	name     string
	shutdown func(context.Context) error
}

// run starts every listener on top of the public httpAddr and blocks until
// a signal or a serve failure. It returns the process exit code.
func run(cfg *config.Config, logger *zap.Logger, httpAddr string, sigCh <-chan os.Signal) int {
	logger.Info("starting myapplication",
		zap.String("version", cfg.App.Version),
		zap.String("commit", cfg.App.CommitSHA),
		zap.String("build_time", BuildTime))

	checker := health.NewChecker(cfg.App)

	metricsCollector := prometheus.NewCollector()
	metricsCollector.SetBuildInfo(cfg.App.Version, cfg.App.CommitSHA)

	httpServer := http.NewServer(&http.Config{
		Addr:    httpAddr,
		Health:  checker,
		Metrics: metricsCollector,
		Logger:  logger,
	})
	if err := httpServer.Listen(); err != nil {
		logger.Error("failed to bind HTTP server", zap.Error(err))
		return 1
	}

	errCh := make(chan error, 3)
	var stoppers []stopper

	go func() { errCh <- httpServer.Serve() }()
	stoppers = append(stoppers, stopper{name: "HTTP server", shutdown: httpServer.Shutdown})

	if addr := cfg.GetMetricsAddr(); addr != "" {
		adminServer := http.NewAdminServer(&http.AdminConfig{
			Addr:    addr,
			Metrics: metricsCollector.Handler(),
			Logger:  logger,
		})
		if err := adminServer.Listen(); err != nil {
			logger.Error("failed to bind metrics server", zap.Error(err))
			shutdownAll(cfg, logger, stoppers)
			return 1
		}
		go func() { errCh <- adminServer.Serve() }()
		stoppers = append(stoppers, stopper{name: "metrics server", shutdown: adminServer.Shutdown})
	}

	if addr := cfg.GetGRPCAddr(); addr != "" {
		grpcServer, err := grpc.NewServer(&grpc.Config{
			Addr:   addr,
			Logger: logger,
		})
		if err != nil {
			logger.Error("failed to create gRPC server", zap.Error(err))
			shutdownAll(cfg, logger, stoppers)
			return 1
		}
		go func() { errCh <- grpcServer.Start() }()
		// gRPC first so probes see NOT_SERVING before HTTP stops.
		stoppers = append([]stopper{{name: "gRPC server", shutdown: grpcServer.Shutdown}}, stoppers...)
	}

	logger.Info("myapplication started",
		zap.String("http_addr", httpServer.Addr()),
		zap.String("metrics_addr", cfg.GetMetricsAddr()),
		zap.String("grpc_addr", cfg.GetGRPCAddr()))

	// Wait for interrupt signal
	code := 0
	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err == nil {
			err = fmt.Errorf("server stopped unexpectedly")
		}
		logger.Error("server failed", zap.Error(err))
		code = 1
	}

	if !shutdownAll(cfg, logger, stoppers) {
		code = 1
	}

	logger.Info("myapplication shut down complete")
	return code
}

// shutdownAll stops components in order and reports whether all succeeded
func shutdownAll(cfg *config.Config, logger *zap.Logger, stoppers []stopper) bool {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	ok := true
	for _, s := range stoppers {
		if err := s.shutdown(shutdownCtx); err != nil {
			logger.Error(s.name+" shutdown error", zap.Error(err))
			ok = false
		}
	}
	return ok
}
