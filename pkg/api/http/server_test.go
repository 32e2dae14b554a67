package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aescanero/myapplication/internal/application/health"
	"github.com/aescanero/myapplication/internal/config"
	"github.com/aescanero/myapplication/pkg/adapters/metrics/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServeOverTCP(t *testing.T) {
	s := NewServer(&Config{
		Addr:   "127.0.0.1:0",
		Health: health.NewChecker(config.AppConfig{Version: "1.0", Description: "PI technical example", CommitSHA: "abc12345679"}),
		Logger: zap.NewNop(),
	})
	require.NoError(t, s.Listen())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve() }()

	resp, err := http.Get("http://" + s.Addr() + HealthcheckPath)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t,
		`{"myapplication":[{"version":"1.0","description":"PI technical example","lastcommitsha":"abc12345679"}]}`,
		string(body))

	head, err := http.Head("http://" + s.Addr() + HealthcheckPath)
	require.NoError(t, err)
	headBody, err := io.ReadAll(head.Body)
	_ = head.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, head.StatusCode)
	assert.Empty(t, headBody)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.NoError(t, <-errCh)
}

func TestListenBindFailure(t *testing.T) {
	first := NewServer(&Config{Addr: "127.0.0.1:0", Health: health.NewChecker(config.AppConfig{}), Logger: zap.NewNop()})
	require.NoError(t, first.Listen())
	defer func() { _ = first.ln.Close() }()

	second := NewServer(&Config{Addr: first.Addr(), Health: health.NewChecker(config.AppConfig{}), Logger: zap.NewNop()})
	assert.Error(t, second.Listen())
}

func TestServeWithoutListen(t *testing.T) {
	s := NewServer(&Config{Addr: "127.0.0.1:0", Health: health.NewChecker(config.AppConfig{}), Logger: zap.NewNop()})
	assert.Error(t, s.Serve())
}

func TestRequestMetrics(t *testing.T) {
	collector := prometheus.NewCollector()
	s := NewServer(&Config{
		Addr:    "127.0.0.1:0",
		Health:  health.NewChecker(config.AppConfig{}),
		Metrics: collector,
		Logger:  zap.NewNop(),
	})

	do(s, http.MethodGet, HealthcheckPath)
	do(s, http.MethodGet, HealthcheckPath)
	do(s, http.MethodGet, "/missing")

	expected := `
# HELP myapplication_healthchecks_total Total number of health checks by outcome
# TYPE myapplication_healthchecks_total counter
myapplication_healthchecks_total{outcome="ok"} 2
# HELP myapplication_http_requests_total Total number of HTTP requests
# TYPE myapplication_http_requests_total counter
myapplication_http_requests_total{method="GET",route="/healthcheck",status="200"} 2
myapplication_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	assert.NoError(t, promtestutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected),
		"myapplication_healthchecks_total", "myapplication_http_requests_total"))
}

func TestRequestMetricsBoundedMethods(t *testing.T) {
	collector := prometheus.NewCollector()
	s := NewServer(&Config{
		Addr:    "127.0.0.1:0",
		Health:  health.NewChecker(config.AppConfig{}),
		Metrics: collector,
		Logger:  zap.NewNop(),
	})

	for i := 0; i < 50; i++ {
		do(s, fmt.Sprintf("X%d", i), HealthcheckPath)
		do(s, fmt.Sprintf("X%d", i), "/missing")
	}

	count, err := promtestutil.GatherAndCount(collector.Registry(), "myapplication_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAdminServerMetrics(t *testing.T) {
	collector := prometheus.NewCollector()
	collector.SetBuildInfo("2.3", "deadbeef")

	admin := NewAdminServer(&AdminConfig{
		Addr:    "127.0.0.1:0",
		Metrics: collector.Handler(),
		Logger:  zap.NewNop(),
	})

	rr := httptest.NewRecorder()
	admin.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, MetricsPath, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `myapplication_build_info{commit="deadbeef",version="2.3"} 1`)
}
