package health

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aescanero/myapplication/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckerSnapshot(t *testing.T) {
	checker := NewChecker(config.AppConfig{
		Version:     "2.3",
		Description: "foo",
		CommitSHA:   "deadbeef",
	})

	report, err := checker.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, report.MyApplication, 1)
	assert.Equal(t, Status{Version: "2.3", Description: "foo", LastCommitSha: "deadbeef"}, report.MyApplication[0])
}

func TestReportJSONShape(t *testing.T) {
	checker := NewChecker(config.AppConfig{
		Version:     "1.0",
		Description: "PI technical example",
		CommitSHA:   "abc12345679",
	})

	report, err := checker.Snapshot(context.Background())
	require.NoError(t, err)

	body, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Equal(t,
		`{"myapplication":[{"version":"1.0","description":"PI technical example","lastcommitsha":"abc12345679"}]}`,
		string(body))
}

func TestSnapshotIsolation(t *testing.T) {
	checker := NewChecker(config.AppConfig{Version: "1.0"})

	first, err := checker.Snapshot(context.Background())
	require.NoError(t, err)
	first.MyApplication[0].Version = "tampered"

	second, err := checker.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0", second.MyApplication[0].Version)
	assert.Equal(t, "1.0", checker.Status().Version)
}

func TestSnapshotCancelledContext(t *testing.T) {
	checker := NewChecker(config.AppConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := checker.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
