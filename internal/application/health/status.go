package health

import (
	"context"

	"github.com/aescanero/myapplication/internal/config"
)

// ApplicationKey is the top-level key of the health report.
const ApplicationKey = "myapplication"

// Status is the build metadata of the running process
type Status struct {
	Version       string `json:"version"`
	Description   string `json:"description"`
	LastCommitSha string `json:"lastcommitsha"`
}

// Report is the body returned by the health check
type Report struct {
	MyApplication []Status `json:"myapplication"`
}

// Snapshotter produces the health report for a request
type Snapshotter interface {
	Snapshot(ctx context.Context) (*Report, error)
}

// Checker serves a fixed Status snapshot
type Checker struct {
	status Status
}

// NewChecker creates a checker from the application config
func NewChecker(cfg config.AppConfig) *Checker {
	return &Checker{
		status: Status{
			Version:       cfg.Version,
			Description:   cfg.Description,
			LastCommitSha: cfg.CommitSHA,
		},
	}
}

// Status returns a copy of the snapshot
func (c *Checker) Status() Status {
	return c.status
}

// Snapshot builds a fresh report around the snapshot. The slice is
// allocated per call so callers cannot mutate the shared value.
func (c *Checker) Snapshot(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Report{
		MyApplication: []Status{c.status},
	}, nil
}
