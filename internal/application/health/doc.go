// Package health holds the build metadata reported by the health check.
//
// The Status snapshot is built once from configuration at startup and is
// never modified afterwards, so it is shared by concurrent requests without
// locking. Checker renders it into the Report served over HTTP.
package health
