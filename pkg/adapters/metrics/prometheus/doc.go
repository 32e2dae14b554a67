// Package prometheus adapts the service metrics to Prometheus.
package prometheus
