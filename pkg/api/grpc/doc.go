// Package grpc serves the standard gRPC health checking protocol so the
// service can be probed by gRPC-aware orchestrators.
package grpc
