// Package http provides the HTTP API implementation.
//
// The public server exposes a single route:
//   - GET /healthcheck returns the build metadata report
//
// Every other path is answered with a JSON 404, other methods on a known
// route with a JSON 405, and any fault raised while handling a request with
// a JSON 500. The optional admin server exposes Prometheus metrics on a
// separate listener.
package http
