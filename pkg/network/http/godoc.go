// Package http provides the HTTP client used to health check chain
// endpoints. Probes share a concurrency limit and failed probes are logged
// with a timing breakdown of the request.
package http
