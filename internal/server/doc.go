// Package server provides the MCP server context and its HTTP sidecars.
//
// ServerContext owns the shared state of a running server: the Outlook
// store the tools query, the short-reference cache that maps entry IDs and
// long URLs to compact tokens, and the shutdown lifecycle.
//
// HealthChecker exposes liveness and readiness endpoints for Kubernetes
// probes, and MetricsServer serves Prometheus metrics on a dedicated port
// so operational data stays off the MCP listener.
package server
