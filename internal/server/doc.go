// Package server holds the shared runtime context for the MCP server and the
// Prometheus metrics endpoint.
//
// ServerContext wires the emails table, the provider session and the
// instrumentation provider together so tool handlers reach everything through
// one handle. MetricsServer serves /metrics on a dedicated port, isolated
// from the MCP transport.
package server
